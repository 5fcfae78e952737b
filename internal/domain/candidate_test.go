package domain_test

import (
	"testing"

	"talentmatch-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInitials(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"two words", "ana silva", "AS"},
		{"single word falls back to second letter", "ana", "AN"},
		{"single letter stays single", "X", "X"},
		{"extra words are ignored", "ana maria silva", "AM"},
		{"surrounding whitespace", "  ana   silva  ", "AS"},
		{"already uppercase", "ANA SILVA", "AS"},
		{"empty name", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.DeriveInitials(tc.input))
		})
	}
}

func TestDeriveInitialsIdempotent(t *testing.T) {
	for _, name := range []string{"ana silva", "ana", "X", "Bruno Costa"} {
		first := domain.DeriveInitials(name)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, domain.DeriveInitials(name))
		}
		assert.LessOrEqual(t, len(first), 2)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range domain.CandidateStatuses {
		assert.True(t, domain.ValidStatus(s), s)
	}
	for _, s := range []string{"", "New", "HIRED", "approved", "screening "} {
		assert.False(t, domain.ValidStatus(s), s)
	}
}

func TestIsQualified(t *testing.T) {
	assert.False(t, domain.IsQualified(domain.StatusNew))
	assert.True(t, domain.IsQualified(domain.StatusScreening))
	assert.True(t, domain.IsQualified(domain.StatusInterview))
	assert.True(t, domain.IsQualified(domain.StatusHired))
	assert.False(t, domain.IsQualified(domain.StatusRejected))
}

func TestJobOpen(t *testing.T) {
	assert.True(t, (&domain.Job{Status: domain.JobStatusOpen}).Open())
	assert.False(t, (&domain.Job{Status: domain.JobStatusClosed}).Open())
	assert.False(t, (&domain.Job{}).Open())
}
