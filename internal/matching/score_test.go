package matching_test

import (
	"testing"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/matching"

	"github.com/stretchr/testify/assert"
)

func job(requirements ...string) *domain.Job {
	return &domain.Job{ID: 1, Title: "Backend Engineer", Status: domain.JobStatusOpen, Requirements: requirements}
}

func TestScoreNoMatch(t *testing.T) {
	c := &domain.Candidate{
		Skills:     []string{"photoshop"},
		Experience: "5 years of graphic design",
	}
	assert.Equal(t, 0, matching.Score(c, job("go", "postgresql", "docker")))
}

func TestScoreEmptyInputs(t *testing.T) {
	t.Run("empty candidate", func(t *testing.T) {
		assert.Equal(t, 0, matching.Score(&domain.Candidate{}, job("go")))
	})

	t.Run("job without requirements", func(t *testing.T) {
		c := &domain.Candidate{Skills: []string{"go"}}
		assert.Equal(t, 0, matching.Score(c, job()))
	})
}

func TestScoreFullMatch(t *testing.T) {
	c := &domain.Candidate{Skills: []string{"Go", "PostgreSQL", "Docker"}}
	assert.Equal(t, 100, matching.Score(c, job("go", "postgresql", "docker")))
}

func TestScoreMonotonicInMatchedKeywords(t *testing.T) {
	j := job("go", "postgresql", "docker", "kubernetes")

	prev := 0
	skills := []string{}
	for _, s := range []string{"go", "postgresql", "docker", "kubernetes"} {
		skills = append(skills, s)
		got := matching.Score(&domain.Candidate{Skills: skills}, j)
		assert.GreaterOrEqual(t, got, prev, "score must not decrease when a keyword is added")
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestScoreStable(t *testing.T) {
	c := &domain.Candidate{
		Skills:     []string{"go", "docker"},
		Experience: "built services with postgresql",
	}
	j := job("go", "postgresql", "docker", "aws")

	first := matching.Score(c, j)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, matching.Score(c, j))
	}
}

func TestScoreRange(t *testing.T) {
	cases := []struct {
		name string
		c    *domain.Candidate
	}{
		{"skills only", &domain.Candidate{Skills: []string{"go", "go", "GO"}}},
		{"text only", &domain.Candidate{Experience: "go go go postgresql docker"}},
		{"mixed", &domain.Candidate{Skills: []string{"docker"}, Education: "computer science, go course"}},
	}
	j := job("go", "postgresql", "docker")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matching.Score(tc.c, j)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestScoreWeighsSkillsAboveFreeText(t *testing.T) {
	j := job("go", "postgresql")
	asSkill := matching.Score(&domain.Candidate{Skills: []string{"go"}}, j)
	inText := matching.Score(&domain.Candidate{Experience: "worked with go"}, j)
	assert.Greater(t, asSkill, inText)
}

func TestScoreCaseInsensitive(t *testing.T) {
	c := &domain.Candidate{Skills: []string{"GoLang", "POSTGRESQL"}}
	got := matching.Score(c, job("golang", "PostgreSQL"))
	assert.Equal(t, 100, got)
}

func TestScoreDuplicateRequirementsCountOnce(t *testing.T) {
	c := &domain.Candidate{Skills: []string{"go"}}
	assert.Equal(t,
		matching.Score(c, job("go", "docker")),
		matching.Score(c, job("go", "go", "docker")))
}
