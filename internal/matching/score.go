// Package matching computes the compatibility score between a candidate's
// declared attributes and a job's requirement keywords. Scoring is pure:
// same inputs, same score, no I/O.
package matching

import (
	"strings"

	"talentmatch-backend/internal/domain"
)

// Per-keyword weights. A requirement found among the declared skills counts
// double a requirement only mentioned in the experience/education text.
const (
	skillWeight = 2
	textWeight  = 1
)

// Score returns an integer in [0,100] measuring how many of the job's
// requirement keywords appear in the candidate's skills, experience and
// education. No matched keyword means 0; every keyword matched as a skill
// means 100. Matching is case-insensitive.
func Score(c *domain.Candidate, job *domain.Job) int {
	keywords := normalizeKeywords(job.Requirements)
	if len(keywords) == 0 {
		return 0
	}

	skills := make(map[string]bool, len(c.Skills))
	var skillText strings.Builder
	for _, s := range c.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		skills[s] = true
		skillText.WriteString(s)
		skillText.WriteByte(' ')
	}
	freeText := strings.ToLower(c.Experience + " " + c.Education)

	points := 0
	for _, kw := range keywords {
		switch {
		case skills[kw] || strings.Contains(skillText.String(), kw):
			points += skillWeight
		case strings.Contains(freeText, kw):
			points += textWeight
		}
	}

	score := (100 * points) / (skillWeight * len(keywords))
	return clamp(score)
}

func normalizeKeywords(requirements []string) []string {
	seen := make(map[string]bool, len(requirements))
	out := make([]string, 0, len(requirements))
	for _, r := range requirements {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
