package domain

import (
	"context"
	"strings"
	"time"
)

// Candidature status constants
const (
	StatusNew       = "new"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

// CandidateStatuses lists every legal status value, in funnel order.
var CandidateStatuses = []string{
	StatusNew,
	StatusScreening,
	StatusInterview,
	StatusHired,
	StatusRejected,
}

// ValidStatus reports whether s is one of the five legal status values.
func ValidStatus(s string) bool {
	for _, v := range CandidateStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsQualified reports whether a status counts as qualified, i.e. the
// candidate progressed past initial intake.
func IsQualified(status string) bool {
	switch status {
	case StatusScreening, StatusInterview, StatusHired:
		return true
	}
	return false
}

// Candidate is a candidature: one person applying to one job.
type Candidate struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name" validate:"required,min=3,candidate_name"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone,omitempty" validate:"omitempty,br_phone"`
	Initials   string    `json:"initials"`
	JobID      int64     `json:"job_id" validate:"required"`
	Status     string    `json:"status"`
	Skills     []string  `json:"skills,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Education  string    `json:"education,omitempty"`
	Score      int       `json:"compatibility_score"` // computed once at creation
	ResumeURL  string    `json:"resume_url,omitempty"`
	Notes      string    `json:"notes,omitempty" validate:"max=1000"`
	Active     bool      `json:"active"`
	AppliedAt  time.Time `json:"applied_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined job data for list responses
	JobTitle      *string `json:"job_title,omitempty"`
	JobDepartment *string `json:"job_department,omitempty"`
}

// DeriveInitials builds the 1-2 character uppercase initials for a name:
// first letter of the first word plus first letter of the second word,
// falling back to the second letter of the first word when the name is a
// single word.
func DeriveInitials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])
	initials := []rune{first[0]}
	switch {
	case len(words) > 1:
		initials = append(initials, []rune(words[1])[0])
	case len(first) > 1:
		initials = append(initials, first[1])
	}
	return strings.ToUpper(string(initials))
}

// CandidateUpdate carries the fields a generic update may change. Email,
// job and the soft-delete flag are deliberately absent: they are immutable
// through this path. Nil means "leave unchanged".
type CandidateUpdate struct {
	Name       *string   `json:"name" validate:"omitempty,min=3,candidate_name"`
	Phone      *string   `json:"phone" validate:"omitempty,br_phone"`
	Skills     *[]string `json:"skills"`
	Experience *string   `json:"experience"`
	Education  *string   `json:"education"`
	ResumeURL  *string   `json:"resume_url"`
	Notes      *string   `json:"notes" validate:"omitempty,max=1000"`
}

// CandidateFilter describes a listing query. Filters combine with AND.
type CandidateFilter struct {
	JobID    *int64
	Status   string
	Search   string // case-insensitive match against name and email
	Page     int    // 1-based
	PageSize int
	Sort     string // e.g. "-applied_at"
}

// Pagination is the listing metadata block returned alongside a page.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	PageSize   int   `json:"page_size"`
}

// StatusCount is one aggregation row: candidates holding a status and
// their mean compatibility score.
type StatusCount struct {
	Status       string  `json:"-"`
	Count        int64   `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// CandidateStatistics is the aggregate report over active candidates.
type CandidateStatistics struct {
	Total            int64                  `json:"total"`
	Qualified        int64                  `json:"qualified"`
	QualifiedPercent int                    `json:"qualified_percent"`
	ByStatus         map[string]StatusCount `json:"by_status"`
}

// CandidateRepository defines data access for candidatures. Reads only see
// active records; Deactivate is the soft delete.
type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	Fetch(ctx context.Context, filter CandidateFilter) ([]Candidate, int64, error)
	FetchQualified(ctx context.Context) ([]Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Deactivate(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

// CandidateUsecase defines the candidature business operations.
type CandidateUsecase interface {
	Apply(ctx context.Context, c *Candidate) (*Candidate, error)
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, *Pagination, error)
	Update(ctx context.Context, id int64, upd *CandidateUpdate) (*Candidate, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Candidate, error)
	Delete(ctx context.Context, id int64) error
	ListQualified(ctx context.Context) ([]Candidate, error)
	Statistics(ctx context.Context) (*CandidateStatistics, error)
	SendMessage(ctx context.Context, id int64, subject, body string) error
}
