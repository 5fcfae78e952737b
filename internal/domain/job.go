package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already registered to an active candidate")
)

// Job status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title" validate:"required,min=3,max=100"`
	Department     string    `json:"department" validate:"required"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"` // keywords matched by the compatibility scorer
	Status         string    `json:"status"`       // open | closed
	CandidateCount int64     `json:"candidate_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Open reports whether the job still accepts candidatures.
func (j *Job) Open() bool {
	return j.Status == JobStatusOpen
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// IncrementCandidateCount bumps candidate_count by one as a single
	// atomic UPDATE at the store.
	IncrementCandidateCount(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, job *Job) error
	UpdateJobStatus(ctx context.Context, id int64, status string) (*Job, error)
}
