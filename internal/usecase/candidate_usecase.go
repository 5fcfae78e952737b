package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/matching"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const defaultPageSize = 10

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	jobRepo       domain.JobRepository
	notifier      domain.Notifier
	validate      *validator.Validate
}

// NewCandidateUsecase creates a new candidate usecase
func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	notifier domain.Notifier,
	validate *validator.Validate,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		notifier:      notifier,
		validate:      validate,
	}
}

// Apply creates a candidature: the job must exist and be open, the email
// must not belong to another active candidate, and the compatibility score
// is computed exactly once, here.
func (u *candidateUsecase) Apply(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	if err := u.validate.Struct(c); err != nil {
		return nil, validationError(err)
	}

	job, err := u.jobRepo.GetByID(ctx, c.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !job.Open() {
		return nil, apperror.JobClosed("This job is no longer open for candidatures")
	}

	c.Status = domain.StatusNew
	c.Initials = domain.DeriveInitials(c.Name)
	c.Score = matching.Score(c, job)
	c.Active = true

	// The active-email uniqueness lives in a storage constraint, not a
	// pre-check, so a race between two creations still yields exactly one
	// success.
	if err := u.candidateRepo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, apperror.DuplicateEmail("A candidate with this email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	// Counter bump and confirmation email happen only after the candidate
	// row committed.
	if err := u.jobRepo.IncrementCandidateCount(ctx, job.ID); err != nil {
		return nil, apperror.Internal(err)
	}

	u.notifier.CandidatureConfirmation(c, job)

	return c, nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// List returns one page of active candidates with the pagination block.
func (u *candidateUsecase) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, *domain.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	items, total, err := u.candidateRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}

	pagination := &domain.Pagination{
		Page:       filter.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
		TotalItems: total,
		PageSize:   filter.PageSize,
	}
	return items, pagination, nil
}

// Update applies a generic field update. Email, job and active flag are
// untouchable through this path, and the compatibility score is never
// recomputed. Initials follow the name.
func (u *candidateUsecase) Update(ctx context.Context, id int64, upd *domain.CandidateUpdate) (*domain.Candidate, error) {
	if err := u.validate.Struct(upd); err != nil {
		return nil, validationError(err)
	}

	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	if upd.Name != nil {
		c.Name = strings.TrimSpace(*upd.Name)
		c.Initials = domain.DeriveInitials(c.Name)
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Skills != nil {
		c.Skills = *upd.Skills
	}
	if upd.Experience != nil {
		c.Experience = *upd.Experience
	}
	if upd.Education != nil {
		c.Education = *upd.Education
	}
	if upd.ResumeURL != nil {
		c.ResumeURL = *upd.ResumeURL
	}
	if upd.Notes != nil {
		c.Notes = *upd.Notes
	}

	if err := u.candidateRepo.Update(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	return c, nil
}

// UpdateStatus moves a candidature to another status. The published
// contract is permissive: any of the five values is a legal target from
// any current status. Anything outside the enumeration is rejected before
// storage is touched.
func (u *candidateUsecase) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Candidate, error) {
	if !domain.ValidStatus(status) {
		return nil, apperror.InvalidStatus("Invalid status", domain.CandidateStatuses)
	}

	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	if err := u.candidateRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}

	c.Status = status
	return c, nil
}

// Delete is a soft delete: the record is flagged inactive and drops out of
// listings and statistics, freeing its email for reuse.
func (u *candidateUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.candidateRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// ListQualified returns active candidates past initial intake.
func (u *candidateUsecase) ListQualified(ctx context.Context) ([]domain.Candidate, error) {
	items, err := u.candidateRepo.FetchQualified(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

// Statistics aggregates active candidates by status. Totals are derived
// from the grouped rows, so counts always sum to the reported total, and
// an empty population yields 0 percent rather than a division by zero.
func (u *candidateUsecase) Statistics(ctx context.Context) (*domain.CandidateStatistics, error) {
	rows, err := u.candidateRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stats := &domain.CandidateStatistics{
		ByStatus: make(map[string]domain.StatusCount, len(rows)),
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row
		stats.Total += row.Count
		if domain.IsQualified(row.Status) {
			stats.Qualified += row.Count
		}
	}
	if stats.Total > 0 {
		stats.QualifiedPercent = int(math.Round(100 * float64(stats.Qualified) / float64(stats.Total)))
	}
	return stats, nil
}

// SendMessage queues a recruiter message to the candidate. Delivery is
// fire-and-forget: a success response means the message was accepted for
// dispatch, not that it was delivered.
func (u *candidateUsecase) SendMessage(ctx context.Context, id int64, subject, body string) error {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(body) == "" {
		return apperror.Validation("Subject and message are required")
	}

	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}

	u.notifier.CandidateMessage(c, subject, body)
	return nil
}

// validationError wraps validator output with per-field messages.
func validationError(err error) *apperror.AppError {
	appErr := apperror.Validation("Validation failed")
	appErr.Details = validation.FormatValidationErrors(err)
	return appErr
}
