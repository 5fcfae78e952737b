package usecase

import (
	"context"
	"errors"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, validate: validate}
}

func (u *jobUsecase) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return validationError(err)
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if job.Status != domain.JobStatusOpen && job.Status != domain.JobStatusClosed {
		return apperror.Validation("Job status must be open or closed")
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.Fetch(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return validationError(err)
	}
	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// UpdateJobStatus opens or closes a job for candidatures.
func (u *jobUsecase) UpdateJobStatus(ctx context.Context, id int64, status string) (*domain.Job, error) {
	if status != domain.JobStatusOpen && status != domain.JobStatusClosed {
		return nil, apperror.Validation("Job status must be open or closed")
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	job.Status = status
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}
