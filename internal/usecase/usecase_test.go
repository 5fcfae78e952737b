package usecase_test

import (
	"context"
	"errors"
	"testing"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/internal/usecase"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) FetchQualified(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCandidateRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) IncrementCandidateCount(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CandidatureConfirmation(c *domain.Candidate, job *domain.Job) {
	m.Called(c, job)
}

func (m *MockNotifier) CandidateMessage(c *domain.Candidate, subject, body string) {
	m.Called(c, subject, body)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func openJob() *domain.Job {
	return &domain.Job{
		ID:           7,
		Title:        "Backend Engineer",
		Department:   "Engineering",
		Status:       domain.JobStatusOpen,
		Requirements: []string{"go", "postgresql"},
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates candidature against an open job", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewCandidateUsecase(candidateRepo, jobRepo, notifier, newValidator())

		job := openJob()
		jobRepo.On("GetByID", ctx, int64(7)).Return(job, nil)
		candidateRepo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		jobRepo.On("IncrementCandidateCount", ctx, int64(7)).Return(nil)
		notifier.On("CandidatureConfirmation", mock.Anything, job).Return()

		created, err := uc.Apply(ctx, &domain.Candidate{
			Name:   "Ana Silva",
			Email:  "Ana@X.com",
			JobID:  7,
			Skills: []string{"go"},
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusNew, created.Status)
		assert.Equal(t, "AS", created.Initials)
		assert.Equal(t, "ana@x.com", created.Email, "email must be lowercased on write")
		assert.True(t, created.Active)
		assert.GreaterOrEqual(t, created.Score, 0)
		assert.LessOrEqual(t, created.Score, 100)
		jobRepo.AssertCalled(t, "IncrementCandidateCount", ctx, int64(7))
		notifier.AssertCalled(t, "CandidatureConfirmation", mock.Anything, job)
	})

	t.Run("rejects closed job without persisting anything", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewCandidateUsecase(candidateRepo, jobRepo, notifier, newValidator())

		closed := openJob()
		closed.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", ctx, int64(7)).Return(closed, nil)

		_, err := uc.Apply(ctx, &domain.Candidate{Name: "Ana Silva", Email: "ana@x.com", JobID: 7})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindJobClosed, appErr.Kind)
		candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		jobRepo.AssertNotCalled(t, "IncrementCandidateCount", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "CandidatureConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown job", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, jobRepo, new(MockNotifier), newValidator())

		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(ctx, &domain.Candidate{Name: "Ana Silva", Email: "ana@x.com", JobID: 99})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("maps storage uniqueness violation to DuplicateEmail", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewCandidateUsecase(candidateRepo, jobRepo, notifier, newValidator())

		jobRepo.On("GetByID", ctx, int64(7)).Return(openJob(), nil)
		candidateRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEmail)

		_, err := uc.Apply(ctx, &domain.Candidate{Name: "Ana Silva", Email: "ana@x.com", JobID: 7})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindDuplicateEmail, appErr.Kind)
		jobRepo.AssertNotCalled(t, "IncrementCandidateCount", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "CandidatureConfirmation", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid payload before touching the store", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, jobRepo, new(MockNotifier), newValidator())

		cases := []domain.Candidate{
			{Name: "Al", Email: "al@x.com", JobID: 1},                              // name too short
			{Name: "Ana Silva", Email: "not-an-email", JobID: 1},                   // bad email
			{Name: "Ana Silva", Email: "ana@x.com"},                                // missing job
			{Name: "Ana Silva", Email: "ana@x.com", JobID: 1, Phone: "11999999999"}, // bad phone format
		}
		for _, c := range cases {
			_, err := uc.Apply(ctx, &c)
			var appErr *apperror.AppError
			assert.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
		}
		jobRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects values outside the enumeration without touching storage", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		for _, bad := range []string{"approved", "HIRED", "", "archived"} {
			_, err := uc.UpdateStatus(ctx, 1, bad)
			var appErr *apperror.AppError
			assert.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindInvalidStatus, appErr.Kind)
			details, ok := appErr.Details.(map[string]interface{})
			assert.True(t, ok)
			assert.Equal(t, domain.CandidateStatuses, details["valid_statuses"])
		}
		candidateRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		candidateRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("accepts any of the five values as a target", func(t *testing.T) {
		// Published contract is permissive: new → hired → rejected is legal.
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		current := &domain.Candidate{ID: 1, Name: "Ana Silva", Status: domain.StatusNew, Active: true}
		candidateRepo.On("GetByID", ctx, int64(1)).Return(current, nil)
		candidateRepo.On("UpdateStatus", ctx, int64(1), domain.StatusHired).Return(nil)
		candidateRepo.On("UpdateStatus", ctx, int64(1), domain.StatusRejected).Return(nil)

		c, err := uc.UpdateStatus(ctx, 1, domain.StatusHired)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusHired, c.Status)

		c, err = uc.UpdateStatus(ctx, 1, domain.StatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, c.Status)
	})

	t.Run("unknown candidate yields NotFound", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateStatus(ctx, 42, domain.StatusScreening)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rederives initials when the name changes", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		current := &domain.Candidate{ID: 1, Name: "Ana Silva", Initials: "AS", Score: 80, Active: true}
		candidateRepo.On("GetByID", ctx, int64(1)).Return(current, nil)
		candidateRepo.On("Update", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil)

		name := "Bruno Costa"
		updated, err := uc.Update(ctx, 1, &domain.CandidateUpdate{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "BC", updated.Initials)
		assert.Equal(t, 80, updated.Score, "score must not be recomputed on update")
	})

	t.Run("rejects notes over 1000 characters", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		long := make([]byte, 1001)
		for i := range long {
			long[i] = 'a'
		}
		notes := string(long)
		_, err := uc.Update(ctx, 1, &domain.CandidateUpdate{Notes: &notes})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		candidateRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("computes pagination over matching records", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		page := []domain.Candidate{{ID: 1}, {ID: 2}}
		candidateRepo.On("Fetch", ctx, mock.AnythingOfType("domain.CandidateFilter")).Return(page, int64(5), nil)

		items, pagination, err := uc.List(ctx, domain.CandidateFilter{Page: 1, PageSize: 2})

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, int64(5), pagination.TotalItems)
		assert.Equal(t, 3, pagination.TotalPages)
		assert.Equal(t, 2, pagination.PageSize)
	})

	t.Run("defaults page and page size", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("Fetch", ctx, mock.MatchedBy(func(f domain.CandidateFilter) bool {
			return f.Page == 1 && f.PageSize == 10
		})).Return([]domain.Candidate{}, int64(0), nil)

		_, pagination, err := uc.List(ctx, domain.CandidateFilter{})
		assert.NoError(t, err)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 0, pagination.TotalPages)
	})
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("totals derive from the grouped rows", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("CountByStatus", ctx).Return([]domain.StatusCount{
			{Status: domain.StatusNew, Count: 4, AverageScore: 35},
			{Status: domain.StatusScreening, Count: 3, AverageScore: 60},
			{Status: domain.StatusHired, Count: 1, AverageScore: 90},
		}, nil)

		stats, err := uc.Statistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(8), stats.Total)
		assert.Equal(t, int64(4), stats.Qualified)
		assert.Equal(t, 50, stats.QualifiedPercent)
		assert.Len(t, stats.ByStatus, 3)
		assert.Equal(t, int64(3), stats.ByStatus[domain.StatusScreening].Count)

		var sum int64
		for _, sc := range stats.ByStatus {
			sum += sc.Count
		}
		assert.Equal(t, stats.Total, sum)
	})

	t.Run("empty population yields zero percent, not a fault", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("CountByStatus", ctx).Return([]domain.StatusCount{}, nil)

		stats, err := uc.Statistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), stats.Total)
		assert.Equal(t, 0, stats.QualifiedPercent)
		assert.Empty(t, stats.ByStatus)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("queues the message for an existing candidate", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), notifier, newValidator())

		c := &domain.Candidate{ID: 3, Name: "Ana Silva", Email: "ana@x.com", Active: true}
		candidateRepo.On("GetByID", ctx, int64(3)).Return(c, nil)
		notifier.On("CandidateMessage", c, "Interview", "See you Monday").Return()

		err := uc.SendMessage(ctx, 3, "Interview", "See you Monday")

		assert.NoError(t, err)
		notifier.AssertCalled(t, "CandidateMessage", c, "Interview", "See you Monday")
	})

	t.Run("requires subject and body", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		notifier := new(MockNotifier)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), notifier, newValidator())

		err := uc.SendMessage(ctx, 3, "", "body")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		notifier.AssertNotCalled(t, "CandidateMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft deletes", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("Deactivate", ctx, int64(5)).Return(nil)
		assert.NoError(t, uc.Delete(ctx, 5))
		candidateRepo.AssertCalled(t, "Deactivate", ctx, int64(5))
	})

	t.Run("maps missing record to NotFound", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

		candidateRepo.On("Deactivate", ctx, int64(5)).Return(domain.ErrNotFound)
		err := uc.Delete(ctx, 5)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})
}

func TestJobUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("status must be open or closed", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, newValidator())

		_, err := uc.UpdateJobStatus(ctx, 1, "paused")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("closing a job persists the new status", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, newValidator())

		jobRepo.On("GetByID", ctx, int64(1)).Return(openJob(), nil)
		jobRepo.On("Update", ctx, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Status == domain.JobStatusClosed
		})).Return(nil)

		job, err := uc.UpdateJobStatus(ctx, 1, domain.JobStatusClosed)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusClosed, job.Status)
	})
}

func TestInternalErrorsAreMasked(t *testing.T) {
	ctx := context.Background()
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockJobRepo), new(MockNotifier), newValidator())

	boom := errors.New("connection reset")
	candidateRepo.On("GetByID", ctx, int64(1)).Return(nil, boom)

	_, err := uc.GetByID(ctx, 1)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
	assert.Equal(t, "Internal Server Error", appErr.Message)
	assert.Equal(t, boom, appErr.Err)
}
