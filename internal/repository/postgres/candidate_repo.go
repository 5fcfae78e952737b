package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talentmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE raised by the partial unique index on
// (email) WHERE active, which is what enforces one active candidate per
// email even under concurrent creations.
const uniqueViolation = "23505"

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `
	c.id, c.name, c.email, c.phone, c.initials, c.job_id, c.status,
	c.skills, c.experience, c.education, c.compatibility_score,
	c.resume_url, c.notes, c.active, c.applied_at, c.created_at, c.updated_at`

func scanCandidate(row pgx.Row, c *domain.Candidate, withJob bool) error {
	dest := []interface{}{
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Initials, &c.JobID, &c.Status,
		pq.Array(&c.Skills), &c.Experience, &c.Education, &c.Score,
		&c.ResumeURL, &c.Notes, &c.Active, &c.AppliedAt, &c.CreatedAt, &c.UpdatedAt,
	}
	if withJob {
		dest = append(dest, &c.JobTitle, &c.JobDepartment)
	}
	return row.Scan(dest...)
}

// Create inserts a new candidature. A second active candidate on the same
// email trips the partial unique index and maps to ErrDuplicateEmail.
func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (name, email, phone, initials, job_id, status, skills,
			experience, education, compatibility_score, resume_url, notes, active,
			applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	now := time.Now()
	c.AppliedAt = now
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.StatusNew
	}

	err := r.db.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.Initials, c.JobID, c.Status, pq.Array(c.Skills),
		c.Experience, c.Education, c.Score, c.ResumeURL, c.Notes, c.Active,
		c.AppliedAt, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves an active candidate with the joined job summary.
func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `, j.title, j.department
		FROM candidates c
		LEFT JOIN jobs j ON c.job_id = j.id
		WHERE c.id = $1 AND c.active`

	var c domain.Candidate
	if err := scanCandidate(r.db.QueryRow(ctx, query, id), &c, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Sort keys accepted from the API, mapped to ORDER BY clauses. Everything
// else falls back to newest candidature first.
var sortClauses = map[string]string{
	"appliedAt":           "c.applied_at ASC",
	"-appliedAt":          "c.applied_at DESC",
	"name":                "c.name ASC",
	"-name":               "c.name DESC",
	"compatibilityScore":  "c.compatibility_score ASC",
	"-compatibilityScore": "c.compatibility_score DESC",
}

// Fetch lists active candidates with AND-composed filters, a case
// insensitive name/email search and offset pagination. The job summary is
// joined explicitly here rather than on every read.
func (r *candidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	where := []string{"c.active"}
	args := []interface{}{}

	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		where = append(where, fmt.Sprintf("c.job_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.email ILIKE $%d)", len(args), len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	orderBy, ok := sortClauses[filter.Sort]
	if !ok {
		orderBy = sortClauses["-appliedAt"]
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(`
		SELECT %s, j.title, j.department
		FROM candidates c
		LEFT JOIN jobs j ON c.job_id = j.id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		candidateColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := scanCandidate(rows, &c, true); err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM candidates c WHERE %s`, whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return candidates, total, nil
}

// FetchQualified returns active candidates in screening, interview or
// hired status.
func (r *candidateRepo) FetchQualified(ctx context.Context) ([]domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `, j.title, j.department
		FROM candidates c
		LEFT JOIN jobs j ON c.job_id = j.id
		WHERE c.active AND c.status = ANY($1)
		ORDER BY c.applied_at DESC`

	qualified := []string{domain.StatusScreening, domain.StatusInterview, domain.StatusHired}
	rows, err := r.db.Query(ctx, query, qualified)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := scanCandidate(rows, &c, true); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Update persists the mutable profile fields. Email, job reference, score
// and the applied_at timestamp are not written here.
func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $2, phone = $3, initials = $4, skills = $5, experience = $6,
			education = $7, resume_url = $8, notes = $9, updated_at = $10
		WHERE id = $1 AND active`

	c.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.Initials, pq.Array(c.Skills), c.Experience,
		c.Education, c.ResumeURL, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus overwrites only the status column.
func (r *candidateRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE candidates SET status = $2, updated_at = $3 WHERE id = $1 AND active`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate flips the soft-delete flag, releasing the email for reuse.
func (r *candidateRepo) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE candidates SET active = FALSE, updated_at = $2 WHERE id = $1 AND active`
	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus groups active candidates by status with the mean
// compatibility score per group. Empty groups produce no row.
func (r *candidateRepo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	query := `
		SELECT status, COUNT(*), AVG(compatibility_score)::float8
		FROM candidates
		WHERE active
		GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.AverageScore); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}
