package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

const candidateColumns = `id, user_id, full_name, email, title, min_salary, skills,
	experience_years, visibility_mode, availability, summary, created_at, updated_at`

// PostgresCandidateRepository implements bidding.CandidateRepository.
type PostgresCandidateRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCandidateRepository returns a candidate repository backed by pool.
func NewPostgresCandidateRepository(pool *pgxpool.Pool) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{pool: pool}
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, c *bidding.Candidate) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO candidates (id, user_id, full_name, email, title, min_salary, skills,
		                         experience_years, visibility_mode, availability, summary,
		                         created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.UserID, c.FullName, c.Email, c.Title, c.MinSalary, c.Skills,
		c.ExperienceYears, string(c.VisibilityMode), c.Availability, c.Summary,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *PostgresCandidateRepository) Get(ctx context.Context, id uuid.UUID) (*bidding.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("candidate %s: %w", id, bidding.ErrNotFound)
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (r *PostgresCandidateRepository) GetByUserID(ctx context.Context, userID string) (*bidding.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE user_id = $1`, userID)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("candidate for user %s: %w", userID, bidding.ErrNotFound)
		}
		return nil, fmt.Errorf("get candidate by user: %w", err)
	}
	return c, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context) ([]bidding.Candidate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := make([]bidding.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PostgresCandidateRepository) Update(ctx context.Context, c *bidding.Candidate) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE candidates
		 SET full_name = $2, email = $3, title = $4, min_salary = $5, skills = $6,
		     experience_years = $7, visibility_mode = $8, availability = $9,
		     summary = $10, updated_at = NOW()
		 WHERE id = $1`,
		c.ID, c.FullName, c.Email, c.Title, c.MinSalary, c.Skills,
		c.ExperienceYears, string(c.VisibilityMode), c.Availability, c.Summary,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %s: %w", c.ID, bidding.ErrNotFound)
	}
	return nil
}

func scanCandidate(row rowScanner) (*bidding.Candidate, error) {
	var (
		c    bidding.Candidate
		mode string
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Title, &c.MinSalary, &c.Skills,
		&c.ExperienceYears, &mode, &c.Availability, &c.Summary, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.VisibilityMode = bidding.VisibilityMode(mode)
	return &c, nil
}
