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

const employerColumns = `id, user_id, company_name, email, visibility_mode,
	website, location, industry, description, created_at, updated_at`

// PostgresEmployerRepository implements bidding.EmployerRepository.
type PostgresEmployerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEmployerRepository returns an employer repository backed by pool.
func NewPostgresEmployerRepository(pool *pgxpool.Pool) *PostgresEmployerRepository {
	return &PostgresEmployerRepository{pool: pool}
}

func (r *PostgresEmployerRepository) Create(ctx context.Context, e *bidding.Employer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employers (id, user_id, company_name, email, visibility_mode,
		                        website, location, industry, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.UserID, e.CompanyName, e.Email, string(e.VisibilityMode),
		e.Website, e.Location, e.Industry, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employer: %w", err)
	}
	return nil
}

func (r *PostgresEmployerRepository) Get(ctx context.Context, id uuid.UUID) (*bidding.Employer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1`, id)
	e, err := scanEmployer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employer %s: %w", id, bidding.ErrNotFound)
		}
		return nil, fmt.Errorf("get employer: %w", err)
	}
	return e, nil
}

func (r *PostgresEmployerRepository) GetByUserID(ctx context.Context, userID string) (*bidding.Employer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employerColumns+` FROM employers WHERE user_id = $1`, userID)
	e, err := scanEmployer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employer for user %s: %w", userID, bidding.ErrNotFound)
		}
		return nil, fmt.Errorf("get employer by user: %w", err)
	}
	return e, nil
}

func (r *PostgresEmployerRepository) Update(ctx context.Context, e *bidding.Employer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employers
		 SET company_name = $2, email = $3, visibility_mode = $4, website = $5,
		     location = $6, industry = $7, description = $8, updated_at = NOW()
		 WHERE id = $1`,
		e.ID, e.CompanyName, e.Email, string(e.VisibilityMode),
		e.Website, e.Location, e.Industry, e.Description,
	)
	if err != nil {
		return fmt.Errorf("update employer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employer %s: %w", e.ID, bidding.ErrNotFound)
	}
	return nil
}

func scanEmployer(row rowScanner) (*bidding.Employer, error) {
	var (
		e    bidding.Employer
		mode string
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyName, &e.Email, &mode,
		&e.Website, &e.Location, &e.Industry, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.VisibilityMode = bidding.VisibilityMode(mode)
	return &e, nil
}
