// Package repository implements the bidding storage contracts on PostgreSQL
// via pgx.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

const bidColumns = `id, candidate_id, employer_id, salary_offer, currency, perks,
	trial_offered, trial_days, role_title, role_description, message, match_score,
	employer_visibility_snapshot, candidate_visibility_snapshot, status,
	revision_count, created_at, accepted_at, rejected_at`

// PostgresBidRepository implements bidding.BidRepository.
type PostgresBidRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBidRepository returns a bid repository backed by pool.
func NewPostgresBidRepository(pool *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{pool: pool}
}

func (r *PostgresBidRepository) Create(ctx context.Context, bid *bidding.Bid) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bids (id, candidate_id, employer_id, salary_offer, currency, perks,
		                   trial_offered, trial_days, role_title, role_description, message,
		                   match_score, employer_visibility_snapshot, candidate_visibility_snapshot,
		                   status, revision_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		bid.ID, bid.CandidateID, bid.EmployerID, bid.SalaryOffer, bid.Currency, bid.Perks,
		bid.TrialOffered, bid.TrialDays, bid.RoleTitle, bid.RoleDescription, bid.Message,
		bid.MatchScore, string(bid.EmployerVisibilitySnapshot), string(bid.CandidateVisibilitySnapshot),
		string(bid.Status), bid.RevisionCount, bid.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *PostgresBidRepository) Get(ctx context.Context, id uuid.UUID) (*bidding.Bid, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id)
	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("bid %s: %w", id, bidding.ErrNotFound)
		}
		return nil, fmt.Errorf("get bid: %w", err)
	}
	return bid, nil
}

func (r *PostgresBidRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]bidding.Bid, error) {
	return r.list(ctx, `SELECT `+bidColumns+` FROM bids WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresBidRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]bidding.Bid, error) {
	return r.list(ctx, `SELECT `+bidColumns+` FROM bids WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

func (r *PostgresBidRepository) PendingByCandidate(ctx context.Context, candidateID uuid.UUID) ([]bidding.Bid, error) {
	return r.list(ctx, `SELECT `+bidColumns+` FROM bids WHERE candidate_id = $1 AND status = 'pending' ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresBidRepository) Update(ctx context.Context, bid *bidding.Bid) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bids
		 SET salary_offer = $2, currency = $3, perks = $4, trial_offered = $5,
		     trial_days = $6, role_title = $7, role_description = $8, message = $9,
		     revision_count = $10
		 WHERE id = $1`,
		bid.ID, bid.SalaryOffer, bid.Currency, bid.Perks, bid.TrialOffered,
		bid.TrialDays, bid.RoleTitle, bid.RoleDescription, bid.Message,
		bid.RevisionCount,
	)
	if err != nil {
		return fmt.Errorf("update bid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bid %s: %w", bid.ID, bidding.ErrNotFound)
	}
	return nil
}

// Accept conditionally accepts the bid and expires its pending siblings in
// one transaction. The conditional update is the optimistic concurrency
// check: a lost race scans zero rows and surfaces as ErrConflict.
func (r *PostgresBidRepository) Accept(ctx context.Context, id uuid.UUID, acceptedAt time.Time) (*bidding.Bid, int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin accept tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE bids SET status = 'accepted', accepted_at = $2
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+bidColumns,
		id, acceptedAt,
	)
	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, r.conflictOrMissing(ctx, id)
		}
		return nil, 0, fmt.Errorf("accept bid: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE bids SET status = 'expired'
		 WHERE candidate_id = $1 AND id <> $2 AND status = 'pending'`,
		bid.CandidateID, bid.ID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("expire sibling bids: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit accept tx: %w", err)
	}
	return bid, tag.RowsAffected(), nil
}

func (r *PostgresBidRepository) Reject(ctx context.Context, id uuid.UUID, rejectedAt time.Time) (*bidding.Bid, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE bids SET status = 'rejected', rejected_at = $2
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+bidColumns,
		id, rejectedAt,
	)
	bid, err := scanBid(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, id)
		}
		return nil, fmt.Errorf("reject bid: %w", err)
	}
	return bid, nil
}

func (r *PostgresBidRepository) CandidateIDsWithPendingBids(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT candidate_id FROM bids WHERE status = 'pending'`)
	if err != nil {
		return nil, fmt.Errorf("query pending candidates: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan candidate id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// conflictOrMissing distinguishes a lost state race from a dangling id.
func (r *PostgresBidRepository) conflictOrMissing(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM bids WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("bid %s: %w", id, bidding.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check bid status: %w", err)
	}
	return fmt.Errorf("bid %s is %s: %w", id, status, bidding.ErrConflict)
}

func (r *PostgresBidRepository) list(ctx context.Context, query string, arg any) ([]bidding.Bid, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	bids := make([]bidding.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (*bidding.Bid, error) {
	var (
		b                 bidding.Bid
		empSnap, candSnap string
		status            string
	)
	err := row.Scan(
		&b.ID, &b.CandidateID, &b.EmployerID, &b.SalaryOffer, &b.Currency, &b.Perks,
		&b.TrialOffered, &b.TrialDays, &b.RoleTitle, &b.RoleDescription, &b.Message,
		&b.MatchScore, &empSnap, &candSnap, &status,
		&b.RevisionCount, &b.CreatedAt, &b.AcceptedAt, &b.RejectedAt,
	)
	if err != nil {
		return nil, err
	}
	b.EmployerVisibilitySnapshot = bidding.VisibilityMode(empSnap)
	b.CandidateVisibilitySnapshot = bidding.VisibilityMode(candSnap)
	b.Status = bidding.Status(status)
	return &b, nil
}
