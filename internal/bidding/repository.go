package bidding

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BidRepository is the storage contract for bids, implemented by the
// repository package on PostgreSQL and by in-memory mocks in tests.
type BidRepository interface {
	Create(ctx context.Context, bid *Bid) error
	Get(ctx context.Context, id uuid.UUID) (*Bid, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Bid, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Bid, error)
	PendingByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Bid, error)
	Update(ctx context.Context, bid *Bid) error

	// Accept conditionally marks the bid accepted (only while pending) and
	// expires every sibling pending bid for the same candidate in the same
	// transaction. Returns the accepted bid and the number of expired
	// siblings. Returns ErrConflict when the bid was no longer pending.
	Accept(ctx context.Context, id uuid.UUID, acceptedAt time.Time) (*Bid, int64, error)

	// Reject conditionally marks the bid rejected (only while pending).
	// Returns ErrConflict when the bid was no longer pending.
	Reject(ctx context.Context, id uuid.UUID, rejectedAt time.Time) (*Bid, error)

	// CandidateIDsWithPendingBids lists candidates that currently have at
	// least one pending bid. Used by the competitiveness sweeper.
	CandidateIDsWithPendingBids(ctx context.Context) ([]uuid.UUID, error)
}

// CandidateRepository is the storage contract for candidate profiles.
type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	Get(ctx context.Context, id uuid.UUID) (*Candidate, error)
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
	Update(ctx context.Context, c *Candidate) error
}

// EmployerRepository is the storage contract for employer profiles.
type EmployerRepository interface {
	Create(ctx context.Context, e *Employer) error
	Get(ctx context.Context, id uuid.UUID) (*Employer, error)
	GetByUserID(ctx context.Context, userID string) (*Employer, error)
	Update(ctx context.Context, e *Employer) error
}

// MatchScorer computes the 0-100 match score stored on a bid at creation.
// Implemented by the ai package; treated as an opaque scoring function.
type MatchScorer interface {
	MatchScore(ctx context.Context, c Candidate, bid Bid) (int, error)
}

// Notifier is the fire-and-forget gateway invoked after lifecycle
// transitions. Implementations must never return delivery failures to the
// caller: a committed status transition is not rolled back because an email
// could not be sent.
type Notifier interface {
	BidPlaced(ctx context.Context, bid Bid, c Candidate, e Employer)
	BidAccepted(ctx context.Context, bid Bid, c Candidate, e Employer)
	BidRejected(ctx context.Context, bid Bid, c Candidate, e Employer)
	BidNotCompetitive(ctx context.Context, bid Bid, c Candidate, e Employer)
}
