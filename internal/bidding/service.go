package bidding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// maxSalaryRevisions caps how many times a pending bid's salary may be
	// changed. Narrative fields may be edited without consuming the cap.
	maxSalaryRevisions = 3

	// defaultMatchScore is stored when the scorer is unavailable or fails.
	defaultMatchScore = 50

	defaultCurrency = "USD"
)

// Service is the bid lifecycle manager. It enforces state transitions, the
// revision cap, the minimum-salary gate and the accept/expire side effect,
// and applies the visibility policy and ranker to everything it returns.
//
// All state lives in the repositories; the Service itself holds no mutable
// state and is safe for concurrent use.
type Service struct {
	bids       BidRepository
	candidates CandidateRepository
	employers  EmployerRepository
	scorer     MatchScorer
	notifier   Notifier
	log        *zap.Logger
}

// NewService returns a configured Service.
func NewService(bids BidRepository, candidates CandidateRepository, employers EmployerRepository, scorer MatchScorer, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		bids:       bids,
		candidates: candidates,
		employers:  employers,
		scorer:     scorer,
		notifier:   notifier,
		log:        log,
	}
}

// CreateBidInput is the closed field set accepted at bid creation. Anything
// not listed here cannot be set by the caller.
type CreateBidInput struct {
	CandidateID     uuid.UUID       `json:"candidate_id"`
	SalaryOffer     int64           `json:"salary_offer"`
	Currency        string          `json:"currency"`
	Perks           []string        `json:"perks"`
	TrialOffered    bool            `json:"trial_offered"`
	TrialDays       int             `json:"trial_days"`
	RoleTitle       string          `json:"role_title"`
	RoleDescription string          `json:"role_description"`
	Message         string          `json:"message"`
	RevealEmployer  *VisibilityMode `json:"reveal_employer"` // per-bid override of the employer's default mode
}

// ReviseBidInput is the closed field set accepted when revising a pending
// bid. Nil fields are left untouched.
type ReviseBidInput struct {
	SalaryOffer     *int64    `json:"salary_offer"`
	Perks           *[]string `json:"perks"`
	TrialOffered    *bool     `json:"trial_offered"`
	TrialDays       *int      `json:"trial_days"`
	RoleTitle       *string   `json:"role_title"`
	RoleDescription *string   `json:"role_description"`
	Message         *string   `json:"message"`
}

// ListFilter selects which bids to list. Exactly one of the two must be set.
type ListFilter struct {
	CandidateID *uuid.UUID
	EmployerID  *uuid.UUID
}

// CreateBid places a new sealed bid. The caller must own an employer
// profile. The salary must meet the candidate's current minimum; both
// visibility snapshots are frozen at this instant and the match score is
// computed once, here.
func (s *Service) CreateBid(ctx context.Context, viewer ViewerIdentity, in CreateBidInput) (*Bid, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}
	if !viewer.IsEmployer() {
		return nil, fmt.Errorf("only employers may place bids: %w", ErrForbidden)
	}

	employer, err := s.employers.Get(ctx, viewer.EmployerID)
	if err != nil {
		return nil, fmt.Errorf("load employer: %w", err)
	}
	candidate, err := s.candidates.Get(ctx, in.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}

	if in.SalaryOffer <= 0 {
		return nil, &ValidationError{Msg: "salary offer must be positive"}
	}
	if in.RoleTitle == "" {
		return nil, &ValidationError{Msg: "role title is required"}
	}
	if in.TrialDays < 0 || (!in.TrialOffered && in.TrialDays > 0) {
		return nil, &ValidationError{Msg: "trial days require a trial offer"}
	}
	if in.RevealEmployer != nil {
		if _, ok := ParseVisibilityMode(string(*in.RevealEmployer)); !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("unknown reveal preference %q", *in.RevealEmployer)}
		}
	}
	if in.SalaryOffer < candidate.MinSalary {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("salary offer %d is below the candidate's minimum salary of %d", in.SalaryOffer, candidate.MinSalary),
		}
	}

	employerSnapshot := employer.VisibilityMode
	if in.RevealEmployer != nil {
		employerSnapshot = *in.RevealEmployer
	}
	if employerSnapshot == "" {
		employerSnapshot = VisibilityPublic
	}
	candidateSnapshot := candidate.VisibilityMode
	if candidateSnapshot == "" {
		candidateSnapshot = VisibilityPublic
	}

	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	bid := &Bid{
		ID:                          uuid.New(),
		CandidateID:                 candidate.ID,
		EmployerID:                  employer.ID,
		SalaryOffer:                 in.SalaryOffer,
		Currency:                    currency,
		Perks:                       in.Perks,
		TrialOffered:                in.TrialOffered,
		TrialDays:                   in.TrialDays,
		RoleTitle:                   in.RoleTitle,
		RoleDescription:             in.RoleDescription,
		Message:                     in.Message,
		EmployerVisibilitySnapshot:  employerSnapshot,
		CandidateVisibilitySnapshot: candidateSnapshot,
		Status:                      StatusPending,
		RevisionCount:               0,
		CreatedAt:                   time.Now().UTC(),
	}

	bid.MatchScore = s.scoreMatch(ctx, *candidate, *bid)

	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("create bid: %w", err)
	}

	s.notifier.BidPlaced(ctx, *bid, *candidate, *employer)

	return bid, nil
}

// GetBid returns the visibility-redacted projection of a single bid for the
// given viewer. No ranking is attached here; see ListBids.
func (s *Service) GetBid(ctx context.Context, viewer ViewerIdentity, id uuid.UUID) (*BidView, error) {
	bid, err := s.bids.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	employer, err := s.employers.Get(ctx, bid.EmployerID)
	if err != nil {
		return nil, fmt.Errorf("load bid employer: %w", err)
	}

	view := Redact(*bid, employer.CompanyName, viewer)
	return &view, nil
}

// ListBids returns redacted projections for every bid matched by the filter.
// Pending bids owned by the viewing employer additionally carry a
// competitiveness indicator, computed fresh against the candidate's full
// pending set. The indicator is attached after redaction so raw salary
// comparisons never leak into another viewer's payload.
func (s *Service) ListBids(ctx context.Context, viewer ViewerIdentity, filter ListFilter) ([]BidView, error) {
	var (
		bids []Bid
		err  error
	)
	switch {
	case filter.CandidateID != nil:
		bids, err = s.bids.ListByCandidate(ctx, *filter.CandidateID)
	case filter.EmployerID != nil:
		bids, err = s.bids.ListByEmployer(ctx, *filter.EmployerID)
	default:
		return nil, &ValidationError{Msg: "a candidate or employer filter is required"}
	}
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	employerNames := make(map[uuid.UUID]string)
	indicators := make(map[uuid.UUID]map[uuid.UUID]Indicator) // candidate → bid → indicator

	views := make([]BidView, 0, len(bids))
	for i := range bids {
		bid := bids[i]

		name, ok := employerNames[bid.EmployerID]
		if !ok {
			employer, err := s.employers.Get(ctx, bid.EmployerID)
			if err != nil {
				return nil, fmt.Errorf("load bid employer: %w", err)
			}
			name = employer.CompanyName
			employerNames[bid.EmployerID] = name
		}

		view := Redact(bid, name, viewer)

		if bid.Status == StatusPending && viewer.OwnsEmployer(bid.EmployerID) {
			ranked, ok := indicators[bid.CandidateID]
			if !ok {
				ranked, err = s.rankCandidate(ctx, bid.CandidateID)
				if err != nil {
					return nil, err
				}
				indicators[bid.CandidateID] = ranked
			}
			view.CompetitiveIndicator = ranked[bid.ID]
		}

		views = append(views, view)
	}
	return views, nil
}

// ReviseBid updates a pending bid's terms. Only the employer that placed the
// bid may revise it. A revision that changes the salary consumes one of the
// three salary revisions; other fields are free.
func (s *Service) ReviseBid(ctx context.Context, viewer ViewerIdentity, id uuid.UUID, in ReviseBidInput) (*Bid, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}

	bid, err := s.bids.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.OwnsEmployer(bid.EmployerID) {
		return nil, fmt.Errorf("only the bidding employer may revise: %w", ErrForbidden)
	}
	if bid.Status != StatusPending {
		return nil, fmt.Errorf("cannot revise a %s bid: %w", bid.Status, ErrConflict)
	}

	if in.SalaryOffer != nil && *in.SalaryOffer != bid.SalaryOffer {
		if bid.RevisionCount >= maxSalaryRevisions {
			return nil, ErrRevisionLimit
		}
		if *in.SalaryOffer <= 0 {
			return nil, &ValidationError{Msg: "salary offer must be positive"}
		}
		bid.SalaryOffer = *in.SalaryOffer
		bid.RevisionCount++
	}
	if in.Perks != nil {
		bid.Perks = *in.Perks
	}
	if in.TrialOffered != nil {
		bid.TrialOffered = *in.TrialOffered
	}
	if in.TrialDays != nil {
		if *in.TrialDays < 0 {
			return nil, &ValidationError{Msg: "trial days must not be negative"}
		}
		bid.TrialDays = *in.TrialDays
	}
	if in.RoleTitle != nil {
		if *in.RoleTitle == "" {
			return nil, &ValidationError{Msg: "role title is required"}
		}
		bid.RoleTitle = *in.RoleTitle
	}
	if in.RoleDescription != nil {
		bid.RoleDescription = *in.RoleDescription
	}
	if in.Message != nil {
		bid.Message = *in.Message
	}

	if err := s.bids.Update(ctx, bid); err != nil {
		return nil, fmt.Errorf("update bid: %w", err)
	}
	return bid, nil
}

// AcceptBid transitions the bid to accepted and expires every other pending
// bid for the same candidate in one transaction. Only the candidate the bid
// targets may accept. Two concurrent accepts resolve as one success and one
// ErrConflict.
func (s *Service) AcceptBid(ctx context.Context, viewer ViewerIdentity, id uuid.UUID) (*Bid, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}

	bid, err := s.bids.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.OwnsCandidate(bid.CandidateID) {
		return nil, fmt.Errorf("only the candidate may accept a bid: %w", ErrForbidden)
	}
	if !IsTransitionAllowed(bid.Status, StatusAccepted) {
		return nil, fmt.Errorf("cannot accept a %s bid: %w", bid.Status, ErrConflict)
	}

	accepted, expired, err := s.bids.Accept(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.log.Info("bid accepted",
		zap.String("bidId", accepted.ID.String()),
		zap.String("candidateId", accepted.CandidateID.String()),
		zap.Int64("expiredSiblings", expired),
	)

	s.notifyDecision(ctx, accepted, s.notifier.BidAccepted)

	return accepted, nil
}

// RejectBid transitions the bid to rejected. Only the candidate the bid
// targets may reject. Sibling bids are untouched.
func (s *Service) RejectBid(ctx context.Context, viewer ViewerIdentity, id uuid.UUID) (*Bid, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}

	bid, err := s.bids.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.OwnsCandidate(bid.CandidateID) {
		return nil, fmt.Errorf("only the candidate may reject a bid: %w", ErrForbidden)
	}
	if !IsTransitionAllowed(bid.Status, StatusRejected) {
		return nil, fmt.Errorf("cannot reject a %s bid: %w", bid.Status, ErrConflict)
	}

	rejected, err := s.bids.Reject(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, rejected, s.notifier.BidRejected)

	return rejected, nil
}

// rankCandidate loads the candidate's pending set and ranks it.
func (s *Service) rankCandidate(ctx context.Context, candidateID uuid.UUID) (map[uuid.UUID]Indicator, error) {
	candidate, err := s.candidates.Get(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate for ranking: %w", err)
	}
	pending, err := s.bids.PendingByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load pending bids for ranking: %w", err)
	}
	return Rank(pending, candidate.MinSalary), nil
}

// scoreMatch asks the scorer for a match score, falling back to the default
// when it fails. Scorer failures never block bid creation.
func (s *Service) scoreMatch(ctx context.Context, candidate Candidate, bid Bid) int {
	score, err := s.scorer.MatchScore(ctx, candidate, bid)
	if err != nil {
		s.log.Warn("match score unavailable, using default",
			zap.String("candidateId", candidate.ID.String()),
			zap.Error(err),
		)
		return defaultMatchScore
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// notifyDecision loads both parties and fires the given notification.
// Lookup failures are logged and swallowed: the transition is already
// committed.
func (s *Service) notifyDecision(ctx context.Context, bid *Bid, send func(context.Context, Bid, Candidate, Employer)) {
	candidate, err := s.candidates.Get(ctx, bid.CandidateID)
	if err != nil {
		s.log.Warn("skipping notification, candidate lookup failed", zap.String("bidId", bid.ID.String()), zap.Error(err))
		return
	}
	employer, err := s.employers.Get(ctx, bid.EmployerID)
	if err != nil {
		s.log.Warn("skipping notification, employer lookup failed", zap.String("bidId", bid.ID.String()), zap.Error(err))
		return
	}
	send(ctx, *bid, *candidate, *employer)
}
