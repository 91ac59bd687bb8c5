package bidding_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// ── In-memory fakes ──────────────────────────────────────────────────────────

type memBids struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*bidding.Bid
}

func newMemBids() *memBids { return &memBids{byID: make(map[uuid.UUID]*bidding.Bid)} }

func (m *memBids) Create(_ context.Context, bid *bidding.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *bid
	m.byID[bid.ID] = &cp
	return nil
}

func (m *memBids) Get(_ context.Context, id uuid.UUID) (*bidding.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.byID[id]
	if !ok {
		return nil, bidding.ErrNotFound
	}
	cp := *bid
	return &cp, nil
}

func (m *memBids) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]bidding.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []bidding.Bid
	for _, b := range m.byID {
		if b.CandidateID == candidateID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBids) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]bidding.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []bidding.Bid
	for _, b := range m.byID {
		if b.EmployerID == employerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBids) PendingByCandidate(_ context.Context, candidateID uuid.UUID) ([]bidding.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []bidding.Bid
	for _, b := range m.byID {
		if b.CandidateID == candidateID && b.Status == bidding.StatusPending {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBids) Update(_ context.Context, bid *bidding.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[bid.ID]; !ok {
		return bidding.ErrNotFound
	}
	cp := *bid
	m.byID[bid.ID] = &cp
	return nil
}

func (m *memBids) Accept(_ context.Context, id uuid.UUID, acceptedAt time.Time) (*bidding.Bid, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.byID[id]
	if !ok {
		return nil, 0, bidding.ErrNotFound
	}
	if bid.Status != bidding.StatusPending {
		return nil, 0, bidding.ErrConflict
	}
	bid.Status = bidding.StatusAccepted
	bid.AcceptedAt = &acceptedAt

	var expired int64
	for _, sibling := range m.byID {
		if sibling.ID != id && sibling.CandidateID == bid.CandidateID && sibling.Status == bidding.StatusPending {
			sibling.Status = bidding.StatusExpired
			expired++
		}
	}
	cp := *bid
	return &cp, expired, nil
}

func (m *memBids) Reject(_ context.Context, id uuid.UUID, rejectedAt time.Time) (*bidding.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bid, ok := m.byID[id]
	if !ok {
		return nil, bidding.ErrNotFound
	}
	if bid.Status != bidding.StatusPending {
		return nil, bidding.ErrConflict
	}
	bid.Status = bidding.StatusRejected
	bid.RejectedAt = &rejectedAt
	cp := *bid
	return &cp, nil
}

func (m *memBids) CandidateIDsWithPendingBids(_ context.Context) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, b := range m.byID {
		if b.Status == bidding.StatusPending && !seen[b.CandidateID] {
			seen[b.CandidateID] = true
			out = append(out, b.CandidateID)
		}
	}
	return out, nil
}

type memCandidates struct {
	byID map[uuid.UUID]*bidding.Candidate
}

func (m *memCandidates) Create(_ context.Context, c *bidding.Candidate) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCandidates) Get(_ context.Context, id uuid.UUID) (*bidding.Candidate, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, bidding.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCandidates) GetByUserID(_ context.Context, userID string) (*bidding.Candidate, error) {
	for _, c := range m.byID {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, bidding.ErrNotFound
}

func (m *memCandidates) List(_ context.Context) ([]bidding.Candidate, error) {
	var out []bidding.Candidate
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCandidates) Update(_ context.Context, c *bidding.Candidate) error {
	if _, ok := m.byID[c.ID]; !ok {
		return bidding.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

type memEmployers struct {
	byID map[uuid.UUID]*bidding.Employer
}

func (m *memEmployers) Create(_ context.Context, e *bidding.Employer) error {
	cp := *e
	m.byID[e.ID] = &cp
	return nil
}

func (m *memEmployers) Get(_ context.Context, id uuid.UUID) (*bidding.Employer, error) {
	e, ok := m.byID[id]
	if !ok {
		return nil, bidding.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEmployers) GetByUserID(_ context.Context, userID string) (*bidding.Employer, error) {
	for _, e := range m.byID {
		if e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, bidding.ErrNotFound
}

func (m *memEmployers) Update(_ context.Context, e *bidding.Employer) error {
	if _, ok := m.byID[e.ID]; !ok {
		return bidding.ErrNotFound
	}
	cp := *e
	m.byID[e.ID] = &cp
	return nil
}

type fixedScorer struct {
	score int
	err   error
}

func (s fixedScorer) MatchScore(context.Context, bidding.Candidate, bidding.Bid) (int, error) {
	return s.score, s.err
}

type recordingNotifier struct {
	placed, accepted, rejected, notCompetitive int
}

func (n *recordingNotifier) BidPlaced(context.Context, bidding.Bid, bidding.Candidate, bidding.Employer) {
	n.placed++
}
func (n *recordingNotifier) BidAccepted(context.Context, bidding.Bid, bidding.Candidate, bidding.Employer) {
	n.accepted++
}
func (n *recordingNotifier) BidRejected(context.Context, bidding.Bid, bidding.Candidate, bidding.Employer) {
	n.rejected++
}
func (n *recordingNotifier) BidNotCompetitive(context.Context, bidding.Bid, bidding.Candidate, bidding.Employer) {
	n.notCompetitive++
}

// ── Fixture ─────────────────────────────────────────────────────────────────

type fixture struct {
	svc       *bidding.Service
	bids      *memBids
	notifier  *recordingNotifier
	candidate *bidding.Candidate
	employer  *bidding.Employer
}

func newFixture(t *testing.T, scorer bidding.MatchScorer) *fixture {
	t.Helper()

	candidate := &bidding.Candidate{
		ID:             uuid.New(),
		UserID:         "user-candidate",
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		MinSalary:      80000,
		VisibilityMode: bidding.VisibilityPublic,
	}
	employer := &bidding.Employer{
		ID:             uuid.New(),
		UserID:         "user-employer",
		CompanyName:    "Acme Corp",
		Email:          "hiring@acme.example",
		VisibilityMode: bidding.VisibilityPublic,
	}

	bids := newMemBids()
	candidates := &memCandidates{byID: map[uuid.UUID]*bidding.Candidate{candidate.ID: candidate}}
	employers := &memEmployers{byID: map[uuid.UUID]*bidding.Employer{employer.ID: employer}}
	notifier := &recordingNotifier{}

	svc := bidding.NewService(bids, candidates, employers, scorer, notifier, zap.NewNop())
	return &fixture{svc: svc, bids: bids, notifier: notifier, candidate: candidate, employer: employer}
}

func (f *fixture) candidateViewer() bidding.ViewerIdentity {
	return bidding.ViewerIdentity{Authenticated: true, UserID: f.candidate.UserID, CandidateID: f.candidate.ID}
}

func (f *fixture) employerViewer() bidding.ViewerIdentity {
	return bidding.ViewerIdentity{
		Authenticated:      true,
		UserID:             f.employer.UserID,
		EmployerID:         f.employer.ID,
		EmployerVisibility: f.employer.VisibilityMode,
	}
}

func (f *fixture) placeBid(t *testing.T, salary int64) *bidding.Bid {
	t.Helper()
	bid, err := f.svc.CreateBid(context.Background(), f.employerViewer(), bidding.CreateBidInput{
		CandidateID: f.candidate.ID,
		SalaryOffer: salary,
		RoleTitle:   "Backend Engineer",
	})
	require.NoError(t, err)
	return bid
}

// ── CreateBid ───────────────────────────────────────────────────────────────

func TestCreateBidBelowMinimumSalary(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})

	_, err := f.svc.CreateBid(context.Background(), f.employerViewer(), bidding.CreateBidInput{
		CandidateID: f.candidate.ID,
		SalaryOffer: 70000, // minimum is 80000
		RoleTitle:   "Backend Engineer",
	})

	var verr *bidding.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Msg, "below the candidate's minimum salary")

	// Nothing persisted, nobody notified.
	pending, err := f.bids.PendingByCandidate(context.Background(), f.candidate.ID)
	require.NoError(t, err)
	require.Empty(t, pending)
	require.Zero(t, f.notifier.placed)
}

func TestCreateBidFreezesSnapshots(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})

	bid := f.placeBid(t, 90000)
	require.Equal(t, bidding.VisibilityPublic, bid.EmployerVisibilitySnapshot)
	require.Equal(t, bidding.VisibilityPublic, bid.CandidateVisibilitySnapshot)
	require.Equal(t, bidding.StatusPending, bid.Status)
	require.Equal(t, 0, bid.RevisionCount)
	require.Equal(t, 60, bid.MatchScore)
	require.Equal(t, "USD", bid.Currency)
	require.Equal(t, 1, f.notifier.placed)
}

func TestCreateBidRevealOverride(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})

	anon := bidding.VisibilityAnonymous
	bid, err := f.svc.CreateBid(context.Background(), f.employerViewer(), bidding.CreateBidInput{
		CandidateID:    f.candidate.ID,
		SalaryOffer:    90000,
		RoleTitle:      "Backend Engineer",
		RevealEmployer: &anon,
	})
	require.NoError(t, err)

	// The per-bid override wins over the employer's public default.
	require.Equal(t, bidding.VisibilityAnonymous, bid.EmployerVisibilitySnapshot)
}

func TestCreateBidRequiresEmployer(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})

	_, err := f.svc.CreateBid(context.Background(), bidding.AnonymousViewer(), bidding.CreateBidInput{
		CandidateID: f.candidate.ID,
		SalaryOffer: 90000,
		RoleTitle:   "Backend Engineer",
	})
	require.ErrorIs(t, err, bidding.ErrUnauthorized)

	_, err = f.svc.CreateBid(context.Background(), f.candidateViewer(), bidding.CreateBidInput{
		CandidateID: f.candidate.ID,
		SalaryOffer: 90000,
		RoleTitle:   "Backend Engineer",
	})
	require.ErrorIs(t, err, bidding.ErrForbidden)
}

func TestCreateBidScorerFailureUsesDefault(t *testing.T) {
	f := newFixture(t, fixedScorer{err: errors.New("model unavailable")})

	bid := f.placeBid(t, 90000)
	require.Equal(t, 50, bid.MatchScore)
}

// ── ReviseBid ───────────────────────────────────────────────────────────────

func TestReviseBidSalaryCap(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)
	viewer := f.employerViewer()

	for i, salary := range []int64{91000, 92000, 93000} {
		revised, err := f.svc.ReviseBid(context.Background(), viewer, bid.ID, bidding.ReviseBidInput{
			SalaryOffer: &salary,
		})
		require.NoError(t, err)
		require.Equal(t, i+1, revised.RevisionCount)
	}

	salary := int64(94000)
	_, err := f.svc.ReviseBid(context.Background(), viewer, bid.ID, bidding.ReviseBidInput{
		SalaryOffer: &salary,
	})
	require.ErrorIs(t, err, bidding.ErrRevisionLimit)

	// The failed fourth attempt changed nothing.
	current, err := f.bids.Get(context.Background(), bid.ID)
	require.NoError(t, err)
	require.Equal(t, 3, current.RevisionCount)
	require.Equal(t, int64(93000), current.SalaryOffer)
}

func TestReviseBidNonSalaryFieldsAreFree(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)
	viewer := f.employerViewer()

	msg := "updated pitch"
	for i := 0; i < 5; i++ {
		revised, err := f.svc.ReviseBid(context.Background(), viewer, bid.ID, bidding.ReviseBidInput{
			Message: &msg,
		})
		require.NoError(t, err)
		require.Equal(t, 0, revised.RevisionCount)
	}
}

func TestReviseBidSameSalaryDoesNotConsume(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)

	same := int64(90000)
	revised, err := f.svc.ReviseBid(context.Background(), f.employerViewer(), bid.ID, bidding.ReviseBidInput{
		SalaryOffer: &same,
	})
	require.NoError(t, err)
	require.Equal(t, 0, revised.RevisionCount)
}

func TestReviseBidOwnershipAndState(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)

	salary := int64(95000)
	otherEmployer := bidding.ViewerIdentity{Authenticated: true, UserID: "user-rival", EmployerID: uuid.New()}
	_, err := f.svc.ReviseBid(context.Background(), otherEmployer, bid.ID, bidding.ReviseBidInput{SalaryOffer: &salary})
	require.ErrorIs(t, err, bidding.ErrForbidden)

	_, err = f.svc.AcceptBid(context.Background(), f.candidateViewer(), bid.ID)
	require.NoError(t, err)

	_, err = f.svc.ReviseBid(context.Background(), f.employerViewer(), bid.ID, bidding.ReviseBidInput{SalaryOffer: &salary})
	require.ErrorIs(t, err, bidding.ErrConflict)
}

// ── Accept / Reject ─────────────────────────────────────────────────────────

func TestAcceptBidExpiresSiblings(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	winner := f.placeBid(t, 100000)
	loser1 := f.placeBid(t, 95000)
	loser2 := f.placeBid(t, 90000)

	accepted, err := f.svc.AcceptBid(context.Background(), f.candidateViewer(), winner.ID)
	require.NoError(t, err)
	require.Equal(t, bidding.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	require.Equal(t, 1, f.notifier.accepted)

	for _, id := range []uuid.UUID{loser1.ID, loser2.ID} {
		sibling, err := f.bids.Get(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, bidding.StatusExpired, sibling.Status)
	}
}

func TestAcceptBidOnlyOnceWins(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)

	_, err := f.svc.AcceptBid(context.Background(), f.candidateViewer(), bid.ID)
	require.NoError(t, err)

	_, err = f.svc.AcceptBid(context.Background(), f.candidateViewer(), bid.ID)
	require.ErrorIs(t, err, bidding.ErrConflict)
	require.Equal(t, 1, f.notifier.accepted)
}

func TestAcceptBidOwnership(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)

	_, err := f.svc.AcceptBid(context.Background(), f.employerViewer(), bid.ID)
	require.ErrorIs(t, err, bidding.ErrForbidden)

	otherCandidate := bidding.ViewerIdentity{Authenticated: true, UserID: "user-other", CandidateID: uuid.New()}
	_, err = f.svc.AcceptBid(context.Background(), otherCandidate, bid.ID)
	require.ErrorIs(t, err, bidding.ErrForbidden)
}

func TestRejectBidLeavesSiblingsPending(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	rejectedBid := f.placeBid(t, 90000)
	sibling := f.placeBid(t, 95000)

	rejected, err := f.svc.RejectBid(context.Background(), f.candidateViewer(), rejectedBid.ID)
	require.NoError(t, err)
	require.Equal(t, bidding.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	require.Equal(t, 1, f.notifier.rejected)

	still, err := f.bids.Get(context.Background(), sibling.ID)
	require.NoError(t, err)
	require.Equal(t, bidding.StatusPending, still.Status)
}

// ── GetBid / ListBids ───────────────────────────────────────────────────────

func TestGetBidRoundTripForOwner(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 90000)

	view, err := f.svc.GetBid(context.Background(), f.employerViewer(), bid.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Salary)
	require.Equal(t, bid.SalaryOffer, *view.Salary)
	require.NotNil(t, view.MatchScore)

	anonView, err := f.svc.GetBid(context.Background(), bidding.AnonymousViewer(), bid.ID)
	require.NoError(t, err)
	require.Nil(t, anonView.Salary)
	require.Equal(t, bid.ID, anonView.ID)
}

func TestListBidsAttachesIndicatorForOwningEmployer(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	high := f.placeBid(t, 100000)
	low := f.placeBid(t, 85000)

	views, err := f.svc.ListBids(context.Background(), f.employerViewer(), bidding.ListFilter{
		EmployerID: &f.employer.ID,
	})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := make(map[uuid.UUID]bidding.BidView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	require.Equal(t, bidding.IndicatorHighest, byID[high.ID].CompetitiveIndicator)
	require.Equal(t, bidding.IndicatorNotCompetitive, byID[low.ID].CompetitiveIndicator)
}

func TestListBidsNoIndicatorForCandidate(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	f.placeBid(t, 100000)
	f.placeBid(t, 85000)

	views, err := f.svc.ListBids(context.Background(), f.candidateViewer(), bidding.ListFilter{
		CandidateID: &f.candidate.ID,
	})
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		require.Empty(t, v.CompetitiveIndicator, "indicators are employer-only")
		require.NotNil(t, v.Salary, "the candidate sees every salary offered to them")
	}
}

func TestListBidsNoIndicatorOnTerminalBids(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})
	bid := f.placeBid(t, 100000)

	_, err := f.svc.AcceptBid(context.Background(), f.candidateViewer(), bid.ID)
	require.NoError(t, err)

	views, err := f.svc.ListBids(context.Background(), f.employerViewer(), bidding.ListFilter{
		EmployerID: &f.employer.ID,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Empty(t, views[0].CompetitiveIndicator)
}

func TestListBidsRequiresFilter(t *testing.T) {
	f := newFixture(t, fixedScorer{score: 60})

	_, err := f.svc.ListBids(context.Background(), f.employerViewer(), bidding.ListFilter{})
	var verr *bidding.ValidationError
	require.ErrorAs(t, err, &verr)
}
