package bidding_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

func sampleBid() bidding.Bid {
	return bidding.Bid{
		ID:                          uuid.New(),
		CandidateID:                 uuid.New(),
		EmployerID:                  uuid.New(),
		SalaryOffer:                 120000,
		Currency:                    "USD",
		Message:                     "We would love to talk",
		RoleTitle:                   "Senior Backend Engineer",
		MatchScore:                  72,
		EmployerVisibilitySnapshot:  bidding.VisibilityPublic,
		CandidateVisibilitySnapshot: bidding.VisibilityPublic,
		Status:                      bidding.StatusPending,
		CreatedAt:                   time.Now().UTC(),
	}
}

func TestRedactUnauthenticated(t *testing.T) {
	bid := sampleBid()
	view := bidding.Redact(bid, "Acme Corp", bidding.AnonymousViewer())

	if view.ID != bid.ID || view.Status != bid.Status {
		t.Fatal("id and status must always be present")
	}
	if view.Salary != nil {
		t.Error("salary must not leak to unauthenticated viewers")
	}
	if view.Message != nil {
		t.Error("message must not leak to unauthenticated viewers")
	}
	if view.Employer != nil || view.EmployerName != "" {
		t.Error("employer identity must not leak to unauthenticated viewers")
	}
	if view.MatchScore != nil {
		t.Error("match score must not leak to unauthenticated viewers")
	}
}

func TestRedactOwningCandidate(t *testing.T) {
	bid := sampleBid()
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: "u1", CandidateID: bid.CandidateID}

	view := bidding.Redact(bid, "Acme Corp", viewer)

	if view.Salary == nil || *view.Salary != bid.SalaryOffer {
		t.Fatal("owning candidate must see the salary")
	}
	if view.Message == nil || *view.Message != bid.Message {
		t.Fatal("owning candidate must see the message")
	}
	if view.Employer == nil || view.Employer.CompanyName != "Acme Corp" || view.Employer.Anonymous {
		t.Fatalf("public snapshot must disclose the company name, got %+v", view.Employer)
	}
}

func TestRedactOwningCandidateAnonymousSnapshot(t *testing.T) {
	bid := sampleBid()
	bid.EmployerVisibilitySnapshot = bidding.VisibilityAnonymous
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: "u1", CandidateID: bid.CandidateID}

	view := bidding.Redact(bid, "Acme Corp", viewer)

	if view.Employer == nil {
		t.Fatal("employer reference must still be present")
	}
	if !view.Employer.Anonymous {
		t.Error("anonymous snapshot must set the anonymous marker")
	}
	if view.Employer.CompanyName != "" {
		t.Error("anonymous snapshot must withhold the company name")
	}
	if view.Employer.ID != bid.EmployerID {
		t.Error("employer id stays visible for accept/reject routing")
	}
}

// The snapshot, not the employer's live mode, decides what the candidate
// sees: a bid placed while public stays attributed even after the employer
// goes anonymous.
func TestRedactSnapshotOverridesLiveMode(t *testing.T) {
	bid := sampleBid()
	bid.EmployerVisibilitySnapshot = bidding.VisibilityPublic
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: "u1", CandidateID: bid.CandidateID}

	view := bidding.Redact(bid, "Acme Corp", viewer)
	if view.Employer == nil || view.Employer.CompanyName != "Acme Corp" {
		t.Fatal("frozen public snapshot must keep the bid attributed")
	}
}

func TestRedactOwningEmployer(t *testing.T) {
	bid := sampleBid()
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: "u2", EmployerID: bid.EmployerID}

	view := bidding.Redact(bid, "Acme Corp", viewer)

	if view.Salary == nil || *view.Salary != bid.SalaryOffer {
		t.Fatal("owning employer must see their own salary offer")
	}
	if view.MatchScore == nil || *view.MatchScore != bid.MatchScore {
		t.Fatal("owning employer must see the match score")
	}
	if view.RevisionCount == nil {
		t.Fatal("owning employer must see the revision count")
	}
}

func TestRedactThirdPartyEmployer(t *testing.T) {
	bid := sampleBid()

	cases := []struct {
		name        string
		bidSnapshot bidding.VisibilityMode
		viewerMode  bidding.VisibilityMode
		wantName    string
	}{
		{"both public", bidding.VisibilityPublic, bidding.VisibilityPublic, "Acme Corp"},
		{"bid anonymous", bidding.VisibilityAnonymous, bidding.VisibilityPublic, bidding.AnonymousEmployerName},
		{"viewer anonymous", bidding.VisibilityPublic, bidding.VisibilityAnonymous, bidding.AnonymousEmployerName},
		{"both anonymous", bidding.VisibilityAnonymous, bidding.VisibilityAnonymous, bidding.AnonymousEmployerName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := bid
			b.EmployerVisibilitySnapshot = tc.bidSnapshot
			viewer := bidding.ViewerIdentity{
				Authenticated:      true,
				UserID:             "u3",
				EmployerID:         uuid.New(), // not the bidding employer
				EmployerVisibility: tc.viewerMode,
			}

			view := bidding.Redact(b, "Acme Corp", viewer)

			if view.Salary != nil {
				t.Fatal("competing employers must never see each other's salary")
			}
			if view.EmployerName != tc.wantName {
				t.Errorf("employer name = %q, want %q", view.EmployerName, tc.wantName)
			}
		})
	}
}

func TestRedactAuthenticatedWithoutRole(t *testing.T) {
	bid := sampleBid()
	viewer := bidding.ViewerIdentity{Authenticated: true, UserID: "u4"}

	view := bidding.Redact(bid, "Acme Corp", viewer)

	if view.Salary != nil || view.Message != nil || view.Employer != nil || view.EmployerName != "" {
		t.Error("viewers with no profile see exactly the unauthenticated projection")
	}
	if view.ID != bid.ID || view.Status != bid.Status {
		t.Error("id and status must still be present")
	}
}

func TestCandidateDisplayName(t *testing.T) {
	c := bidding.Candidate{ID: uuid.New(), FullName: "Jane Doe", VisibilityMode: bidding.VisibilityAnonymous}
	employer := bidding.ViewerIdentity{Authenticated: true, UserID: "u5", EmployerID: uuid.New()}
	owner := bidding.ViewerIdentity{Authenticated: true, UserID: "u6", CandidateID: c.ID}

	if got := bidding.CandidateDisplayName(c, employer); got != "Candidate "+c.ID.String() {
		t.Errorf("anonymous candidate shown as %q to an employer", got)
	}
	if got := bidding.CandidateDisplayName(c, owner); got != "Jane Doe" {
		t.Errorf("owner sees %q, want their real name", got)
	}

	c.VisibilityMode = bidding.VisibilityPublic
	if got := bidding.CandidateDisplayName(c, employer); got != "Jane Doe" {
		t.Errorf("public candidate shown as %q", got)
	}
}
