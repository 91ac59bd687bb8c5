package bidding

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousEmployerName is the placeholder shown to third-party employers
// when the mutual-public disclosure rule denies the real company name.
const AnonymousEmployerName = "Anonymous Employer"

// EmployerRef is the employer identity disclosed to the owning candidate.
// When the bid's employer snapshot is anonymous the company name is withheld
// and Anonymous is set instead.
type EmployerRef struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name,omitempty"`
	Anonymous   bool      `json:"anonymous,omitempty"`
}

// BidView is the redacted projection of a bid for one particular viewer.
// Only ID and Status are present for every viewer; everything else depends
// on the viewer's relationship to the bid.
type BidView struct {
	ID     uuid.UUID `json:"id"`
	Status Status    `json:"status"`

	Salary  *int64  `json:"salary,omitempty"`
	Message *string `json:"message,omitempty"`

	// Employer carries the (possibly anonymized) employer identity on the
	// owning candidate's view.
	Employer *EmployerRef `json:"employer,omitempty"`

	// EmployerName is set on third-party employer views: the real company
	// name under mutual-public disclosure, the anonymous placeholder
	// otherwise.
	EmployerName string `json:"employer_name,omitempty"`

	CandidateID     *uuid.UUID `json:"candidate_id,omitempty"`
	EmployerID      *uuid.UUID `json:"employer_id,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	Perks           []string   `json:"perks,omitempty"`
	TrialOffered    *bool      `json:"trial_offered,omitempty"`
	TrialDays       *int       `json:"trial_days,omitempty"`
	RoleTitle       string     `json:"role_title,omitempty"`
	RoleDescription string     `json:"role_description,omitempty"`
	MatchScore      *int       `json:"match_score,omitempty"`

	EmployerVisibilitySnapshot  VisibilityMode `json:"employer_visibility_snapshot,omitempty"`
	CandidateVisibilitySnapshot VisibilityMode `json:"candidate_visibility_snapshot,omitempty"`

	RevisionCount *int       `json:"revision_count,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time `json:"rejected_at,omitempty"`

	// CompetitiveIndicator is attached after redaction, and only on the
	// owning employer's list view. See Rank.
	CompetitiveIndicator Indicator `json:"competitive_indicator,omitempty"`
}

// Redact produces the projection of bid that viewer is permitted to see.
// bidEmployerName is the company name of the employer that placed the bid.
//
// Rules are evaluated in precedence order, first match wins:
//
//  1. unauthenticated viewer            → {id, status}
//  2. the candidate this bid targets    → salary, message, employer identity
//     per the frozen employer snapshot (never the live mode)
//  3. the employer that placed the bid  → the full record
//  4. any other employer                → salary stripped; company name only
//     under mutual-public disclosure
//  5. authenticated, no recognized role → same as rule 1
//
// Pure function: no side effects, no clock, no storage.
func Redact(bid Bid, bidEmployerName string, viewer ViewerIdentity) BidView {
	if !viewer.Authenticated {
		return BidView{ID: bid.ID, Status: bid.Status}
	}

	if viewer.OwnsCandidate(bid.CandidateID) {
		view := BidView{
			ID:      bid.ID,
			Status:  bid.Status,
			Salary:  ptr(bid.SalaryOffer),
			Message: ptr(bid.Message),
		}
		if bid.EmployerVisibilitySnapshot == VisibilityPublic {
			view.Employer = &EmployerRef{ID: bid.EmployerID, CompanyName: bidEmployerName}
		} else {
			view.Employer = &EmployerRef{ID: bid.EmployerID, Anonymous: true}
		}
		return view
	}

	if viewer.OwnsEmployer(bid.EmployerID) {
		// Their own submission: no redaction at all.
		return fullView(bid)
	}

	if viewer.IsEmployer() {
		view := fullView(bid)
		view.Salary = nil // competing employers never see each other's salary
		if bid.EmployerVisibilitySnapshot == VisibilityPublic && viewer.EmployerVisibility == VisibilityPublic {
			view.EmployerName = bidEmployerName
		} else {
			view.EmployerName = AnonymousEmployerName
		}
		return view
	}

	// Authenticated but neither party: treated as an unauthenticated viewer.
	return BidView{ID: bid.ID, Status: bid.Status}
}

// fullView projects every field of the bid, unredacted.
func fullView(bid Bid) BidView {
	return BidView{
		ID:                          bid.ID,
		Status:                      bid.Status,
		Salary:                      ptr(bid.SalaryOffer),
		Message:                     ptr(bid.Message),
		CandidateID:                 ptr(bid.CandidateID),
		EmployerID:                  ptr(bid.EmployerID),
		Currency:                    bid.Currency,
		Perks:                       bid.Perks,
		TrialOffered:                ptr(bid.TrialOffered),
		TrialDays:                   ptr(bid.TrialDays),
		RoleTitle:                   bid.RoleTitle,
		RoleDescription:             bid.RoleDescription,
		MatchScore:                  ptr(bid.MatchScore),
		EmployerVisibilitySnapshot:  bid.EmployerVisibilitySnapshot,
		CandidateVisibilitySnapshot: bid.CandidateVisibilitySnapshot,
		RevisionCount:               ptr(bid.RevisionCount),
		CreatedAt:                   ptr(bid.CreatedAt),
		AcceptedAt:                  bid.AcceptedAt,
		RejectedAt:                  bid.RejectedAt,
	}
}

// CandidateDisplayName returns the name a non-owner viewer may see for a
// candidate listing: anonymous candidates are shown as "Candidate <id>".
// This uses the candidate's live visibility_mode, not a snapshot, because
// listings are not tied to any particular bid.
func CandidateDisplayName(c Candidate, viewer ViewerIdentity) string {
	if c.VisibilityMode == VisibilityAnonymous && !viewer.OwnsCandidate(c.ID) {
		return "Candidate " + c.ID.String()
	}
	if c.FullName == "" {
		return "Candidate " + c.ID.String()
	}
	return c.FullName
}

func ptr[T any](v T) *T { return &v }
