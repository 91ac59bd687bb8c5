// Package bidding contains the pure business logic for the TalentBid
// marketplace: the bid state machine, the visibility policy evaluator, the
// competitiveness ranker, and the lifecycle service that ties them to storage.
// It is transport-agnostic: used by the HTTP layer (httpapi package) and the
// background sweeper.
package bidding

import (
	"time"

	"github.com/google/uuid"
)

// VisibilityMode mirrors the visibility_mode enum in PostgreSQL.
type VisibilityMode string

const (
	VisibilityPublic    VisibilityMode = "public"
	VisibilityAnonymous VisibilityMode = "anonymous"
)

// ParseVisibilityMode converts a raw string to a VisibilityMode.
func ParseVisibilityMode(s string) (VisibilityMode, bool) {
	m := VisibilityMode(s)
	switch m {
	case VisibilityPublic, VisibilityAnonymous:
		return m, true
	}
	return "", false
}

// Candidate is a talent profile listing a minimum acceptable salary.
type Candidate struct {
	ID              uuid.UUID      `json:"id"`
	UserID          string         `json:"-"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"-"`
	Title           string         `json:"title"`
	MinSalary       int64          `json:"min_salary"`
	Skills          []string       `json:"skills"`
	ExperienceYears int            `json:"experience_years"`
	VisibilityMode  VisibilityMode `json:"visibility_mode"`
	Availability    string         `json:"availability"`
	Summary         *string        `json:"summary,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Employer is a hiring company profile.
type Employer struct {
	ID             uuid.UUID      `json:"id"`
	UserID         string         `json:"-"`
	CompanyName    string         `json:"company_name"`
	Email          string         `json:"email"`
	VisibilityMode VisibilityMode `json:"visibility_mode"`
	Website        *string        `json:"website,omitempty"`
	Location       *string        `json:"location,omitempty"`
	Industry       *string        `json:"industry,omitempty"`
	Description    *string        `json:"description,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Bid is a sealed salary offer from an employer to a candidate.
//
// The two visibility snapshots are frozen copies of each party's
// visibility_mode taken at bid creation. They never follow later profile
// changes: they are the disclosure contract for this specific bid.
type Bid struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	EmployerID  uuid.UUID `json:"employer_id"`

	SalaryOffer  int64    `json:"salary_offer"`
	Currency     string   `json:"currency"`
	Perks        []string `json:"perks,omitempty"`
	TrialOffered bool     `json:"trial_offered"`
	TrialDays    int      `json:"trial_days,omitempty"`

	RoleTitle       string `json:"role_title"`
	RoleDescription string `json:"role_description,omitempty"`
	Message         string `json:"message,omitempty"`

	MatchScore int `json:"match_score"`

	EmployerVisibilitySnapshot  VisibilityMode `json:"employer_visibility_snapshot"`
	CandidateVisibilitySnapshot VisibilityMode `json:"candidate_visibility_snapshot"`

	Status        Status `json:"status"`
	RevisionCount int    `json:"revision_count"`

	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}
