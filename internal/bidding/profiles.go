package bidding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CandidateProfileInput is the closed field set for creating a candidate
// profile.
type CandidateProfileInput struct {
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	Title           string         `json:"title"`
	MinSalary       int64          `json:"min_salary"`
	Skills          []string       `json:"skills"`
	ExperienceYears int            `json:"experience_years"`
	VisibilityMode  VisibilityMode `json:"visibility_mode"`
	Availability    string         `json:"availability"`
	Summary         *string        `json:"summary"`
}

// UpdateCandidateInput updates a candidate profile. Nil fields are left
// untouched. Lowering MinSalary never re-validates existing bids; the
// minimum-salary gate applies at bid creation only.
type UpdateCandidateInput struct {
	FullName        *string         `json:"full_name"`
	Title           *string         `json:"title"`
	MinSalary       *int64          `json:"min_salary"`
	Skills          *[]string       `json:"skills"`
	ExperienceYears *int            `json:"experience_years"`
	VisibilityMode  *VisibilityMode `json:"visibility_mode"`
	Availability    *string         `json:"availability"`
	Summary         *string         `json:"summary"`
}

// EmployerProfileInput is the closed field set for creating an employer
// profile.
type EmployerProfileInput struct {
	CompanyName    string         `json:"company_name"`
	Email          string         `json:"email"`
	VisibilityMode VisibilityMode `json:"visibility_mode"`
	Website        *string        `json:"website"`
	Location       *string        `json:"location"`
	Industry       *string        `json:"industry"`
	Description    *string        `json:"description"`
}

// UpdateEmployerInput updates an employer profile. Nil fields are left
// untouched. Changing VisibilityMode affects the live mode only; snapshots
// on existing bids are frozen.
type UpdateEmployerInput struct {
	CompanyName    *string         `json:"company_name"`
	Email          *string         `json:"email"`
	VisibilityMode *VisibilityMode `json:"visibility_mode"`
	Website        *string         `json:"website"`
	Location       *string         `json:"location"`
	Industry       *string         `json:"industry"`
	Description    *string         `json:"description"`
}

// CandidateView is the projection of a candidate profile for a given viewer.
// The display name is anonymized for employer viewers when the candidate's
// live mode is anonymous; the owner always sees their own full profile.
type CandidateView struct {
	ID              uuid.UUID      `json:"id"`
	DisplayName     string         `json:"display_name"`
	Title           string         `json:"title"`
	MinSalary       int64          `json:"min_salary"`
	Skills          []string       `json:"skills"`
	ExperienceYears int            `json:"experience_years"`
	VisibilityMode  VisibilityMode `json:"visibility_mode"`
	Availability    string         `json:"availability"`
	Summary         *string        `json:"summary,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CreateCandidate creates the caller's candidate profile. One profile per
// user.
func (s *Service) CreateCandidate(ctx context.Context, viewer ViewerIdentity, in CandidateProfileInput) (*Candidate, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}
	if viewer.CandidateID != uuid.Nil {
		return nil, fmt.Errorf("candidate profile already exists: %w", ErrConflict)
	}
	if in.FullName == "" {
		return nil, &ValidationError{Msg: "full name is required"}
	}
	if in.MinSalary <= 0 {
		return nil, &ValidationError{Msg: "minimum salary must be positive"}
	}
	mode := in.VisibilityMode
	if mode == "" {
		mode = VisibilityPublic
	}
	if _, ok := ParseVisibilityMode(string(mode)); !ok {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown visibility mode %q", mode)}
	}

	now := time.Now().UTC()
	candidate := &Candidate{
		ID:              uuid.New(),
		UserID:          viewer.UserID,
		FullName:        in.FullName,
		Email:           in.Email,
		Title:           in.Title,
		MinSalary:       in.MinSalary,
		Skills:          in.Skills,
		ExperienceYears: in.ExperienceYears,
		VisibilityMode:  mode,
		Availability:    in.Availability,
		Summary:         in.Summary,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return candidate, nil
}

// GetCandidate returns the viewer-appropriate projection of one candidate.
func (s *Service) GetCandidate(ctx context.Context, viewer ViewerIdentity, id uuid.UUID) (*CandidateView, error) {
	candidate, err := s.candidates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := redactCandidate(*candidate, viewer)
	return &view, nil
}

// ListCandidates returns every candidate profile, anonymized per viewer.
func (s *Service) ListCandidates(ctx context.Context, viewer ViewerIdentity) ([]CandidateView, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	views := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, redactCandidate(c, viewer))
	}
	return views, nil
}

// UpdateCandidate applies the given changes to the caller's own profile.
func (s *Service) UpdateCandidate(ctx context.Context, viewer ViewerIdentity, id uuid.UUID, in UpdateCandidateInput) (*Candidate, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}
	if !viewer.OwnsCandidate(id) {
		return nil, fmt.Errorf("only the profile owner may update it: %w", ErrForbidden)
	}
	candidate, err := s.candidates.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, &ValidationError{Msg: "full name is required"}
		}
		candidate.FullName = *in.FullName
	}
	if in.Title != nil {
		candidate.Title = *in.Title
	}
	if in.MinSalary != nil {
		if *in.MinSalary <= 0 {
			return nil, &ValidationError{Msg: "minimum salary must be positive"}
		}
		candidate.MinSalary = *in.MinSalary
	}
	if in.Skills != nil {
		candidate.Skills = *in.Skills
	}
	if in.ExperienceYears != nil {
		candidate.ExperienceYears = *in.ExperienceYears
	}
	if in.VisibilityMode != nil {
		mode, ok := ParseVisibilityMode(string(*in.VisibilityMode))
		if !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("unknown visibility mode %q", *in.VisibilityMode)}
		}
		candidate.VisibilityMode = mode
	}
	if in.Availability != nil {
		candidate.Availability = *in.Availability
	}
	if in.Summary != nil {
		candidate.Summary = in.Summary
	}

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	return candidate, nil
}

// CreateEmployer creates the caller's employer profile. One profile per user.
func (s *Service) CreateEmployer(ctx context.Context, viewer ViewerIdentity, in EmployerProfileInput) (*Employer, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}
	if viewer.EmployerID != uuid.Nil {
		return nil, fmt.Errorf("employer profile already exists: %w", ErrConflict)
	}
	if in.CompanyName == "" {
		return nil, &ValidationError{Msg: "company name is required"}
	}
	mode := in.VisibilityMode
	if mode == "" {
		mode = VisibilityPublic
	}
	if _, ok := ParseVisibilityMode(string(mode)); !ok {
		return nil, &ValidationError{Msg: fmt.Sprintf("unknown visibility mode %q", mode)}
	}

	now := time.Now().UTC()
	employer := &Employer{
		ID:             uuid.New(),
		UserID:         viewer.UserID,
		CompanyName:    in.CompanyName,
		Email:          in.Email,
		VisibilityMode: mode,
		Website:        in.Website,
		Location:       in.Location,
		Industry:       in.Industry,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.employers.Create(ctx, employer); err != nil {
		return nil, fmt.Errorf("create employer: %w", err)
	}
	return employer, nil
}

// GetOwnEmployer returns the caller's own employer profile.
func (s *Service) GetOwnEmployer(ctx context.Context, viewer ViewerIdentity) (*Employer, error) {
	if !viewer.Authenticated {
		return nil, ErrUnauthorized
	}
	if !viewer.IsEmployer() {
		return nil, fmt.Errorf("no employer profile: %w", ErrNotFound)
	}
	return s.employers.Get(ctx, viewer.EmployerID)
}

// UpdateOwnEmployer applies the given changes to the caller's own employer
// profile.
func (s *Service) UpdateOwnEmployer(ctx context.Context, viewer ViewerIdentity, in UpdateEmployerInput) (*Employer, error) {
	employer, err := s.GetOwnEmployer(ctx, viewer)
	if err != nil {
		return nil, err
	}

	if in.CompanyName != nil {
		if *in.CompanyName == "" {
			return nil, &ValidationError{Msg: "company name is required"}
		}
		employer.CompanyName = *in.CompanyName
	}
	if in.Email != nil {
		employer.Email = *in.Email
	}
	if in.VisibilityMode != nil {
		mode, ok := ParseVisibilityMode(string(*in.VisibilityMode))
		if !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("unknown visibility mode %q", *in.VisibilityMode)}
		}
		employer.VisibilityMode = mode
	}
	if in.Website != nil {
		employer.Website = in.Website
	}
	if in.Location != nil {
		employer.Location = in.Location
	}
	if in.Industry != nil {
		employer.Industry = in.Industry
	}
	if in.Description != nil {
		employer.Description = in.Description
	}

	if err := s.employers.Update(ctx, employer); err != nil {
		return nil, fmt.Errorf("update employer: %w", err)
	}
	return employer, nil
}

// redactCandidate projects a candidate profile for the viewer. Owners get
// their full profile; everyone else gets the display name dictated by the
// candidate's live visibility mode.
func redactCandidate(c Candidate, viewer ViewerIdentity) CandidateView {
	view := CandidateView{
		ID:              c.ID,
		DisplayName:     c.FullName,
		Title:           c.Title,
		MinSalary:       c.MinSalary,
		Skills:          c.Skills,
		ExperienceYears: c.ExperienceYears,
		VisibilityMode:  c.VisibilityMode,
		Availability:    c.Availability,
		Summary:         c.Summary,
		CreatedAt:       c.CreatedAt,
	}
	if !viewer.OwnsCandidate(c.ID) {
		view.DisplayName = CandidateDisplayName(c, viewer)
	}
	return view
}
