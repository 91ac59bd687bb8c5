package bidding

import "github.com/google/uuid"

// ViewerIdentity is the explicit viewer context threaded into every core
// operation. It is resolved exactly once at the boundary (auth middleware)
// and never re-derived inside policy branches: the evaluator and ranker stay
// pure functions of their arguments.
type ViewerIdentity struct {
	Authenticated bool
	UserID        string

	// CandidateID / EmployerID are the profile ids owned by this user, or
	// uuid.Nil when the user has no such profile.
	CandidateID uuid.UUID
	EmployerID  uuid.UUID

	// EmployerVisibility is the live visibility_mode of the viewer's own
	// employer profile. Used by the mutual-public disclosure rule; it is the
	// viewer's current mode, not a snapshot.
	EmployerVisibility VisibilityMode
}

// AnonymousViewer is the identity of an unauthenticated request.
func AnonymousViewer() ViewerIdentity {
	return ViewerIdentity{}
}

// OwnsCandidate reports whether the viewer owns the given candidate profile.
func (v ViewerIdentity) OwnsCandidate(id uuid.UUID) bool {
	return v.Authenticated && v.CandidateID != uuid.Nil && v.CandidateID == id
}

// OwnsEmployer reports whether the viewer owns the given employer profile.
func (v ViewerIdentity) OwnsEmployer(id uuid.UUID) bool {
	return v.Authenticated && v.EmployerID != uuid.Nil && v.EmployerID == id
}

// IsEmployer reports whether the viewer has an employer profile at all.
func (v ViewerIdentity) IsEmployer() bool {
	return v.Authenticated && v.EmployerID != uuid.Nil
}
