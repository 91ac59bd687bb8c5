package bidding

import "errors"

// Sentinel errors for the machine-distinguishable failure kinds. The HTTP
// layer maps each to a distinct status code; nothing here is retried.
var (
	// ErrUnauthorized means the viewer carries no valid identity.
	ErrUnauthorized = errors.New("viewer is not authenticated")

	// ErrForbidden means the viewer is authenticated but not entitled to
	// the requested action or bid.
	ErrForbidden = errors.New("viewer is not entitled to this action")

	// ErrNotFound means a bid, candidate or employer reference did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a state transition was attempted on a bid that is no
	// longer in the expected state (e.g. a lost accept race).
	ErrConflict = errors.New("bid is no longer in the expected state")

	// ErrRevisionLimit means the salary revision cap has been exhausted.
	ErrRevisionLimit = errors.New("maximum revision limit reached")
)

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
