// Bid state machine.
//
// Valid status graph:
//
//	[pending] ──accept──► [accepted]
//	    │
//	    ├──reject──► [rejected]
//	    │
//	    └──(sibling accepted)──► [expired]
//
// accepted, rejected and expired are terminal states. Expiry is never a
// direct user action: it only happens as a side effect of a sibling bid
// being accepted.
package bidding

import "fmt"

// Status values mirror the bid_status enum in PostgreSQL.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusPending: {StatusAccepted, StatusRejected, StatusExpired},
	// accepted, rejected and expired are terminal, no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusAccepted, StatusRejected, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown bid status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state, no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when the status has no outgoing transitions.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
