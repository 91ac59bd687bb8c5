package bidding

import "github.com/google/uuid"

// Indicator labels how a pending bid compares against its siblings.
// Disclosed only to the bid's owning employer, never to the candidate or to
// other employers.
type Indicator string

const (
	IndicatorHighest        Indicator = "highest"
	IndicatorCompetitive    Indicator = "competitive"
	IndicatorNotCompetitive Indicator = "not_competitive"
)

// competitiveFactor is the fraction of the highest sibling bid a salary must
// reach to count as competitive. Inherited heuristic; keep as-is.
const competitiveFactor = 0.90

// Rank annotates every pending bid in the candidate's set with a
// competitiveness indicator. minSalary is the candidate's current minimum
// acceptable salary.
//
// Ties at the top are all labeled highest: picking a single winner is the
// candidate's accept decision, not the ranker's. A lone pending bid is
// trivially highest. Non-pending bids in the input are ignored.
//
// The result is recomputed on every read: sibling bids change between reads,
// so it is never cached or stored.
func Rank(bids []Bid, minSalary int64) map[uuid.UUID]Indicator {
	var highest int64
	n := 0
	for _, b := range bids {
		if b.Status != StatusPending {
			continue
		}
		n++
		if b.SalaryOffer > highest {
			highest = b.SalaryOffer
		}
	}

	out := make(map[uuid.UUID]Indicator, n)
	for _, b := range bids {
		if b.Status != StatusPending {
			continue
		}
		out[b.ID] = classify(b.SalaryOffer, highest, minSalary)
	}
	return out
}

func classify(salary, highest, minSalary int64) Indicator {
	switch {
	case salary == highest:
		return IndicatorHighest
	case salary >= minSalary && float64(salary) >= float64(highest)*competitiveFactor:
		return IndicatorCompetitive
	default:
		return IndicatorNotCompetitive
	}
}
