// Package sweeper periodically re-ranks every candidate's pending bids and
// warns employers whose offers have dropped out of the competitive range.
// Ranking itself stays read-side and on-demand; the sweep only drives
// notifications.
package sweeper

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// Sweeper runs the non-competitive notification sweep on a cron schedule.
type Sweeper struct {
	bids       bidding.BidRepository
	candidates bidding.CandidateRepository
	employers  bidding.EmployerRepository
	notifier   bidding.Notifier
	log        *zap.Logger

	cron *cron.Cron
	spec string
}

// New returns a Sweeper with the given cron spec, e.g. "@every 6h".
func New(bids bidding.BidRepository, candidates bidding.CandidateRepository, employers bidding.EmployerRepository, notifier bidding.Notifier, log *zap.Logger, spec string) *Sweeper {
	return &Sweeper{
		bids:       bids,
		candidates: candidates,
		employers:  employers,
		notifier:   notifier,
		log:        log,
		cron:       cron.New(),
		spec:       spec,
	}
}

// Start registers the sweep job and starts the scheduler. The first sweep
// runs immediately in the background.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.Sweep(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	go s.Sweep(ctx)
	s.log.Info("competitiveness sweeper started", zap.String("schedule", s.spec))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep walks every candidate with pending bids, ranks their pending set and
// notifies the employer behind each non-competitive bid. Per-candidate
// failures are logged and skipped so one bad row never stalls the whole
// sweep.
func (s *Sweeper) Sweep(ctx context.Context) {
	candidateIDs, err := s.bids.CandidateIDsWithPendingBids(ctx)
	if err != nil {
		s.log.Error("sweep aborted, listing candidates failed", zap.Error(err))
		return
	}

	var notified int
	for _, candidateID := range candidateIDs {
		candidate, err := s.candidates.Get(ctx, candidateID)
		if err != nil {
			s.log.Warn("sweep skipping candidate", zap.String("candidateId", candidateID.String()), zap.Error(err))
			continue
		}
		pending, err := s.bids.PendingByCandidate(ctx, candidateID)
		if err != nil {
			s.log.Warn("sweep skipping candidate", zap.String("candidateId", candidateID.String()), zap.Error(err))
			continue
		}

		ranked := bidding.Rank(pending, candidate.MinSalary)
		for i := range pending {
			bid := pending[i]
			if ranked[bid.ID] != bidding.IndicatorNotCompetitive {
				continue
			}
			employer, err := s.employers.Get(ctx, bid.EmployerID)
			if err != nil {
				s.log.Warn("sweep skipping bid, employer lookup failed", zap.String("bidId", bid.ID.String()), zap.Error(err))
				continue
			}
			s.notifier.BidNotCompetitive(ctx, bid, *candidate, *employer)
			notified++
		}
	}

	s.log.Info("competitiveness sweep finished",
		zap.Int("candidates", len(candidateIDs)),
		zap.Int("notified", notified),
	)
}
