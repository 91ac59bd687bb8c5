// Package notify implements the notification gateway: every bid lifecycle
// transition publishes an event to Redis for downstream delivery and logs a
// stub of the email that a real mail service would send.
//
// Everything here is best-effort. Failures are logged at Warn and swallowed:
// a committed status transition is never rolled back because a notification
// could not be dispatched.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// Redis channels, one per lifecycle event.
const (
	ChannelBidPlaced         = "bid.placed"
	ChannelBidAccepted       = "bid.accepted"
	ChannelBidRejected       = "bid.rejected"
	ChannelBidNotCompetitive = "bid.noncompetitive"
)

// Gateway implements bidding.Notifier on Redis pub/sub plus a logging email
// stub.
type Gateway struct {
	rdb *redis.Client
	log *zap.Logger
}

// NewGateway returns a configured Gateway.
func NewGateway(rdb *redis.Client, log *zap.Logger) *Gateway {
	return &Gateway{rdb: rdb, log: log}
}

// BidPlaced notifies the candidate that a new sealed bid arrived.
func (g *Gateway) BidPlaced(ctx context.Context, bid bidding.Bid, c bidding.Candidate, e bidding.Employer) {
	g.publish(ctx, ChannelBidPlaced, bid, c, e)
	g.email(c.Email,
		fmt.Sprintf("New bid from %s", e.CompanyName),
		fmt.Sprintf("Hi %s, you have received a new bid for the %s role. Salary offer: %d %s. Log in to your dashboard to view details and respond.",
			c.FullName, bid.RoleTitle, bid.SalaryOffer, bid.Currency),
	)
}

// BidAccepted notifies the employer that the candidate accepted their bid.
func (g *Gateway) BidAccepted(ctx context.Context, bid bidding.Bid, c bidding.Candidate, e bidding.Employer) {
	g.publish(ctx, ChannelBidAccepted, bid, c, e)
	g.email(e.Email,
		fmt.Sprintf("%s accepted your bid", c.FullName),
		fmt.Sprintf("Hi %s team, great news! %s has accepted your bid for the %s position. Log in to your dashboard to proceed with next steps.",
			e.CompanyName, c.FullName, bid.RoleTitle),
	)
}

// BidRejected notifies the employer that the candidate declined their bid.
func (g *Gateway) BidRejected(ctx context.Context, bid bidding.Bid, c bidding.Candidate, e bidding.Employer) {
	g.publish(ctx, ChannelBidRejected, bid, c, e)
	g.email(e.Email,
		fmt.Sprintf("Bid update for %s", bid.RoleTitle),
		fmt.Sprintf("Hi %s team, %s has declined your bid for the %s position. We encourage you to explore other talented candidates on TalentBid.",
			e.CompanyName, c.FullName, bid.RoleTitle),
	)
}

// BidNotCompetitive warns the employer that their pending bid has fallen out
// of the competitive range.
func (g *Gateway) BidNotCompetitive(ctx context.Context, bid bidding.Bid, c bidding.Candidate, e bidding.Employer) {
	g.publish(ctx, ChannelBidNotCompetitive, bid, c, e)
	g.email(e.Email,
		"Bid update - non-competitive",
		fmt.Sprintf("Hi %s team, your bid for %s (%s) is currently not competitive. Consider revising your offer to improve your chances.",
			e.CompanyName, c.FullName, bid.RoleTitle),
	)
}

func (g *Gateway) publish(ctx context.Context, channel string, bid bidding.Bid, c bidding.Candidate, e bidding.Employer) {
	event, _ := json.Marshal(map[string]string{
		"type":        channel,
		"bidId":       bid.ID.String(),
		"candidateId": c.ID.String(),
		"employerId":  e.ID.String(),
		"status":      string(bid.Status),
	})
	if err := g.rdb.Publish(ctx, channel, event).Err(); err != nil {
		g.log.Warn("publish notification event failed",
			zap.String("channel", channel),
			zap.String("bidId", bid.ID.String()),
			zap.Error(err),
		)
	}
}

// email logs the message a real mail provider would deliver.
func (g *Gateway) email(to, subject, body string) {
	g.log.Info("email notification",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
}
