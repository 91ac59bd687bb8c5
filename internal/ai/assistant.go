// Package ai defines the text-generation assistant consumed by the service:
// role descriptions, candidate profile summaries, and the 0-100 match score
// computed at bid creation. The gemini subpackage provides the real
// implementation; Fallback keeps the service fully functional without an
// API key.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// RoleInput describes the role an employer wants a description written for.
type RoleInput struct {
	Title       string   `json:"title"`
	Salary      int64    `json:"salary"`
	Perks       []string `json:"perks"`
	CompanyName string   `json:"company_name"`
}

// Assistant generates marketplace copy and match scores.
type Assistant interface {
	RoleDescription(ctx context.Context, in RoleInput) (string, error)
	ProfileSummary(ctx context.Context, c bidding.Candidate) (string, error)
	MatchScore(ctx context.Context, c bidding.Candidate, bid bidding.Bid) (int, error)
}

// Fallback is the assistant used when no generation backend is configured.
// Deterministic templates, fixed neutral score.
type Fallback struct{}

func (Fallback) RoleDescription(_ context.Context, in RoleInput) (string, error) {
	perks := "Standard benefits"
	if len(in.Perks) > 0 {
		perks = strings.Join(in.Perks, ", ")
	}
	return fmt.Sprintf("%s is hiring a %s. Compensation: %d. Perks: %s.",
		in.CompanyName, in.Title, in.Salary, perks), nil
}

func (Fallback) ProfileSummary(_ context.Context, c bidding.Candidate) (string, error) {
	skills := c.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return fmt.Sprintf("Experienced professional with %d years in %s. Passionate about delivering high-quality work.",
		c.ExperienceYears, strings.Join(skills, ", ")), nil
}

func (Fallback) MatchScore(context.Context, bidding.Candidate, bidding.Bid) (int, error) {
	return 50, nil
}
