package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ramcignex-del/TalentBid/internal/ai"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

var firstInteger = regexp.MustCompile(`\d+`)

// Assistant implements ai.Assistant on a Gemini Generator.
type Assistant struct {
	gen *Generator
}

// NewAssistant wraps gen as an ai.Assistant.
func NewAssistant(gen *Generator) *Assistant {
	return &Assistant{gen: gen}
}

func (a *Assistant) RoleDescription(ctx context.Context, in ai.RoleInput) (string, error) {
	perks := "not specified"
	if len(in.Perks) > 0 {
		perks = strings.Join(in.Perks, ", ")
	}
	prompt := fmt.Sprintf(
		"Write a compelling, concise job description (3-4 sentences) for the following role. "+
			"Do not mention the company name.\n\nRole: %s\nSalary: %d\nPerks: %s\nCompany: %s",
		in.Title, in.Salary, perks, in.CompanyName,
	)
	return a.gen.GenerateContent(ctx, prompt)
}

func (a *Assistant) ProfileSummary(ctx context.Context, c bidding.Candidate) (string, error) {
	prompt := fmt.Sprintf(
		"Write a professional, anonymous candidate summary (2-3 sentences). "+
			"Never include the candidate's name.\n\nTitle: %s\nSkills: %s\nYears of experience: %d",
		c.Title, strings.Join(c.Skills, ", "), c.ExperienceYears,
	)
	return a.gen.GenerateContent(ctx, prompt)
}

// MatchScore asks the model to rate how well the bid's role fits the
// candidate. The reply is free text, so the first integer found is taken as
// the score and clamped to 0-100.
func (a *Assistant) MatchScore(ctx context.Context, c bidding.Candidate, bid bidding.Bid) (int, error) {
	prompt := fmt.Sprintf(
		"Rate from 0 to 100 how well this candidate matches the role. "+
			"Respond with a single number only.\n\n"+
			"Candidate title: %s\nCandidate skills: %s\nYears of experience: %d\n\n"+
			"Role: %s\nRole description: %s",
		c.Title, strings.Join(c.Skills, ", "), c.ExperienceYears,
		bid.RoleTitle, bid.Message,
	)

	text, err := a.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return 0, err
	}

	match := firstInteger.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no score in model reply %q", text)
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", match, err)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
