package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ramcignex-del/TalentBid/internal/ai"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

func TestFallbackProfileSummary(t *testing.T) {
	c := bidding.Candidate{
		Title:           "Backend Engineer",
		Skills:          []string{"go", "postgres", "redis", "kafka"},
		ExperienceYears: 7,
	}

	summary, err := ai.Fallback{}.ProfileSummary(context.Background(), c)
	require.NoError(t, err)
	require.Contains(t, summary, "7 years")
	require.Contains(t, summary, "go, postgres, redis")
	require.NotContains(t, summary, "kafka", "only the top three skills are listed")
}

func TestFallbackRoleDescription(t *testing.T) {
	text, err := ai.Fallback{}.RoleDescription(context.Background(), ai.RoleInput{
		Title:       "Platform Engineer",
		Salary:      140000,
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	require.Contains(t, text, "Platform Engineer")
	require.Contains(t, text, "Standard benefits")
}

func TestFallbackMatchScore(t *testing.T) {
	score, err := ai.Fallback{}.MatchScore(context.Background(), bidding.Candidate{}, bidding.Bid{})
	require.NoError(t, err)
	require.Equal(t, 50, score)
}
