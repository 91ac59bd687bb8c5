package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ramcignex-del/TalentBid/internal/ai"
	"github.com/ramcignex-del/TalentBid/internal/auth"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// roleDescription generates job-description copy for an employer drafting a
// bid. Generation failures surface as 502 so the client can fall back to
// manual text.
func (h *Handler) roleDescription(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())
	if !viewer.Authenticated {
		jsonError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var in ai.RoleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if in.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	text, err := h.assistant.RoleDescription(r.Context(), in)
	if err != nil {
		jsonError(w, "generation failed", http.StatusBadGateway)
		return
	}
	jsonOK(w, map[string]string{"description": text})
}

// profileSummary generates an anonymous candidate summary from the supplied
// profile fields. Stateless: nothing is stored.
func (h *Handler) profileSummary(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())
	if !viewer.Authenticated {
		jsonError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var in struct {
		Title           string   `json:"title"`
		Skills          []string `json:"skills"`
		ExperienceYears int      `json:"experience_years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(in.Skills) == 0 {
		jsonError(w, "at least one skill is required", http.StatusBadRequest)
		return
	}

	candidate := bidding.Candidate{
		Title:           in.Title,
		Skills:          in.Skills,
		ExperienceYears: in.ExperienceYears,
	}
	text, err := h.assistant.ProfileSummary(r.Context(), candidate)
	if err != nil {
		jsonError(w, "generation failed", http.StatusBadGateway)
		return
	}
	jsonOK(w, map[string]string{"summary": text})
}
