// Package httpapi exposes the marketplace over HTTP.
//
// Routes:
//
//	GET    /health
//	POST   /bids                   place a sealed bid (employer only)
//	GET    /bids                   list bids for ?candidate_id= or ?employer_id=
//	GET    /bids/{id}              redacted projection, works unauthenticated
//	PATCH  /bids/{id}              revise a pending bid
//	POST   /bids/{id}/accept       candidate accepts; siblings expire
//	POST   /bids/{id}/reject      candidate rejects
//	GET    /candidates             listing with anonymization
//	POST   /candidates             create own candidate profile
//	GET    /candidates/{id}        fetch one candidate
//	PATCH  /candidates/{id}        owner only
//	POST   /employers              create own employer profile
//	GET    /employers/me           fetch own employer profile
//	PATCH  /employers/me           owner only
//	POST   /ai/role-description    generate role description text
//	POST   /ai/profile-summary     generate candidate summary text
//
// Every handler reads the viewer identity the auth middleware attached to the
// request context and passes it to the service explicitly.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ramcignex-del/TalentBid/internal/ai"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

// Handler holds shared dependencies.
type Handler struct {
	svc       *bidding.Service
	assistant ai.Assistant
	log       *zap.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(svc *bidding.Service, assistant ai.Assistant, log *zap.Logger) *Handler {
	return &Handler{svc: svc, assistant: assistant, log: log}
}

// Routes builds the router with auth already applied by the caller.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(auth)

	r.Get("/health", h.health)

	r.Route("/bids", func(r chi.Router) {
		r.Post("/", h.createBid)
		r.Get("/", h.listBids)
		r.Get("/{id}", h.getBid)
		r.Patch("/{id}", h.reviseBid)
		r.Post("/{id}/accept", h.acceptBid)
		r.Post("/{id}/reject", h.rejectBid)
	})

	r.Route("/candidates", func(r chi.Router) {
		r.Get("/", h.listCandidates)
		r.Post("/", h.createCandidate)
		r.Get("/{id}", h.getCandidate)
		r.Patch("/{id}", h.updateCandidate)
	})

	r.Route("/employers", func(r chi.Router) {
		r.Post("/", h.createEmployer)
		r.Get("/me", h.getOwnEmployer)
		r.Patch("/me", h.updateOwnEmployer)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Post("/role-description", h.roleDescription)
		r.Post("/profile-summary", h.profileSummary)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonOK(w, map[string]string{"status": "ok"})
}

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, http.StatusOK, v)
}

func jsonStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	jsonStatus(w, code, map[string]string{"error": msg})
}

// writeDomainError maps service errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var verr *bidding.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, verr.Msg, http.StatusBadRequest)
	case errors.Is(err, bidding.ErrUnauthorized):
		jsonError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, bidding.ErrForbidden):
		jsonError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, bidding.ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, bidding.ErrRevisionLimit):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, bidding.ErrConflict):
		jsonError(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("request failed", zap.Error(err))
		jsonError(w, "internal server error", http.StatusInternalServerError)
	}
}
