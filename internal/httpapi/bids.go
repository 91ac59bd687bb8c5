package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ramcignex-del/TalentBid/internal/auth"
	"github.com/ramcignex-del/TalentBid/internal/bidding"
)

func (h *Handler) createBid(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	var in bidding.CreateBidInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	bid, err := h.svc.CreateBid(r.Context(), viewer, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonStatus(w, http.StatusCreated, bid)
}

func (h *Handler) getBid(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid bid id", http.StatusBadRequest)
		return
	}

	view, err := h.svc.GetBid(r.Context(), viewer, id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, view)
}

func (h *Handler) listBids(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	var filter bidding.ListFilter
	if raw := r.URL.Query().Get("candidate_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			jsonError(w, "invalid candidate_id", http.StatusBadRequest)
			return
		}
		filter.CandidateID = &id
	}
	if raw := r.URL.Query().Get("employer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			jsonError(w, "invalid employer_id", http.StatusBadRequest)
			return
		}
		filter.EmployerID = &id
	}

	views, err := h.svc.ListBids(r.Context(), viewer, filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, views)
}

func (h *Handler) reviseBid(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid bid id", http.StatusBadRequest)
		return
	}

	var in bidding.ReviseBidInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	bid, err := h.svc.ReviseBid(r.Context(), viewer, id, in)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, bid)
}

func (h *Handler) acceptBid(w http.ResponseWriter, r *http.Request) {
	h.decideBid(w, r, h.svc.AcceptBid)
}

func (h *Handler) rejectBid(w http.ResponseWriter, r *http.Request) {
	h.decideBid(w, r, h.svc.RejectBid)
}

// decideBid factors the shared shape of accept and reject.
func (h *Handler) decideBid(w http.ResponseWriter, r *http.Request, decide func(context.Context, bidding.ViewerIdentity, uuid.UUID) (*bidding.Bid, error)) {
	viewer := auth.ViewerFrom(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "invalid bid id", http.StatusBadRequest)
		return
	}

	bid, err := decide(r.Context(), viewer, id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	jsonOK(w, bid)
}
