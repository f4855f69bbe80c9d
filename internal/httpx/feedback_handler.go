package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dronewear/storefront/internal/feedback"
)

type CreateFeedbackReq struct {
	UserID int64 `json:"user_id"`
	feedback.Input
}

type FeedbackHandler struct {
	Repo *feedback.Repo
}

func (h *FeedbackHandler) Register(r *chi.Mux) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{feedbackID}", h.get)
		r.Put("/{feedbackID}", h.update)
		r.Delete("/{feedbackID}", h.delete)
	})
}

func feedbackID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "feedbackID"), 10, 64)
	return id, err == nil
}

func (h *FeedbackHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	f, err := h.Repo.Create(ctx, req.UserID, req.Input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FeedbackHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []feedback.Feedback{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FeedbackHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid feedback id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	f, err := h.Repo.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FeedbackHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid feedback id"})
		return
	}
	var in feedback.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	f, err := h.Repo.Update(ctx, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FeedbackHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid feedback id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "feedback deleted"})
}
