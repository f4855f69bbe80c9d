package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dronewear/storefront/internal/stock"
)

type StockHandler struct {
	Repo *stock.Repo
}

func (h *StockHandler) Register(r *chi.Mux) {
	r.Route("/api/stock", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{stockID}", h.get)
		r.Put("/{stockID}", h.update)
		r.Delete("/{stockID}", h.delete)
	})
}

func stockID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "stockID"), 10, 64)
	return id, err == nil
}

func (h *StockHandler) create(w http.ResponseWriter, r *http.Request) {
	var in stock.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}
	if in.Quantity < 0 || in.Price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "price and quantity must be non-negative"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Repo.Create(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *StockHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []stock.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *StockHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := stockID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid stock id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Repo.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *StockHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := stockID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid stock id"})
		return
	}
	var in stock.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}
	if in.Quantity < 0 || in.Price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "price and quantity must be non-negative"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.Repo.Update(ctx, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *StockHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := stockID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid stock id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "stock item deleted"})
}
