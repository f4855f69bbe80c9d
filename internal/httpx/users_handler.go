package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dronewear/storefront/internal/users"
)

type CredentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type CreateAddressReq struct {
	UserID int64 `json:"user_id"`
	users.AddressInput
}

type UsersHandler struct {
	Repo      *users.Repo
	JWTSecret string
	TokenTTL  time.Duration
}

func (h *UsersHandler) Register(r *chi.Mux) {
	r.Post("/api/register/", h.register)
	r.Post("/api/login/", h.login)

	r.Route("/api/address", func(r chi.Router) {
		r.Post("/", h.createAddress)
		r.Get("/user/{userID}", h.listAddresses)
		r.Put("/{addressID}", h.updateAddress)
		r.Delete("/{addressID}", h.deleteAddress)
	})
}

func (h *UsersHandler) register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Repo.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Repo.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := users.IssueToken(h.JWTSecret, u, h.TokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResp{UserID: u.ID, Email: u.Email, Token: tok})
}

func (h *UsersHandler) createAddress(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Repo.CreateAddress(ctx, req.UserID, req.AddressInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *UsersHandler) listAddresses(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid user id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.ListAddresses(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []users.Address{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UsersHandler) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "addressID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid address id"})
		return
	}
	var in users.AddressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	a, err := h.Repo.UpdateAddress(ctx, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *UsersHandler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "addressID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "invalid address id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.DeleteAddress(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "address deleted"})
}
