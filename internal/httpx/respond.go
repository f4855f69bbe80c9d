package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dronewear/storefront/internal/feedback"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/stock"
	"github.com/dronewear/storefront/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error   string `json:"error"`
	StockID int64  `json:"stock_id,omitempty"`
}

// statusFor maps the domain error taxonomy onto HTTP statuses:
// missing references 404, rejected input (including insufficient stock) 400,
// bad credentials 401, anything else 500.
func statusFor(err error) int {
	var insufficient *stock.InsufficientError
	switch {
	case errors.As(err, &insufficient),
		errors.Is(err, orders.ErrEmptyOrder),
		errors.Is(err, orders.ErrInvalidQuantity),
		errors.Is(err, users.ErrWeakPassword),
		errors.Is(err, users.ErrBadEmail),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, feedback.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, stock.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, orders.ErrBadReference),
		errors.Is(err, users.ErrNotFound),
		errors.Is(err, users.ErrAddressNotFound),
		errors.Is(err, feedback.ErrNotFound),
		errors.Is(err, feedback.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, users.ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	body := errBody{Error: err.Error()}
	if code == http.StatusInternalServerError {
		body.Error = "internal error"
	}
	var insufficient *stock.InsufficientError
	if errors.As(err, &insufficient) {
		body.StockID = insufficient.StockID
	}
	writeJSON(w, code, body)
}
