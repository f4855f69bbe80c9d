package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dronewear/storefront/internal/feedback"
	"github.com/dronewear/storefront/internal/orders"
	"github.com/dronewear/storefront/internal/stock"
	"github.com/dronewear/storefront/internal/users"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&stock.InsufficientError{StockID: 1, Requested: 2, Available: 1}, http.StatusBadRequest},
		{orders.ErrEmptyOrder, http.StatusBadRequest},
		{fmt.Errorf("stock 9: %w", orders.ErrInvalidQuantity), http.StatusBadRequest},
		{users.ErrEmailTaken, http.StatusBadRequest},
		{feedback.ErrInvalidRating, http.StatusBadRequest},
		{fmt.Errorf("stock 9: %w", stock.ErrNotFound), http.StatusNotFound},
		{orders.ErrNotFound, http.StatusNotFound},
		{orders.ErrBadReference, http.StatusNotFound},
		{users.ErrAddressNotFound, http.StatusNotFound},
		{users.ErrBadCredentials, http.StatusUnauthorized},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), "error %v", c.err)
	}
}
