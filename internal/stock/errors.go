package stock

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("stock item not found")

// InsufficientError reports a reservation that asked for more than the
// quantity on hand at decrement time.
type InsufficientError struct {
	StockID   int64
	Requested int
	Available int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d",
		e.StockID, e.Requested, e.Available)
}
