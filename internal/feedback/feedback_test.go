package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRejectsBadRating(t *testing.T) {
	// validation runs before any storage call: nil pool proves it
	r := &Repo{DB: nil}
	for _, rating := range []int{0, -1, 6} {
		_, err := r.Create(context.Background(), 1, Input{Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
	_, err := r.Update(context.Background(), 1, Input{Rating: 99})
	assert.ErrorIs(t, err, ErrInvalidRating)
}
