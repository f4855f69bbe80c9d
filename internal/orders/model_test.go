package orders

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	items := []LineItem{
		{StockID: 1, Quantity: 5, Price: decimal.RequireFromString("10.00")},
		{StockID: 2, Quantity: 3, Price: decimal.RequireFromString("0.99")},
	}
	assert.True(t, Total(items).Equal(decimal.RequireFromString("52.97")),
		"got %s", Total(items))

	assert.True(t, Total(nil).IsZero())
}

func TestLineItemsRoundTrip(t *testing.T) {
	in := []LineItem{
		{StockID: 7, Quantity: 2, Price: decimal.RequireFromString("19.90")},
		{StockID: 3, Quantity: 1, Price: decimal.RequireFromString("5.00")},
		{StockID: 11, Quantity: 4, Price: decimal.RequireFromString("0.10")},
	}
	blob, err := json.Marshal(in)
	require.NoError(t, err)

	var out []LineItem
	require.NoError(t, json.Unmarshal(blob, &out))

	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].StockID, out[i].StockID, "line %d", i)
		assert.Equal(t, in[i].Quantity, out[i].Quantity, "line %d", i)
		assert.True(t, in[i].Price.Equal(out[i].Price), "line %d price", i)
	}
}
