package events

import "strconv"

const (
	TopicOrderCreated  = "storefront.order.created"
	TopicStockDepleted = "storefront.stock.depleted"
)

// Partition key = order_id, so every event of one order keeps its ordering.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
