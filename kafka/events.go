package kafka

import "time"

// OrderEventItem is a single line of an order carried by an event
type OrderEventItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderEvent represents an order lifecycle event
type OrderEvent struct {
	EventID     string           `json:"event_id"`
	EventType   string           `json:"event_type"`
	OrderID     uint             `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	UserID      uint             `json:"user_id"`
	TotalPrice  string           `json:"total_price"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced   = "order.placed"
	EventTypeOrderCanceled = "order.canceled"
)

// Kafka topics
const (
	TopicOrderPlaced   = "order-placed"
	TopicOrderCanceled = "order-canceled"
)
