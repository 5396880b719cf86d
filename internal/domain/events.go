package domain

import "time"

type ProductStatusEvent struct {
	EventType string        `json:"event_type"`
	ProductID string        `json:"product_id"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
	Reason    string        `json:"reason"`
	UserID    string        `json:"user_id"`
	Timestamp time.Time     `json:"timestamp"`
}

type OrderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	Customer    string    `json:"customer"`
	Fulfillment string    `json:"fulfillment"`
	Total       string    `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

type CatalogImportMessage struct {
	TaskID         string `json:"task_id"`
	SpreadsheetID  string `json:"spreadsheet_id"`
	RestaurantName string `json:"restaurant_name"`
}

const (
	EventProductStatusChanged = "product.status_changed"
	EventOrderCreated         = "order.created"
)
