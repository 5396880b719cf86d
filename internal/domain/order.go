package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "DELIVERY"
	FulfillmentPickup   Fulfillment = "PICKUP"
)

func (f Fulfillment) Valid() bool {
	return f == FulfillmentDelivery || f == FulfillmentPickup
}

// Order is immutable once created; the id doubles as the correlation token
// echoed back to the customer in the messaging handoff.
type Order struct {
	ID             primitive.ObjectID `json:"id"`
	Customer       string             `json:"customer"`
	Address        string             `json:"address,omitempty"`
	Fulfillment    Fulfillment        `json:"fulfillment"`
	Total          decimal.Decimal    `json:"total"`
	Details        string             `json:"details"`
	IdempotencyKey string             `json:"-"`
	NotifiedAt     *time.Time         `json:"notified_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
