package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStatus string

const (
	StatusAvailable ProductStatus = "available"
	StatusSoldOut   ProductStatus = "sold_out"
)

type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Ingredients    []string        `json:"ingredients"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Category       string          `json:"category"`
	Status         ProductStatus   `json:"status"`
	IsDailySpecial bool            `json:"is_daily_special"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Available reports the storefront projection of the status flag. Only
// products explicitly marked sold out are hidden behind the overlay.
func (p Product) Available() bool {
	return p.Status != StatusSoldOut
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryAll is the reserved category id meaning "no filter".
const CategoryAll = "all"

type StatusAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"product_id" json:"product_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	OldStatus ProductStatus      `bson:"old_status" json:"old_status"`
	NewStatus ProductStatus      `bson:"new_status" json:"new_status"`
	Reason    string             `bson:"reason" json:"reason"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
