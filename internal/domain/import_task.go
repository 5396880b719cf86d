package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImportTaskStatus string

const (
	ImportQueued     ImportTaskStatus = "queued"
	ImportProcessing ImportTaskStatus = "processing"
	ImportCompleted  ImportTaskStatus = "completed"
	ImportFailed     ImportTaskStatus = "failed"
)

type ImportTask struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status         ImportTaskStatus   `bson:"status" json:"status"`
	SpreadsheetID  string             `bson:"spreadsheet_id" json:"spreadsheet_id"`
	RestaurantName string             `bson:"restaurant_name" json:"restaurant_name"`
	ProductCount   int                `bson:"product_count" json:"product_count"`
	CategoryCount  int                `bson:"category_count" json:"category_count"`
	ErrorMessage   string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
