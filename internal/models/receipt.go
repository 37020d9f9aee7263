package models

import "time"

// Receipt records one processed receipt photo for a user.
type Receipt struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	ItemsCount  int       `json:"items_count" db:"items_count"`
	OCRText     string    `json:"ocr_text" db:"ocr_text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReceiptStats aggregates a user's processed receipts for /stats.
type ReceiptStats struct {
	ReceiptCount int     `json:"receipt_count"`
	ItemsBought  int     `json:"items_bought"`
	TotalSpent   float64 `json:"total_spent"`
}
