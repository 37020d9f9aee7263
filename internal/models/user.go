package models

import "time"

// Defaults applied when a user row is created lazily on first interaction.
const (
	DefaultCurrency = "BRL"
	DefaultLanguage = "en"
)

// User represents a Telegram user and their preferences. The primary key is
// the Telegram user ID itself, so one chat participant maps to exactly one row.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Currency     string    `json:"currency" db:"currency"`
	Language     string    `json:"language" db:"language"`
	ItemCount    int64     `json:"item_count" db:"item_count"`
	ReceiptCount int64     `json:"receipt_count" db:"receipt_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName returns the best display name for the user.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return "user"
}
