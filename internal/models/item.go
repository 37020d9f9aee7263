package models

import "time"

// ShoppingItem represents a single entry on a user's shopping list.
type ShoppingItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  string    `json:"quantity" db:"quantity"`
	Bought    bool      `json:"bought" db:"bought"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Label returns the item name with its quantity suffix, if any.
func (i *ShoppingItem) Label() string {
	if i.Quantity != "" && i.Quantity != "1" {
		return i.Name + " (" + i.Quantity + ")"
	}
	return i.Name
}
