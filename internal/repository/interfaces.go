package repository

import (
	"context"

	"smartshopbot/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// EnsureUser returns the user row for the given Telegram ID, creating it
	// with defaults if absent. The operation is a single atomic upsert and is
	// safe to call concurrently for the same ID.
	EnsureUser(ctx context.Context, id int64, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetCurrency(ctx context.Context, id int64, code string) error
	SetLanguage(ctx context.Context, id int64, code string) error
	IncrementItemCount(ctx context.Context, id int64, delta int64) error
	IncrementReceiptCount(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ShoppingItemRepository defines the interface for shopping list operations.
// ListByUser and RemoveByIndex resolve against the same enumeration order
// (created_at ascending, id ascending), so the number a user sees in /list is
// exactly the number /remove accepts.
type ShoppingItemRepository interface {
	Add(ctx context.Context, item *models.ShoppingItem) (*models.ShoppingItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ShoppingItem, error)
	RemoveByIndex(ctx context.Context, userID int64, oneBasedIndex int) (*models.ShoppingItem, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

// ReceiptRepository defines the interface for processed-receipt records.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
	StatsByUser(ctx context.Context, userID int64) (*models.ReceiptStats, error)
}
