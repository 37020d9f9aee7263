package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
	"smartshopbot/internal/repository"
)

// listOrder is the single enumeration order used by both listing and
// index-based removal. The id tie-break keeps same-timestamp inserts stable.
const listOrder = "ORDER BY created_at ASC, id ASC"

type shoppingItemRepository struct {
	db *sql.DB
}

// NewShoppingItemRepository creates a new shopping item repository
func NewShoppingItemRepository(db *sql.DB) repository.ShoppingItemRepository {
	return &shoppingItemRepository{db: db}
}

func (r *shoppingItemRepository) Add(ctx context.Context, item *models.ShoppingItem) (*models.ShoppingItem, error) {
	query := `
		INSERT INTO shopping_items (user_id, name, quantity, bought)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if item.Quantity == "" {
		item.Quantity = "1"
	}
	item.Bought = false

	err := r.db.QueryRowContext(ctx, query,
		item.UserID,
		item.Name,
		item.Quantity,
		item.Bought,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	return item, nil
}

func (r *shoppingItemRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ShoppingItem, error) {
	query := `
		SELECT id, user_id, name, quantity, bought, created_at
		FROM shopping_items
		WHERE user_id = $1 ` + listOrder

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	var items []*models.ShoppingItem
	for rows.Next() {
		item := &models.ShoppingItem{}
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Name,
			&item.Quantity,
			&item.Bought,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// RemoveByIndex deletes the item at the given 1-based position in the list
// order. The select-and-delete runs inside one transaction with the row
// locked, so a concurrent removal cannot resolve against the same row.
func (r *shoppingItemRepository) RemoveByIndex(ctx context.Context, userID int64, oneBasedIndex int) (*models.ShoppingItem, error) {
	if oneBasedIndex < 1 {
		return nil, domain.ErrIndexOutOfRange
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, user_id, name, quantity, bought, created_at
		FROM shopping_items
		WHERE user_id = $1 ` + listOrder + `
		OFFSET $2 LIMIT 1
		FOR UPDATE`

	item := &models.ShoppingItem{}
	err = tx.QueryRowContext(ctx, query, userID, oneBasedIndex-1).Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Quantity,
		&item.Bought,
		&item.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrIndexOutOfRange
		}
		return nil, fmt.Errorf("failed to resolve item at index %d: %w", oneBasedIndex, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = $1`, item.ID); err != nil {
		return nil, fmt.Errorf("failed to delete shopping item %d: %w", item.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit removal: %w", err)
	}

	return item, nil
}

func (r *shoppingItemRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM shopping_items WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shopping items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
