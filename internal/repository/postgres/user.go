package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
	"smartshopbot/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// EnsureUser inserts the user with default preferences, or refreshes the
// username if the row already exists. A single ON CONFLICT statement keeps
// concurrent calls for the same ID from racing into duplicates.
func (r *userRepository) EnsureUser(ctx context.Context, id int64, username string) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, currency, language)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, currency, language, item_count, receipt_count, created_at`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query,
		id,
		username,
		models.DefaultCurrency,
		models.DefaultLanguage,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Currency,
		&user.Language,
		&user.ItemCount,
		&user.ReceiptCount,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user %d: %w", id, err)
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, currency, language, item_count, receipt_count, created_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Currency,
		&user.Language,
		&user.ItemCount,
		&user.ReceiptCount,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

func (r *userRepository) SetCurrency(ctx context.Context, id int64, code string) error {
	return r.updateColumn(ctx, id, "currency", code)
}

func (r *userRepository) SetLanguage(ctx context.Context, id int64, code string) error {
	return r.updateColumn(ctx, id, "language", code)
}

func (r *userRepository) updateColumn(ctx context.Context, id int64, column, value string) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $2 WHERE id = $1`, column)

	result, err := r.db.ExecContext(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", column, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) IncrementItemCount(ctx context.Context, id int64, delta int64) error {
	query := `UPDATE users SET item_count = item_count + $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, delta); err != nil {
		return fmt.Errorf("failed to increment item count: %w", err)
	}
	return nil
}

func (r *userRepository) IncrementReceiptCount(ctx context.Context, id int64) error {
	query := `UPDATE users SET receipt_count = receipt_count + 1 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment receipt count: %w", err)
	}
	return nil
}

// Delete removes the user row; shopping items and receipts cascade.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
