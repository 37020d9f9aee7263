package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"smartshopbot/internal/models"
	"smartshopbot/internal/repository"
)

type receiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *sql.DB) repository.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	query := `
		INSERT INTO receipts (user_id, total_amount, items_count, ocr_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		receipt.UserID,
		receipt.TotalAmount,
		receipt.ItemsCount,
		receipt.OCRText,
	).Scan(&receipt.ID, &receipt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	return receipt, nil
}

func (r *receiptRepository) StatsByUser(ctx context.Context, userID int64) (*models.ReceiptStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(items_count), 0), COALESCE(SUM(total_amount), 0)
		FROM receipts
		WHERE user_id = $1`

	stats := &models.ReceiptStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.ReceiptCount,
		&stats.ItemsBought,
		&stats.TotalSpent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt stats: %w", err)
	}

	return stats, nil
}
