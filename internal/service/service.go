package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
	"smartshopbot/internal/repository"
)

const (
	maxItemNameLength = 255
	maxQuantityLength = 50
)

// Currency and language codes accepted by the preference commands.
var (
	ValidCurrencies = []string{"USD", "BRL", "EUR", "GBP", "ARS", "MXN", "COP"}
	ValidLanguages  = []string{"en", "pt", "es", "fr", "de"}
)

// Service is the central business logic layer that holds all repositories
// and provides high-level methods for the application.
type Service struct {
	db       *sql.DB
	logger   *logrus.Logger
	Users    repository.UserRepository
	Items    repository.ShoppingItemRepository
	Receipts repository.ReceiptRepository
}

// New creates a new Service with all required dependencies.
func New(db *sql.DB, logger *logrus.Logger,
	users repository.UserRepository,
	items repository.ShoppingItemRepository,
	receipts repository.ReceiptRepository,
) *Service {
	return &Service{
		db: db, logger: logger,
		Users: users, Items: items, Receipts: receipts,
	}
}

// EnsureUser creates the user row on first contact, or refreshes the stored
// username. Safe to call on every command.
func (s *Service) EnsureUser(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	user, err := s.Users.EnsureUser(ctx, telegramID, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user (telegram_id=%d): %w", telegramID, err)
	}
	return user, nil
}

// AddItem validates the name and quantity, makes sure the owning user exists,
// and inserts the item at the end of the list.
func (s *Service) AddItem(ctx context.Context, telegramID int64, username, name, quantity string) (*models.ShoppingItem, error) {
	if err := validateItem(name, quantity); err != nil {
		return nil, err
	}

	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}

	item := &models.ShoppingItem{
		UserID:   user.ID,
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
	}
	item, err = s.Items.Add(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add item for user %d: %w", user.ID, err)
	}

	// Counter is best-effort: a failure here must not fail the add.
	if err := s.Users.IncrementItemCount(ctx, user.ID, 1); err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).
			Warn("Failed to increment item count")
	}

	return item, nil
}

// ListItems returns the user's list in display order (oldest first, id as
// tie-break). An empty list is a valid result, not an error.
func (s *Service) ListItems(ctx context.Context, telegramID int64, username string) ([]*models.ShoppingItem, error) {
	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}
	items, err := s.Items.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for user %d: %w", user.ID, err)
	}
	return items, nil
}

// RemoveItemByIndex removes the item at the given 1-based position, as shown
// by /list, and returns it.
func (s *Service) RemoveItemByIndex(ctx context.Context, telegramID int64, username string, index int) (*models.ShoppingItem, error) {
	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}

	item, err := s.Items.RemoveByIndex(ctx, user.ID, index)
	if err != nil {
		return nil, err
	}

	if err := s.Users.IncrementItemCount(ctx, user.ID, -1); err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).
			Warn("Failed to decrement item count")
	}

	return item, nil
}

// ClearItems deletes the user's entire list and returns how many items were
// removed. Clearing an empty list returns 0.
func (s *Service) ClearItems(ctx context.Context, telegramID int64, username string) (int64, error) {
	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return 0, err
	}

	removed, err := s.Items.Clear(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear items for user %d: %w", user.ID, err)
	}

	if removed > 0 {
		if err := s.Users.IncrementItemCount(ctx, user.ID, -removed); err != nil {
			s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).
				Warn("Failed to adjust item count after clear")
		}
	}

	return removed, nil
}

// SetCurrency updates the user's preferred currency. The code must be on the
// allow-list; unknown users get domain.ErrUserNotFound so the handler can
// point them at /start.
func (s *Service) SetCurrency(ctx context.Context, telegramID int64, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !contains(ValidCurrencies, code) {
		return domain.Validationf("unsupported currency %q, valid options: %s",
			code, strings.Join(ValidCurrencies, ", "))
	}
	return s.Users.SetCurrency(ctx, telegramID, code)
}

// SetLanguage updates the user's preferred language.
func (s *Service) SetLanguage(ctx context.Context, telegramID int64, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if !contains(ValidLanguages, code) {
		return domain.Validationf("unsupported language %q, valid options: %s",
			code, strings.Join(ValidLanguages, ", "))
	}
	return s.Users.SetLanguage(ctx, telegramID, code)
}

// GetUser returns the stored user row without creating one.
func (s *Service) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	return s.Users.GetByID(ctx, telegramID)
}

// RecordReceipt persists a processed receipt and bumps the user's receipt
// counter. The counter update is best-effort.
func (s *Service) RecordReceipt(ctx context.Context, telegramID int64, username string, receipt *models.Receipt) (*models.Receipt, error) {
	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}

	receipt.UserID = user.ID
	receipt, err = s.Receipts.Create(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to record receipt for user %d: %w", user.ID, err)
	}

	if err := s.Users.IncrementReceiptCount(ctx, user.ID); err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).
			Warn("Failed to increment receipt count")
	}

	return receipt, nil
}

// ReceiptStats returns aggregated spending figures for /stats.
func (s *Service) ReceiptStats(ctx context.Context, telegramID int64, username string) (*models.ReceiptStats, error) {
	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}
	stats, err := s.Receipts.StatsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt stats for user %d: %w", user.ID, err)
	}
	return stats, nil
}

// RecentItemNames returns up to limit item names, most recent first. Used to
// build the AI suggestion prompt.
func RecentItemNames(items []*models.ShoppingItem, limit int) []string {
	recent := make([]*models.ShoppingItem, len(items))
	copy(recent, items)
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	names := make([]string, 0, len(recent))
	for _, item := range recent {
		names = append(names, item.Name)
	}
	return names
}

// validateItem checks the add-item input. All violations are collected so the
// user sees everything wrong with the input at once.
func validateItem(name, quantity string) error {
	var result *multierror.Error

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		result = multierror.Append(result, domain.Validationf("item name cannot be empty"))
	case len(name) > maxItemNameLength:
		result = multierror.Append(result, domain.Validationf("item name too long (max %d chars)", maxItemNameLength))
	case strings.ContainsAny(name, "\n\t\r"):
		result = multierror.Append(result, domain.Validationf("item name contains invalid characters"))
	}

	if len(quantity) > maxQuantityLength {
		result = multierror.Append(result, domain.Validationf("quantity too long (max %d chars)", maxQuantityLength))
	}

	return result.ErrorOrNil()
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
