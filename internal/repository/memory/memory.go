// Package memory provides in-memory implementations of the repository
// interfaces. They back the unit tests and mirror the postgres semantics,
// including the list/remove enumeration order.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
	"smartshopbot/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*models.User)}
}

func (r *UserRepository) EnsureUser(ctx context.Context, id int64, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.Username = username
		return copyUser(user), nil
	}

	user := &models.User{
		ID:        id,
		Username:  username,
		Currency:  models.DefaultCurrency,
		Language:  models.DefaultLanguage,
		CreatedAt: time.Now(),
	}
	r.users[id] = user
	return copyUser(user), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *UserRepository) SetCurrency(ctx context.Context, id int64, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Currency = code
	return nil
}

func (r *UserRepository) SetLanguage(ctx context.Context, id int64, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Language = code
	return nil
}

func (r *UserRepository) IncrementItemCount(ctx context.Context, id int64, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.ItemCount += delta
	}
	return nil
}

func (r *UserRepository) IncrementReceiptCount(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok {
		user.ReceiptCount++
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// Count returns the number of stored user rows.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

// ShoppingItemRepository is an in-memory repository.ShoppingItemRepository.
type ShoppingItemRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []*models.ShoppingItem
}

// NewShoppingItemRepository creates an empty in-memory item repository.
func NewShoppingItemRepository() *ShoppingItemRepository {
	return &ShoppingItemRepository{}
}

func (r *ShoppingItemRepository) Add(ctx context.Context, item *models.ShoppingItem) (*models.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	if item.Quantity == "" {
		item.Quantity = "1"
	}
	item.Bought = false
	item.CreatedAt = time.Now()

	stored := *item
	r.items = append(r.items, &stored)
	return item, nil
}

func (r *ShoppingItemRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(userID), nil
}

func (r *ShoppingItemRepository) RemoveByIndex(ctx context.Context, userID int64, oneBasedIndex int) (*models.ShoppingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.listLocked(userID)
	if oneBasedIndex < 1 || oneBasedIndex > len(list) {
		return nil, domain.ErrIndexOutOfRange
	}

	target := list[oneBasedIndex-1]
	for i, item := range r.items {
		if item.ID == target.ID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return target, nil
}

func (r *ShoppingItemRepository) Clear(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*models.ShoppingItem
	var removed int64
	for _, item := range r.items {
		if item.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return removed, nil
}

// listLocked returns the user's items in created_at, id order.
func (r *ShoppingItemRepository) listLocked(userID int64) []*models.ShoppingItem {
	var list []*models.ShoppingItem
	for _, item := range r.items {
		if item.UserID == userID {
			c := *item
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// ReceiptRepository is an in-memory repository.ReceiptRepository.
type ReceiptRepository struct {
	mu       sync.Mutex
	nextID   int64
	receipts []*models.Receipt
}

// NewReceiptRepository creates an empty in-memory receipt repository.
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	receipt.ID = r.nextID
	receipt.CreatedAt = time.Now()

	stored := *receipt
	r.receipts = append(r.receipts, &stored)
	return receipt, nil
}

func (r *ReceiptRepository) StatsByUser(ctx context.Context, userID int64) (*models.ReceiptStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &models.ReceiptStats{}
	for _, receipt := range r.receipts {
		if receipt.UserID != userID {
			continue
		}
		stats.ReceiptCount++
		stats.ItemsBought += receipt.ItemsCount
		stats.TotalSpent += receipt.TotalAmount
	}
	return stats, nil
}

// Interface conformance checks.
var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.ShoppingItemRepository = (*ShoppingItemRepository)(nil)
	_ repository.ReceiptRepository      = (*ReceiptRepository)(nil)
)
