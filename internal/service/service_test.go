package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
	"smartshopbot/internal/repository/memory"
)

func newTestService() (*Service, *memory.UserRepository, *memory.ShoppingItemRepository) {
	users := memory.NewUserRepository()
	items := memory.NewShoppingItemRepository()
	receipts := memory.NewReceiptRepository()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return New(nil, logger, users, items, receipts), users, items
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)
	second, err := svc.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, users.Count())
	assert.Equal(t, models.DefaultCurrency, first.Currency)
	assert.Equal(t, models.DefaultLanguage, first.Language)
}

func TestEnsureUserConcurrent(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := svc.EnsureUser(ctx, 42, "alice")
			done <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	assert.Equal(t, 1, users.Count())
}

func TestAddItemAppearsInList(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	before, err := svc.ListItems(ctx, 42, "alice")
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, 42, "alice", "Milk", "2")
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "2", item.Quantity)

	after, err := svc.ListItems(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, "Milk", after[len(after)-1].Name)
}

func TestAddItemValidation(t *testing.T) {
	svc, _, items := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		itemName string
		quantity string
	}{
		{"empty name", "", "1"},
		{"whitespace name", "   ", "1"},
		{"name too long", strings.Repeat("a", 256), "1"},
		{"newline in name", "Milk\nBread", "1"},
		{"tab in name", "Milk\tBread", "1"},
		{"quantity too long", "Milk", strings.Repeat("9", 51)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, 42, "alice", tt.itemName, tt.quantity)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	// No mutation happened for any rejected input.
	list, err := items.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRemoveItemByIndexMatchesListOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Milk", "Bread", "Eggs"} {
		_, err := svc.AddItem(ctx, 42, "alice", name, "1")
		require.NoError(t, err)
	}

	removed, err := svc.RemoveItemByIndex(ctx, 42, "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, "Bread", removed.Name)

	list, err := svc.ListItems(ctx, 42, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Milk", list[0].Name)
	assert.Equal(t, "Eggs", list[1].Name)
}

func TestRemoveItemByIndexOutOfRange(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 42, "alice", "Milk", "1")
	require.NoError(t, err)

	for _, index := range []int{0, -1, 2, 100} {
		_, err := svc.RemoveItemByIndex(ctx, 42, "alice", index)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "index %d", index)
	}

	// List unchanged after all failed removals.
	list, err := svc.ListItems(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClearItems(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Clearing an empty list is not an error and reports zero.
	removed, err := svc.ClearItems(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	for _, name := range []string{"Milk", "Bread"} {
		_, err := svc.AddItem(ctx, 42, "alice", name, "1")
		require.NoError(t, err)
	}

	removed, err = svc.ClearItems(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	list, err := svc.ListItems(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSetCurrency(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.SetCurrency(ctx, 42, "usd"))
	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "USD", user.Currency)

	// Invalid code is rejected and the stored value is unchanged.
	err = svc.SetCurrency(ctx, 42, "ZZZ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	user, err = svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "USD", user.Currency)
}

func TestSetCurrencyUnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.SetCurrency(context.Background(), 99, "USD")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetLanguage(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.SetLanguage(ctx, 42, "PT"))
	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "pt", user.Language)

	err = svc.SetLanguage(ctx, 42, "xx")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRecordReceiptUpdatesStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.RecordReceipt(ctx, 42, "alice", &models.Receipt{TotalAmount: 21.70, ItemsCount: 3})
	require.NoError(t, err)
	_, err = svc.RecordReceipt(ctx, 42, "alice", &models.Receipt{TotalAmount: 10.00, ItemsCount: 2})
	require.NoError(t, err)

	stats, err := svc.ReceiptStats(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReceiptCount)
	assert.Equal(t, 5, stats.ItemsBought)
	assert.InDelta(t, 31.70, stats.TotalSpent, 0.001)

	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ReceiptCount)
}

func TestRecentItemNames(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	var items []*models.ShoppingItem
	for _, name := range []string{"Milk", "Bread", "Eggs"} {
		item, err := svc.AddItem(ctx, 42, "alice", name, "1")
		require.NoError(t, err)
		items = append(items, item)
	}

	names := RecentItemNames(items, 2)
	assert.Len(t, names, 2)
	// Most recent first; AddItem order was Milk, Bread, Eggs.
	assert.NotContains(t, names, "Milk")
}
