package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartshopbot/internal/config"
	"smartshopbot/internal/domain"
	"smartshopbot/internal/models"
)

// openTestDB connects to the database named by TEST_POSTGRES_DSN and runs
// migrations. Tests are skipped when the variable is unset so the suite stays
// runnable without a local Postgres.
func openTestDB(t *testing.T) *config.Database {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping Postgres integration tests")
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db, err := config.NewDatabase(dsn, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate("../../../migrations"))

	_, err = db.Exec(`TRUNCATE users CASCADE`)
	require.NoError(t, err)

	return db
}

func TestEnsureUserIdempotent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db.DB)
	ctx := context.Background()

	first, err := users.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(42), first.ID)
	assert.Equal(t, models.DefaultCurrency, first.Currency)
	assert.Equal(t, models.DefaultLanguage, first.Language)

	// Re-running refreshes the username and keeps preferences.
	require.NoError(t, users.SetCurrency(ctx, 42, "USD"))

	second, err := users.EnsureUser(ctx, 42, "alice_renamed")
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", second.Username)
	assert.Equal(t, "USD", second.Currency)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE id = 42`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSetCurrencyUnknownUser(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db.DB)

	err := users.SetCurrency(context.Background(), 99, "USD")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRemoveByIndexFollowsListOrder(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db.DB)
	items := NewShoppingItemRepository(db.DB)
	ctx := context.Background()

	_, err := users.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	for _, name := range []string{"Milk", "Bread", "Eggs"} {
		_, err := items.Add(ctx, &models.ShoppingItem{UserID: 42, Name: name})
		require.NoError(t, err)
	}

	removed, err := items.RemoveByIndex(ctx, 42, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bread", removed.Name)

	remaining, err := items.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "Milk", remaining[0].Name)
	assert.Equal(t, "Eggs", remaining[1].Name)

	_, err = items.RemoveByIndex(ctx, 42, 5)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestClearItems(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db.DB)
	items := NewShoppingItemRepository(db.DB)
	ctx := context.Background()

	_, err := users.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	for _, name := range []string{"Milk", "Bread"} {
		_, err := items.Add(ctx, &models.ShoppingItem{UserID: 42, Name: name})
		require.NoError(t, err)
	}

	removed, err := items.Clear(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = items.Clear(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestReceiptStats(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db.DB)
	receipts := NewReceiptRepository(db.DB)
	ctx := context.Background()

	_, err := users.EnsureUser(ctx, 42, "alice")
	require.NoError(t, err)

	stats, err := receipts.StatsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, stats.ReceiptCount)
	assert.Zero(t, stats.TotalSpent)

	_, err = receipts.Create(ctx, &models.Receipt{UserID: 42, TotalAmount: 9.70, ItemsCount: 2, OCRText: "Milk 5.50\nBread 4.20"})
	require.NoError(t, err)
	_, err = receipts.Create(ctx, &models.Receipt{UserID: 42, TotalAmount: 12.30, ItemsCount: 3, OCRText: "Eggs 12.30"})
	require.NoError(t, err)

	stats, err = receipts.StatsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReceiptCount)
	assert.Equal(t, 5, stats.ItemsBought)
	assert.InDelta(t, 22.0, stats.TotalSpent, 0.001)
}
