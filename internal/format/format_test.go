package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartshopbot/internal/models"
	"smartshopbot/internal/ocr"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "BRL 21.70", Price(21.7, "BRL"))
	assert.Equal(t, "USD 0.00", Price(0, "USD"))
}

func TestShoppingListNumbering(t *testing.T) {
	items := []*models.ShoppingItem{
		{Name: "Milk", Quantity: "2"},
		{Name: "Bread", Quantity: "1"},
	}

	text := ShoppingList(items)
	assert.Contains(t, text, "1. Milk (2)")
	assert.Contains(t, text, "2. Bread")
	assert.Contains(t, text, "*Total Items:* 2")
}

func TestShoppingListEmpty(t *testing.T) {
	text := ShoppingList(nil)
	assert.Contains(t, text, "empty")
	assert.Contains(t, text, "/add")
}

func TestReceipt(t *testing.T) {
	items := []ocr.Item{
		{Name: "Milk 2L", Price: 5.50},
		{Name: "Bread", Price: 4.20},
	}

	text := Receipt(items, 9.70, "BRL")
	assert.Contains(t, text, "Milk 2L: BRL 5.50")
	assert.Contains(t, text, "Bread: BRL 4.20")
	assert.Contains(t, text, "*Total:* BRL 9.70")
}

func TestStats(t *testing.T) {
	user := &models.User{Currency: "EUR"}

	empty := Stats(user, &models.ReceiptStats{})
	assert.Contains(t, empty, "No receipts")

	text := Stats(user, &models.ReceiptStats{ReceiptCount: 2, ItemsBought: 4, TotalSpent: 20})
	assert.Contains(t, text, "Receipts processed: 2")
	assert.Contains(t, text, "Total spent: EUR 20.00")
	assert.Contains(t, text, "Average per item: EUR 5.00")
}

func TestSettings(t *testing.T) {
	user := &models.User{Currency: "BRL", Language: "pt"}

	text := Settings(user)
	assert.Contains(t, text, "Currency: BRL")
	assert.Contains(t, text, "Language: pt")
}

func TestListCleared(t *testing.T) {
	assert.Contains(t, ListCleared(0), "already empty")
	assert.Contains(t, ListCleared(3), "3 item(s)")
}
