// Package format holds the pure functions that turn domain data into reply
// strings. Nothing here touches the store or the network, so every reply can
// be asserted in tests.
package format

import (
	"fmt"
	"strings"

	"smartshopbot/internal/models"
	"smartshopbot/internal/ocr"
)

// Price renders an amount in the user's preferred currency.
func Price(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// ShoppingList renders the numbered list. The numbering matches the order the
// store returns, which is the same order /remove resolves against.
func ShoppingList(items []*models.ShoppingItem) string {
	if len(items) == 0 {
		return "📝 Your shopping list is empty!\n\nAdd items with `/add <item>`"
	}

	var sb strings.Builder
	sb.WriteString("📝 *Your Shopping List:*\n\n")
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Label()))
	}
	sb.WriteString(fmt.Sprintf("\n*Total Items:* %d", len(items)))
	return sb.String()
}

// ItemAdded confirms an /add.
func ItemAdded(item *models.ShoppingItem) string {
	return fmt.Sprintf("✅ Added to list: *%s*", item.Label())
}

// ItemRemoved confirms a /remove.
func ItemRemoved(item *models.ShoppingItem) string {
	return fmt.Sprintf("✅ Removed: *%s*", item.Name)
}

// ListCleared reports how many items a /clear deleted.
func ListCleared(count int64) string {
	if count == 0 {
		return "📝 Your shopping list was already empty."
	}
	return fmt.Sprintf("🧹 Shopping list cleared! Removed %d item(s).", count)
}

// Suggestions renders the AI (or fallback) suggestion list.
func Suggestions(names []string) string {
	var sb strings.Builder
	sb.WriteString("🎯 *Shopping Suggestions:*\n\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("• %s\n", name))
	}
	sb.WriteString("\nAdd one with `/add <item>`")
	return sb.String()
}

// Receipt renders the itemized extraction result in the user's currency.
func Receipt(items []ocr.Item, total float64, currency string) string {
	var sb strings.Builder
	sb.WriteString("✅ *Receipt processed!*\n\nExtracted items:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", item.Name, Price(item.Price, currency)))
	}
	sb.WriteString(fmt.Sprintf("\n*Total:* %s", Price(total, currency)))
	return sb.String()
}

// Settings renders the user's current preferences.
func Settings(user *models.User) string {
	return fmt.Sprintf(
		"⚙️ *Your Settings:*\n\n💵 Currency: %s\n🌐 Language: %s\n\n"+
			"Change them with `/currency <code>` or `/language <code>`",
		user.Currency, user.Language)
}

// Stats renders spending analytics built from processed receipts.
func Stats(user *models.User, stats *models.ReceiptStats) string {
	if stats.ReceiptCount == 0 {
		return "📊 No receipts processed yet.\n\nSend a receipt photo with `/receipt` to start tracking spending."
	}

	average := stats.TotalSpent
	if stats.ItemsBought > 0 {
		average = stats.TotalSpent / float64(stats.ItemsBought)
	}

	return fmt.Sprintf(
		"📊 *Shopping Analytics:*\n\n"+
			"🧾 Receipts processed: %d\n"+
			"🛍 Items bought: %d\n"+
			"💳 Total spent: %s\n"+
			"🔖 Average per item: %s",
		stats.ReceiptCount,
		stats.ItemsBought,
		Price(stats.TotalSpent, user.Currency),
		Price(average, user.Currency),
	)
}
