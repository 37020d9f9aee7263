package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/telegram"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

// NewHelpHandler creates a new help command handler
func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

// Handle processes the /help command
func (h *HelpHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	helpText := "👋 *Available Commands:*\n\n" +
		"*Shopping List:*\n" +
		"`/add milk 2L` - Add item (optional quantity last)\n" +
		"`/list` - Show all items\n" +
		"`/remove 2` - Remove item number 2\n" +
		"`/clear` - Clear entire list\n\n" +
		"*AI & Receipts:*\n" +
		"`/suggestions` - Get personalized suggestions\n" +
		"`/receipt` - Send a receipt photo for processing\n\n" +
		"*Settings:*\n" +
		"`/currency BRL` - Set currency\n" +
		"`/language en` - Set language\n" +
		"`/settings` - View current settings\n\n" +
		"*Analytics:*\n" +
		"`/stats` - View spending statistics"

	return reply(bot, message, helpText)
}
