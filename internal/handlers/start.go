package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

// reply sends a Markdown message to the chat the command came from.
func reply(bot telegram.Sender, message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// StartHandler handles the /start command. This is the onboarding command:
// it is the one place a user row is guaranteed to be created before any
// preference command runs.
type StartHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewStartHandler creates a new start command handler
func NewStartHandler(svc *service.Service, logger *logrus.Logger) *StartHandler {
	return &StartHandler{svc: svc, logger: logger}
}

// Handle processes the /start command
func (h *StartHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	user, err := h.svc.EnsureUser(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	welcomeText := "🛒 *Welcome to SmartShopBot!*\n\n" +
		"I'll help you manage your shopping list with AI-powered suggestions.\n\n" +
		"*Commands:*\n" +
		"• /add <item> - Add item to list\n" +
		"• /list - View your list\n" +
		"• /remove <n> - Remove item by number\n" +
		"• /clear - Clear entire list\n" +
		"• /suggestions - Get AI recommendations\n" +
		"• /receipt - Process a receipt photo\n" +
		"• /stats - View spending analytics\n" +
		"• /settings - View your preferences\n" +
		"• /help - Full command list\n\n" +
		"Get started by adding your first item with /add!"

	if err := reply(bot, message, welcomeText); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": user.ID,
	}).Info("User started bot")

	return nil
}
