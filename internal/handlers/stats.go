package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/format"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

// StatsHandler handles the /stats command, summarizing processed receipts.
type StatsHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.Service, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

// Handle processes the /stats command.
func (h *StatsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	user, err := h.svc.EnsureUser(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	stats, err := h.svc.ReceiptStats(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("receipt stats: %w", err)
	}

	if err := reply(bot, message, format.Stats(user, stats)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent spending statistics")

	return nil
}
