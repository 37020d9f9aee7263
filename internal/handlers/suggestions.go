package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/format"
	"smartshopbot/internal/llm"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

// How many of the most recent items feed the suggestion prompt.
const suggestionContextSize = 10

// fallbackSuggestions is used whenever the AI collaborator is disabled,
// fails, or times out. Suggestion failures never reach the user as errors.
var fallbackSuggestions = []string{"Apples", "Bread", "Eggs", "Rice", "Coffee"}

// SuggestionsHandler handles the /suggestions command. With an empty list the
// collaborator is never called; with one, its failure degrades to a static
// fallback list.
type SuggestionsHandler struct {
	svc       *service.Service
	suggester llm.Suggester
	logger    *logrus.Logger
}

// NewSuggestionsHandler creates a new SuggestionsHandler.
func NewSuggestionsHandler(svc *service.Service, suggester llm.Suggester, logger *logrus.Logger) *SuggestionsHandler {
	return &SuggestionsHandler{svc: svc, suggester: suggester, logger: logger}
}

// Handle processes the /suggestions command.
func (h *SuggestionsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	items, err := h.svc.ListItems(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	if len(items) == 0 {
		return reply(bot, message,
			"📝 Your shopping list is empty, so I have nothing to base suggestions on.\n\n"+
				"Add a few items with `/add <item>` and try again!")
	}

	names := service.RecentItemNames(items, suggestionContextSize)

	suggestions, err := h.suggester.Suggest(ctx, names)
	if err != nil || len(suggestions) == 0 {
		h.logger.WithFields(logrus.Fields{
			"user_id": message.From.ID,
			"error":   err,
		}).Warn("Suggestion collaborator failed, using fallback")
		suggestions = fallbackSuggestions
	}

	if err := reply(bot, message, format.Suggestions(suggestions)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"count":   len(suggestions),
	}).Info("Sent shopping suggestions")

	return nil
}
