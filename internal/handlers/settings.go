package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/format"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

const onboardingPrompt = "❌ I don't know you yet. Please run /start first."

// ---------------------------------------------------------------------------
// CurrencyHandler – /currency <code>
// ---------------------------------------------------------------------------

// CurrencyHandler handles the /currency command to set the preferred
// currency. Unlike the list commands it does not create the user implicitly:
// an unknown user is pointed at /start.
type CurrencyHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(svc *service.Service, logger *logrus.Logger) *CurrencyHandler {
	return &CurrencyHandler{svc: svc, logger: logger}
}

// Handle processes the /currency command.
func (h *CurrencyHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message, fmt.Sprintf(
			"❌ Usage: `/currency <code>`\nValid options: %s",
			strings.Join(service.ValidCurrencies, ", ")))
	}

	ctx := context.Background()

	err := h.svc.SetCurrency(ctx, message.From.ID, args[0])
	if err != nil {
		if domain.IsValidation(err) {
			return reply(bot, message, fmt.Sprintf("❌ %s", err.Error()))
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return reply(bot, message, onboardingPrompt)
		}
		return fmt.Errorf("set currency: %w", err)
	}

	code := strings.ToUpper(args[0])
	if err := reply(bot, message, fmt.Sprintf("✅ Currency set to *%s*", code)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"user_id":  message.From.ID,
		"currency": code,
	}).Info("Currency updated")

	return nil
}

// ---------------------------------------------------------------------------
// LanguageHandler – /language <code>
// ---------------------------------------------------------------------------

// LanguageHandler handles the /language command to set the preferred language.
type LanguageHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(svc *service.Service, logger *logrus.Logger) *LanguageHandler {
	return &LanguageHandler{svc: svc, logger: logger}
}

// Handle processes the /language command.
func (h *LanguageHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message, fmt.Sprintf(
			"❌ Usage: `/language <code>`\nValid options: %s",
			strings.Join(service.ValidLanguages, ", ")))
	}

	ctx := context.Background()

	err := h.svc.SetLanguage(ctx, message.From.ID, args[0])
	if err != nil {
		if domain.IsValidation(err) {
			return reply(bot, message, fmt.Sprintf("❌ %s", err.Error()))
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return reply(bot, message, onboardingPrompt)
		}
		return fmt.Errorf("set language: %w", err)
	}

	code := strings.ToLower(args[0])
	if err := reply(bot, message, fmt.Sprintf("✅ Language set to *%s*", code)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"user_id":  message.From.ID,
		"language": code,
	}).Info("Language updated")

	return nil
}

// ---------------------------------------------------------------------------
// SettingsHandler – /settings
// ---------------------------------------------------------------------------

// SettingsHandler handles the /settings command to show current preferences.
type SettingsHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *service.Service, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

// Handle processes the /settings command.
func (h *SettingsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	user, err := h.svc.GetUser(ctx, message.From.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return reply(bot, message, onboardingPrompt)
		}
		return fmt.Errorf("get user: %w", err)
	}

	return reply(bot, message, format.Settings(user))
}
