package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/domain"
	"smartshopbot/internal/format"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

var quantityRegex = regexp.MustCompile(`^x(\d+)$`)

// ---------------------------------------------------------------------------
// AddHandler – /add <item> [x quantity]
// ---------------------------------------------------------------------------

// AddHandler handles the /add command to add an item to the shopping list.
// An optional quantity suffix like "x2" can be appended at the end.
type AddHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewAddHandler creates a new AddHandler.
func NewAddHandler(svc *service.Service, logger *logrus.Logger) *AddHandler {
	return &AddHandler{svc: svc, logger: logger}
}

// Handle processes the /add command.
func (h *AddHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message,
			"❌ Please provide an item name.\n\n"+
				"*Usage:*\n"+
				"`/add Milk x2`\n"+
				"`/add Whole wheat bread`")
	}

	// Parse optional quantity suffix (e.g. "x2", "x12")
	var itemName, quantity string
	lastArg := args[len(args)-1]

	if matches := quantityRegex.FindStringSubmatch(lastArg); matches != nil && len(args) > 1 {
		quantity = matches[1]
		itemName = strings.Join(args[:len(args)-1], " ")
	} else {
		itemName = strings.Join(args, " ")
		quantity = "1"
	}

	ctx := context.Background()

	item, err := h.svc.AddItem(ctx, message.From.ID, message.From.UserName, itemName, quantity)
	if err != nil {
		if domain.IsValidation(err) {
			return reply(bot, message, fmt.Sprintf("❌ %s", err.Error()))
		}
		return fmt.Errorf("add item: %w", err)
	}

	if err := reply(bot, message, format.ItemAdded(item)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"item_id": item.ID,
	}).Info("Item added to shopping list")

	return nil
}

// ---------------------------------------------------------------------------
// ListHandler – /list
// ---------------------------------------------------------------------------

// ListHandler handles the /list command to display the shopping list. The
// numbers it shows are the same ones /remove accepts.
type ListHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(svc *service.Service, logger *logrus.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// Handle processes the /list command.
func (h *ListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	items, err := h.svc.ListItems(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	if err := reply(bot, message, format.ShoppingList(items)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"total":   len(items),
	}).Info("Listed shopping list")

	return nil
}

// ---------------------------------------------------------------------------
// RemoveHandler – /remove <n>
// ---------------------------------------------------------------------------

// RemoveHandler handles the /remove command to delete an item by its 1-based
// list position.
type RemoveHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewRemoveHandler creates a new RemoveHandler.
func NewRemoveHandler(svc *service.Service, logger *logrus.Logger) *RemoveHandler {
	return &RemoveHandler{svc: svc, logger: logger}
}

// Handle processes the /remove command.
func (h *RemoveHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return reply(bot, message,
			"❌ Please provide an item number.\nUsage: `/remove 2` (see numbers with /list)")
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return reply(bot, message,
			"❌ Invalid number. Please provide a positive item number from /list.")
	}

	ctx := context.Background()

	item, err := h.svc.RemoveItemByIndex(ctx, message.From.ID, message.From.UserName, index)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return reply(bot, message,
				fmt.Sprintf("❌ No item number %d on your list. Check /list for valid numbers.", index))
		}
		return fmt.Errorf("remove item: %w", err)
	}

	if err := reply(bot, message, format.ItemRemoved(item)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"item_id": item.ID,
	}).Info("Item removed from shopping list")

	return nil
}

// ---------------------------------------------------------------------------
// ClearHandler – /clear
// ---------------------------------------------------------------------------

// ClearHandler handles the /clear command to delete the whole list.
type ClearHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(svc *service.Service, logger *logrus.Logger) *ClearHandler {
	return &ClearHandler{svc: svc, logger: logger}
}

// Handle processes the /clear command.
func (h *ClearHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	removed, err := h.svc.ClearItems(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	if err := reply(bot, message, format.ListCleared(removed)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"removed": removed,
	}).Info("Cleared shopping list")

	return nil
}
