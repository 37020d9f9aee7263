package telegram

import (
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"smartshopbot/internal/metrics"
)

// Per-user inbound throttle: a short burst is fine, sustained spam is dropped.
const (
	userRateLimit = rate.Limit(1)
	userRateBurst = 5
)

// Router handles message routing and command parsing
type Router struct {
	logger       *logrus.Logger
	handlers     map[string]CommandHandler
	photoHandler CommandHandler

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// CommandHandler defines the interface for command handlers
type CommandHandler interface {
	Handle(bot Sender, message *tgbotapi.Message, args []string) error
}

// NewRouter creates a new message router
func NewRouter(logger *logrus.Logger) *Router {
	return &Router{
		logger:   logger,
		handlers: make(map[string]CommandHandler),
		limiters: make(map[int64]*rate.Limiter),
	}
}

// RegisterCommand registers a command handler
func (r *Router) RegisterCommand(command string, handler CommandHandler) {
	r.handlers[command] = handler
	r.logger.Debugf("Registered command: %s", command)
}

// RegisterPhotoHandler registers the handler that receives photo messages.
func (r *Router) RegisterPhotoHandler(handler CommandHandler) {
	r.photoHandler = handler
}

// HandleMessage handles incoming messages
func (r *Router) HandleMessage(bot Sender, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id":    message.Chat.ID,
		"user_id":    message.From.ID,
		"username":   message.From.UserName,
		"message_id": message.MessageID,
	}).Info("Received message")

	if !r.allow(message.From.ID) {
		metrics.UpdatesThrottled.Inc()
		r.logger.WithFields(logrus.Fields{
			"user_id": message.From.ID,
		}).Warn("Dropping update, user rate limit exceeded")
		return
	}

	// Photo messages go to the receipt flow regardless of caption.
	if len(message.Photo) > 0 && r.photoHandler != nil {
		r.dispatch(bot, message, "photo", r.photoHandler, nil)
		return
	}

	if message.Text == "" || !message.IsCommand() {
		return
	}

	command := message.Command()
	args := strings.Fields(message.CommandArguments())

	if handler, exists := r.handlers[command]; exists {
		r.dispatch(bot, message, command, handler, args)
		return
	}

	r.logger.WithFields(logrus.Fields{
		"command": command,
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Warn("Unknown command")

	unknownMsg := tgbotapi.NewMessage(message.Chat.ID, "❓ Unknown command. Use /help to see available commands.")
	bot.Send(unknownMsg)
}

// dispatch runs one handler and guarantees a single user-visible reply on
// failure. Handler errors never escape past here.
func (r *Router) dispatch(bot Sender, message *tgbotapi.Message, command string, handler CommandHandler, args []string) {
	start := time.Now()
	err := handler.Handle(bot, message, args)
	metrics.CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
	metrics.CommandsProcessed.WithLabelValues(command).Inc()

	if err != nil {
		metrics.CommandErrors.WithLabelValues(command).Inc()
		r.logger.WithFields(logrus.Fields{
			"command": command,
			"chat_id": message.Chat.ID,
			"user_id": message.From.ID,
			"error":   err,
		}).Error("Command handler failed")

		errorMsg := tgbotapi.NewMessage(message.Chat.ID, "❌ An error occurred while processing your command. Please try again.")
		bot.Send(errorMsg)
	}
}

// allow checks the per-user limiter, creating one on first contact.
func (r *Router) allow(userID int64) bool {
	r.mu.Lock()
	limiter, ok := r.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(userRateLimit, userRateBurst)
		r.limiters[userID] = limiter
	}
	r.mu.Unlock()

	return limiter.Allow()
}
