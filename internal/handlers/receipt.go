package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/format"
	"smartshopbot/internal/models"
	"smartshopbot/internal/ocr"
	"smartshopbot/internal/service"
	"smartshopbot/internal/telegram"
)

const (
	downloadTimeout  = 30 * time.Second
	maxReceiptOCRLen = 2000

	couldNotProcess = "❌ Could not process the receipt. Please try a clearer photo."
)

// ReceiptHandler handles the /receipt command and incoming photo messages.
// The text command only prompts for a photo; the photo message drives the
// OCR flow. Nothing is persisted unless extraction succeeds with items.
type ReceiptHandler struct {
	svc        *service.Service
	extractor  ocr.Extractor
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(svc *service.Service, extractor ocr.Extractor, logger *logrus.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		svc:        svc,
		extractor:  extractor,
		httpClient: &http.Client{Timeout: downloadTimeout},
		logger:     logger,
	}
}

// Handle processes the /receipt command or a photo message.
func (h *ReceiptHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(message.Photo) == 0 {
		return reply(bot, message, "📷 Please send a photo of your receipt.")
	}

	ctx := context.Background()

	imageData, err := h.downloadPhoto(bot, message)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"user_id": message.From.ID,
			"error":   err,
		}).Warn("Failed to download receipt photo")
		return reply(bot, message, couldNotProcess)
	}

	result, err := h.extractor.Extract(ctx, imageData)
	if err != nil || result == nil || !result.Success || len(result.Items) == 0 {
		h.logger.WithFields(logrus.Fields{
			"user_id": message.From.ID,
			"error":   err,
		}).Warn("Receipt extraction failed")
		return reply(bot, message, couldNotProcess)
	}

	user, err := h.svc.EnsureUser(ctx, message.From.ID, message.From.UserName)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	ocrText := result.Text
	if len(ocrText) > maxReceiptOCRLen {
		ocrText = ocrText[:maxReceiptOCRLen]
	}
	receipt := &models.Receipt{
		TotalAmount: result.Total(),
		ItemsCount:  len(result.Items),
		OCRText:     ocrText,
	}
	if _, err := h.svc.RecordReceipt(ctx, message.From.ID, message.From.UserName, receipt); err != nil {
		return fmt.Errorf("record receipt: %w", err)
	}

	if err := reply(bot, message, format.Receipt(result.Items, result.Total(), user.Currency)); err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"items":   len(result.Items),
		"total":   result.Total(),
	}).Info("Receipt processed")

	return nil
}

// downloadPhoto fetches the largest available size of the attached photo.
func (h *ReceiptHandler) downloadPhoto(bot telegram.Sender, message *tgbotapi.Message) ([]byte, error) {
	photo := message.Photo[len(message.Photo)-1]

	url, err := bot.GetFileDirectURL(photo.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve photo URL: %w", err)
	}

	resp, err := h.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo body: %w", err)
	}
	return data, nil
}
