package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"smartshopbot/internal/ocr"
	"smartshopbot/internal/repository/memory"
	"smartshopbot/internal/service"
)

// fakeSender records every outbound message so tests can assert on replies.
type fakeSender struct {
	sent    []tgbotapi.Chattable
	fileURL string
	fileErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL, f.fileErr
}

// lastText returns the text of the most recently sent message.
func (f *fakeSender) lastText() string {
	if len(f.sent) == 0 {
		return ""
	}
	if msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig); ok {
		return msg.Text
	}
	return ""
}

// fakeSuggester counts invocations and returns a canned result.
type fakeSuggester struct {
	calls  int
	result []string
	err    error
}

func (f *fakeSuggester) Suggest(ctx context.Context, itemNames []string) ([]string, error) {
	f.calls++
	return f.result, f.err
}

// fakeExtractor counts invocations and returns a canned result.
type fakeExtractor struct {
	calls  int
	result *ocr.Result
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, imageData []byte) (*ocr.Result, error) {
	f.calls++
	return f.result, f.err
}

func newTestService() *service.Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return service.New(nil, logger,
		memory.NewUserRepository(),
		memory.NewShoppingItemRepository(),
		memory.NewReceiptRepository(),
	)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "alice"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
}
