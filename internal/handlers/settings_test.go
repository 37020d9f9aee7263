package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyHandlerUnknownUser(t *testing.T) {
	svc := newTestService()
	bot := &fakeSender{}
	currency := NewCurrencyHandler(svc, testLogger())

	require.NoError(t, currency.Handle(bot, newMessage(99, "/currency USD"), []string{"USD"}))
	assert.Contains(t, bot.lastText(), "/start")
}

func TestCurrencyHandler(t *testing.T) {
	svc := newTestService()
	bot := &fakeSender{}
	start := NewStartHandler(svc, testLogger())
	currency := NewCurrencyHandler(svc, testLogger())
	settings := NewSettingsHandler(svc, testLogger())

	require.NoError(t, start.Handle(bot, newMessage(42, "/start"), nil))

	// Invalid code lists the valid options and changes nothing.
	require.NoError(t, currency.Handle(bot, newMessage(42, "/currency ZZZ"), []string{"ZZZ"}))
	assert.Contains(t, bot.lastText(), "unsupported currency")
	assert.Contains(t, bot.lastText(), "USD")

	require.NoError(t, settings.Handle(bot, newMessage(42, "/settings"), nil))
	assert.Contains(t, bot.lastText(), "Currency: BRL")

	require.NoError(t, currency.Handle(bot, newMessage(42, "/currency usd"), []string{"usd"}))
	assert.Contains(t, bot.lastText(), "USD")

	require.NoError(t, settings.Handle(bot, newMessage(42, "/settings"), nil))
	assert.Contains(t, bot.lastText(), "Currency: USD")
}

func TestCurrencyHandlerUsage(t *testing.T) {
	svc := newTestService()
	bot := &fakeSender{}
	currency := NewCurrencyHandler(svc, testLogger())

	require.NoError(t, currency.Handle(bot, newMessage(42, "/currency"), nil))
	assert.Contains(t, bot.lastText(), "Usage")
}

func TestLanguageHandler(t *testing.T) {
	svc := newTestService()
	bot := &fakeSender{}
	start := NewStartHandler(svc, testLogger())
	language := NewLanguageHandler(svc, testLogger())

	require.NoError(t, start.Handle(bot, newMessage(42, "/start"), nil))

	require.NoError(t, language.Handle(bot, newMessage(42, "/language xx"), []string{"xx"}))
	assert.Contains(t, bot.lastText(), "unsupported language")

	require.NoError(t, language.Handle(bot, newMessage(42, "/language PT"), []string{"PT"}))
	assert.Contains(t, bot.lastText(), "pt")
}

func TestSettingsHandlerUnknownUser(t *testing.T) {
	svc := newTestService()
	bot := &fakeSender{}
	settings := NewSettingsHandler(svc, testLogger())

	require.NoError(t, settings.Handle(bot, newMessage(99, "/settings"), nil))
	assert.Contains(t, bot.lastText(), "/start")
}
