// Package llm wraps the Gemini SDK to generate shopping suggestions from the
// user's current list. The client is optional: without an API key callers get
// ErrDisabled and fall back to a static list.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"smartshopbot/internal/metrics"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("llm client disabled: no API key configured")

const (
	defaultModel   = "gemini-2.0-flash"
	requestTimeout = 15 * time.Second
	maxSuggestions = 5
)

// Suggester produces complementary shopping suggestions for a list of items.
type Suggester interface {
	Suggest(ctx context.Context, itemNames []string) ([]string, error)
}

// Client is a Gemini-backed Suggester.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a suggestion client. An empty apiKey yields a disabled
// client whose Suggest always returns ErrDisabled.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if modelName == "" {
		modelName = defaultModel
	}
	c := &Client{modelName: modelName}
	if apiKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Suggest asks the model for up to 5 complementary items. The call is bounded
// by a timeout so a slow model never blocks the handler.
func (c *Client) Suggest(ctx context.Context, itemNames []string) ([]string, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Based on this shopping list: %s, suggest %d complementary items. "+
			"Return only the item names separated by commas.",
		strings.Join(itemNames, ", "), maxSuggestions)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.4)),
		MaxOutputTokens: 100,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), config)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("llm").Inc()
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	content := firstCandidateText(resp)
	if content == "" {
		metrics.CollaboratorFailures.WithLabelValues("llm").Inc()
		return nil, fmt.Errorf("empty response from model %s", c.modelName)
	}

	return parseSuggestions(content), nil
}

// parseSuggestions splits the model's comma-separated reply into clean item
// names, capped at maxSuggestions.
func parseSuggestions(content string) []string {
	var suggestions []string
	for _, part := range strings.Split(content, ",") {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if name != "" {
			suggestions = append(suggestions, name)
		}
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// firstCandidateText concatenates the text parts of the first candidate.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var content string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			content += part.Text
		}
	}
	return strings.TrimSpace(content)
}
