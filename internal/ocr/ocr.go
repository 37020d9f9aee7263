// Package ocr extracts itemized totals from receipt photos. Gemini's
// multimodal endpoint transcribes the image; a line parser then pulls out
// name/price pairs.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"smartshopbot/internal/metrics"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("ocr client disabled: no API key configured")

const (
	defaultModel   = "gemini-2.0-flash"
	requestTimeout = 30 * time.Second

	transcribePrompt = "Transcribe all text from this receipt image. " +
		"Return the raw text only, one receipt line per output line."
)

// Item is one extracted receipt line.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Result is the outcome of a receipt extraction. Success=false and an empty
// Items slice are treated identically by callers.
type Result struct {
	Success bool   `json:"success"`
	Items   []Item `json:"items"`
	Text    string `json:"text"`
}

// Total sums the extracted item prices.
func (r *Result) Total() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Price
	}
	return total
}

// Extractor turns a receipt image into extracted items.
type Extractor interface {
	Extract(ctx context.Context, imageData []byte) (*Result, error)
}

// Client is a Gemini-backed Extractor.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates an OCR client. An empty apiKey yields a disabled client
// whose Extract always returns ErrDisabled.
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

// Extract transcribes the receipt image and parses item lines out of the
// text. The call is bounded by a timeout.
func (c *Client) Extract(ctx context.Context, imageData []byte) (*Result, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{Text: transcribePrompt},
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: imageData}},
		},
	}}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.1)),
		MaxOutputTokens: 2048,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("ocr").Inc()
		return &Result{Success: false}, fmt.Errorf("failed to transcribe receipt: %w", err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		metrics.CollaboratorFailures.WithLabelValues("ocr").Inc()
		return &Result{Success: false}, nil
	}

	return &Result{
		Success: true,
		Items:   ParseItems(text),
		Text:    text,
	}, nil
}

// ParseItems pulls name/price pairs out of transcribed receipt text. A line
// qualifies when its last whitespace-separated token parses as a price.
func ParseItems(text string) []Item {
	var items []Item
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsAny(line, "0123456789") {
			continue
		}

		cut := strings.LastIndexByte(line, ' ')
		if cut <= 0 {
			continue
		}
		name := strings.TrimSpace(line[:cut])
		price, ok := parsePrice(line[cut+1:])
		if !ok || name == "" {
			continue
		}
		items = append(items, Item{Name: name, Price: price})
	}
	return items
}

// parsePrice handles "$5.50", "R$5,50" and plain "5.50" price tokens. A
// decimal separator is required, so bare counters like "03" on cashier or
// terminal lines do not read as prices.
func parsePrice(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "R$")
	token = strings.TrimPrefix(token, "$")
	token = strings.ReplaceAll(token, ",", ".")

	if !strings.Contains(token, ".") {
		return 0, false
	}
	price, err := strconv.ParseFloat(token, 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
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
