package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestions(t *testing.T) {
	suggestions := parseSuggestions("Butter, Cheese, Tomatoes.")
	assert.Equal(t, []string{"Butter", "Cheese", "Tomatoes"}, suggestions)
}

func TestParseSuggestionsCapsAtFive(t *testing.T) {
	suggestions := parseSuggestions("a, b, c, d, e, f, g")
	assert.Len(t, suggestions, maxSuggestions)
}

func TestParseSuggestionsSkipsEmptyParts(t *testing.T) {
	suggestions := parseSuggestions("Butter,, , Cheese")
	assert.Equal(t, []string{"Butter", "Cheese"}, suggestions)

	assert.Empty(t, parseSuggestions(""))
}

func TestDisabledClient(t *testing.T) {
	c := &Client{}
	assert.False(t, c.Enabled())

	_, err := c.Suggest(context.Background(), []string{"Milk"})
	assert.ErrorIs(t, err, ErrDisabled)
}
