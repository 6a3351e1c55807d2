package compose

import "strings"

// Tokenizer approximates the model tokenizer for context-window budgeting.
type Tokenizer interface {
	Tokenize(text string) []string
	Join(tokens []string) string
}

// WordTokenizer splits on whitespace. Word counts undercount subword tokens,
// so the configured context window should leave headroom for the model.
type WordTokenizer struct{}

// Tokenize splits text into whitespace-separated words.
func (WordTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Join rebuilds text from tokens.
func (WordTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
