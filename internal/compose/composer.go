package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

const (
	defaultContextWindow = 1022
	minSummaryMax        = 50
	minSummaryMin        = 40
	defaultKeywords      = 5
	defaultCallToAction  = "What are your thoughts on this news? Share your thoughts below!"
)

// ErrSummaryFailed marks an article that must be skipped entirely.
var ErrSummaryFailed = errors.New("summarization failed")

// Decorations are the marker pools drawn through the Chooser.
type Decorations struct {
	Headline     []string
	Summary      []string
	CallToAction []string
	Link         []string
	Prefixes     []string
}

// DefaultDecorations returns the stock marker pools.
func DefaultDecorations() Decorations {
	return Decorations{
		Headline:     []string{"🚨", "📰", "⚡️", "🌟"},
		Summary:      []string{"📢", "🔍", "📄", "🗣️", "✨"},
		CallToAction: []string{"🤔", "🗨️", "❓", "💭"},
		Link:         []string{"👉", "🔗"},
		Prefixes:     []string{"BREAKING", "LATEST", "JUST IN", "EXCLUSIVE", "SPOTLIGHT", "ANNOUNCEMENT", "HEADS UP"},
	}
}

// withDefaults fills every empty pool from the stock pools.
func (d Decorations) withDefaults() Decorations {
	stock := DefaultDecorations()
	for _, pool := range []struct{ dst, src *[]string }{
		{&d.Headline, &stock.Headline},
		{&d.Summary, &stock.Summary},
		{&d.CallToAction, &stock.CallToAction},
		{&d.Link, &stock.Link},
		{&d.Prefixes, &stock.Prefixes},
	} {
		if len(*pool.dst) == 0 {
			*pool.dst = *pool.src
		}
	}
	return d
}

// Options tunes summarization budgets and the post layout.
type Options struct {
	ContextWindow int
	Keywords      int
	Tags          []string
	CallToAction  string
	Decorations   Decorations
}

// Deps wires the model collaborators into the composer.
type Deps struct {
	Summarizer ports.Summarizer
	Keywords   ports.KeywordExtractor
	Tokenizer  Tokenizer
	Chooser    Chooser
	Logger     *slog.Logger
}

// Composer turns scraped articles into formatted drafts.
type Composer struct {
	summarizer ports.Summarizer
	keywords   ports.KeywordExtractor
	tokenizer  Tokenizer
	chooser    Chooser
	opts       Options
	logger     *slog.Logger
}

// New builds a composer; zero-valued options fall back to the stock layout.
func New(deps Deps, opts Options) *Composer {
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = defaultContextWindow
	}
	if opts.Keywords <= 0 {
		opts.Keywords = defaultKeywords
	}
	if opts.CallToAction == "" {
		opts.CallToAction = defaultCallToAction
	}
	opts.Decorations = opts.Decorations.withDefaults()
	if deps.Tokenizer == nil {
		deps.Tokenizer = WordTokenizer{}
	}
	if deps.Chooser == nil {
		deps.Chooser = NewRandomChooser(0)
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	return &Composer{
		summarizer: deps.Summarizer,
		keywords:   deps.Keywords,
		tokenizer:  deps.Tokenizer,
		chooser:    deps.Chooser,
		opts:       opts,
		logger:     deps.Logger,
	}
}

// Budget truncates body to the context window and derives the summary length:
// max is a third of the truncated token count (at least 50) and min is half of
// max (at least 40).
func (c *Composer) Budget(body string) (string, domain.SummaryLength) {
	tokens := c.tokenizer.Tokenize(body)
	if len(tokens) > c.opts.ContextWindow {
		tokens = tokens[:c.opts.ContextWindow]
		body = c.tokenizer.Join(tokens)
	}

	maxLen := max(minSummaryMax, len(tokens)/3)
	minLen := max(minSummaryMin, maxLen/2)
	return body, domain.SummaryLength{Min: minLen, Max: maxLen}
}

// Summarize produces the short text for a post body.
func (c *Composer) Summarize(ctx context.Context, body string) (string, error) {
	if c.summarizer == nil {
		return "", fmt.Errorf("%w: no summarizer configured", ErrSummaryFailed)
	}

	text, length := c.Budget(body)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty body", ErrSummaryFailed)
	}

	summary, err := c.summarizer.Summarize(ctx, text, length)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrSummaryFailed)
	}
	return summary, nil
}

// ExtractKeywords asks the keyword model for up to topN keywords.
func (c *Composer) ExtractKeywords(ctx context.Context, summary string, topN int) ([]string, error) {
	if c.keywords == nil {
		return nil, nil
	}
	keywords, err := c.keywords.ExtractKeywords(ctx, summary, topN)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords, nil
}

// Compose returns article enriched with post content and reset review flags.
// A summarization failure yields ErrSummaryFailed and no content.
func (c *Composer) Compose(ctx context.Context, article domain.Post) (domain.Post, error) {
	summary, err := c.Summarize(ctx, article.Body)
	if err != nil {
		return domain.Post{}, err
	}

	keywords, err := c.ExtractKeywords(ctx, summary, c.opts.Keywords)
	if err != nil {
		c.logger.Warn("keywords unavailable, using fixed tags", "link", article.Link, "error", err)
		keywords = nil
	}

	tags := append(append([]string{}, c.opts.Tags...), Hashtags(keywords)...)
	article.PostContent = c.Format(article.Title, summary, article.Link, tags)
	article.Approved = false
	article.Posted = false
	return article, nil
}

// Format lays out the post text.
func (c *Composer) Format(title, summary, link string, tags []string) string {
	d := c.opts.Decorations

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n\n", c.chooser.Choose(d.Headline), c.chooser.Choose(d.Prefixes), title)
	fmt.Fprintf(&b, "%s %s\n\n", c.chooser.Choose(d.Summary), summary)
	fmt.Fprintf(&b, "%s %s\n\n", c.chooser.Choose(d.CallToAction), c.opts.CallToAction)
	fmt.Fprintf(&b, "%s Full story: %s\n\n", c.chooser.Choose(d.Link), link)
	b.WriteString(strings.Join(dedupe(tags), " "))

	return strings.TrimSpace(b.String())
}

// Hashtags lowercases keywords, strips spaces and prefixes them with '#'.
func Hashtags(keywords []string) []string {
	tags := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		tag := strings.Join(strings.Fields(strings.ToLower(kw)), "")
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			continue
		}
		tags = append(tags, "#"+tag)
	}
	return dedupe(tags)
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0:0]
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok || tag == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
