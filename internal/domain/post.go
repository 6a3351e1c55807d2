package domain

import "time"

// Listing is a single entry discovered on a source listing page.
type Listing struct {
	Title string
	Link  string
}

// Post is the record that flows through scrape, compose, review and publish.
// The JSON layout is the on-disk store format.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Link        string  `json:"link"`
	ImagePath   *string `json:"image_path"`
	PostContent string  `json:"post_content,omitempty"`
	Approved    bool    `json:"approved"`
	Posted      bool    `json:"posted"`
}

// Stage names the lifecycle position of a record.
type Stage string

const (
	StageScraped  Stage = "scraped"
	StageDraft    Stage = "draft"
	StageApproved Stage = "approved"
	StagePosted   Stage = "posted"
)

// Stage derives the lifecycle position from the record flags.
func (p Post) Stage() Stage {
	switch {
	case p.Posted:
		return StagePosted
	case p.Approved:
		return StageApproved
	case p.PostContent != "":
		return StageDraft
	default:
		return StageScraped
	}
}

// IsDraft reports whether the record has composed content and is still unposted.
func (p Post) IsDraft() bool {
	return p.PostContent != "" && !p.Posted
}

// Publishable reports whether the publisher may pick this record.
func (p Post) Publishable() bool {
	return p.Approved && !p.Posted && p.PostContent != ""
}

// Image returns the local image path or an empty string.
func (p Post) Image() string {
	if p.ImagePath == nil {
		return ""
	}
	return *p.ImagePath
}

// SetImage stores path, clearing the field when path is empty.
func (p *Post) SetImage(path string) {
	if path == "" {
		p.ImagePath = nil
		return
	}
	p.ImagePath = &path
}

// SummaryLength bounds the generated summary, measured in model tokens.
type SummaryLength struct {
	Min int
	Max int
}

// RunStats aggregates one pipeline pass.
type RunStats struct {
	Scraped        int
	ScrapeSkipped  int
	ScrapeErrors   int
	Composed       int
	ComposeSkipped int
	ComposeErrors  int
	Published      bool
}

// Publication is one entry of the publish history.
type Publication struct {
	Link        string
	PostID      string
	Title       string
	Platform    string
	PublishedAt time.Time
}
