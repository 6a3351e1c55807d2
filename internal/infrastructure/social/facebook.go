package social

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"NewsPoster/internal/config"
	"NewsPoster/internal/ports"
)

// FacebookPublisher posts to a page through the Graph API.
type FacebookPublisher struct {
	client *resty.Client
	pageID string
	token  string
	logger *slog.Logger
}

var _ ports.SocialPublisher = (*FacebookPublisher)(nil)

type graphResult struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// NewFacebookPublisher wires a resty client against cfg.GraphURL.
func NewFacebookPublisher(cfg config.FacebookConfig, timeout time.Duration, httpClient *http.Client, log *slog.Logger) *FacebookPublisher {
	var client *resty.Client
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	} else {
		client = resty.New()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	client.SetBaseURL(cfg.GraphURL).SetTimeout(timeout)

	pageID := cfg.PageID
	if pageID == "" {
		pageID = "me"
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &FacebookPublisher{client: client, pageID: pageID, token: cfg.Token, logger: log}
}

// Publish uploads message with the photo at imagePath, or posts text only when
// imagePath is empty.
func (p *FacebookPublisher) Publish(ctx context.Context, message, imagePath string) error {
	if p.token == "" {
		return ErrMissingCredential
	}

	var (
		result graphResult
		apiErr graphError
	)
	req := p.client.R().
		SetContext(ctx).
		SetPathParam("page", p.pageID).
		SetResult(&result).
		SetError(&apiErr)

	var (
		resp *resty.Response
		err  error
	)
	if imagePath != "" {
		if err := checkImage(imagePath); err != nil {
			return err
		}
		resp, err = req.
			SetFile("source", imagePath).
			SetMultipartFormData(map[string]string{
				"message":      message,
				"access_token": p.token,
			}).
			Post("/{page}/photos")
	} else {
		resp, err = req.
			SetFormData(map[string]string{
				"message":      message,
				"access_token": p.token,
			}).
			Post("/{page}/feed")
	}
	if err != nil {
		return fmt.Errorf("graph api request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return fmt.Errorf("graph api %s: %s (code %d)", resp.Status(), apiErr.Error.Message, apiErr.Error.Code)
		}
		return fmt.Errorf("graph api %s", resp.Status())
	}

	p.logger.Info("facebook post created", "id", result.ID, "post_id", result.PostID, "photo", imagePath != "")
	return nil
}
