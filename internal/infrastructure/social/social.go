package social

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"NewsPoster/internal/config"
	"NewsPoster/internal/ports"
)

var (
	// ErrMissingImage is returned when a post references an image file that is gone.
	ErrMissingImage = errors.New("image file missing")
	// ErrMissingCredential means the platform has no token configured.
	ErrMissingCredential = errors.New("publisher credential missing")
)

// New builds the publisher selected by cfg.Platform.
func New(cfg config.PublisherConfig, client *http.Client, log *slog.Logger) (ports.SocialPublisher, error) {
	switch cfg.Platform {
	case "", "facebook":
		if cfg.Facebook.Token == "" {
			return nil, fmt.Errorf("facebook: %w", ErrMissingCredential)
		}
		return NewFacebookPublisher(cfg.Facebook, cfg.Timeout, client, log), nil
	case "telegram":
		if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
			return nil, fmt.Errorf("telegram: %w", ErrMissingCredential)
		}
		return NewTelegramPublisher(cfg.Telegram, client, log), nil
	default:
		return nil, fmt.Errorf("unknown publisher platform %q", cfg.Platform)
	}
}

func checkImage(imagePath string) error {
	info, err := os.Stat(imagePath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingImage, imagePath)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissingImage, imagePath)
	}
	return nil
}
