package social

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"NewsPoster/internal/config"
	"NewsPoster/internal/ports"
)

const captionLimit = 1024

// TelegramPublisher sends posts to a chat or channel via bot API. The bot
// authenticates on first use so an unreachable API only fails publishing.
type TelegramPublisher struct {
	token    string
	endpoint string
	client   *http.Client
	chatID   int64
	logger   *slog.Logger

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

var _ ports.SocialPublisher = (*TelegramPublisher)(nil)

// NewTelegramPublisher prepares the bot. An empty endpoint uses the public
// Bot API.
func NewTelegramPublisher(cfg config.TelegramConfig, client *http.Client, log *slog.Logger) *TelegramPublisher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &TelegramPublisher{
		token:    cfg.BotToken,
		endpoint: endpoint,
		client:   client,
		chatID:   cfg.ChatID,
		logger:   log,
	}
}

func (p *TelegramPublisher) api() (*tgbotapi.BotAPI, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bot != nil {
		return p.bot, nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(p.token, p.endpoint, p.client)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	p.bot = bot
	return bot, nil
}

// Publish sends message with the photo at imagePath. A message longer than
// the caption limit goes out first as text and the photo follows without a
// caption; once the text is out, a failed photo is only logged.
func (p *TelegramPublisher) Publish(ctx context.Context, message, imagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if imagePath != "" {
		if err := checkImage(imagePath); err != nil {
			return err
		}
	}

	bot, err := p.api()
	if err != nil {
		return err
	}

	if imagePath == "" {
		return p.sendText(bot, message)
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(imagePath))
	if len([]rune(message)) <= captionLimit {
		photo.Caption = message
		return p.sendPhoto(bot, photo)
	}

	if err := p.sendText(bot, message); err != nil {
		return err
	}
	if err := p.sendPhoto(bot, photo); err != nil {
		p.logger.Warn("telegram photo after long message failed", "chat_id", p.chatID, "error", err)
	}
	return nil
}

func (p *TelegramPublisher) sendPhoto(bot *tgbotapi.BotAPI, photo tgbotapi.PhotoConfig) error {
	sent, err := bot.Send(photo)
	if err != nil {
		return fmt.Errorf("telegram send photo: %w", err)
	}
	p.logger.Info("telegram photo sent", "message_id", sent.MessageID, "chat_id", p.chatID)
	return nil
}

func (p *TelegramPublisher) sendText(bot *tgbotapi.BotAPI, message string) error {
	sent, err := bot.Send(tgbotapi.NewMessage(p.chatID, message))
	if err != nil {
		return fmt.Errorf("telegram send message: %w", err)
	}
	p.logger.Info("telegram message sent", "message_id", sent.MessageID, "chat_id", p.chatID)
	return nil
}
