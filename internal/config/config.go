package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "NEWSPOSTER_CONFIG"
	logLevelEnv         = "LOG_LEVEL"
	storePathEnv        = "POSTS_JSON_PATH"
	imageDirEnv         = "IMAGE_DIR"
	intervalEnv         = "PIPELINE_INTERVAL"
	composerBackendEnv  = "COMPOSER_BACKEND"
	ollamaHostEnv       = "OLLAMA_HOST"
	mlEndpointEnv       = "ML_INFERENCE_URL"
	mlAPIKeyEnv         = "ML_API_KEY"
	chatGPTAPIKeyEnv    = "CHATGPT_API_KEY"
	chatGPTModelEnv     = "CHATGPT_MODEL"
	platformEnv         = "PUBLISHER_PLATFORM"
	facebookTokenEnv    = "FACEBOOK_PAGE_ACCESS_TOKEN"
	facebookPageEnv     = "FACEBOOK_PAGE_ID"
	telegramTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv   = "TELEGRAM_CHAT_ID"
	webAddrEnv          = "WEB_ADDR"
	webUsernameEnv      = "WEB_USERNAME"
	webPasswordEnv      = "WEB_PASSWORD"
	webJWTSecretEnv     = "WEB_JWT_SECRET"
	metricsAddrEnv      = "METRICS_ADDR"
	historyPathEnv      = "HISTORY_DB_PATH"
	defaultSecretFile   = "/run/secrets/facebook_token.txt"
	defaultStorePath    = "posts/generated_posts.json"
	defaultImageDir     = "static/article_images"
	defaultHistoryPath  = "posts/publish_history.db"
	defaultPipelineTick = time.Minute
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Store     StoreConfig     `yaml:"store"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Composer  ComposerConfig  `yaml:"composer"`
	Ollama    OllamaConfig    `yaml:"ollama"`
	ML        MLConfig        `yaml:"ml"`
	ChatGPT   ChatGPTConfig   `yaml:"chatgpt"`
	Publisher PublisherConfig `yaml:"publisher"`
	History   HistoryConfig   `yaml:"history"`
	Web       WebConfig       `yaml:"web"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Sites     []SiteConfig    `yaml:"sites"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig locates the shared post store and downloaded images.
type StoreConfig struct {
	Path     string `yaml:"path"`
	ImageDir string `yaml:"imageDir"`
}

// SchedulerConfig defines how often the pipeline runs.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ScraperConfig bounds outbound scraping traffic.
type ScraperConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	RetryMax          int           `yaml:"retryMax"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	UserAgent         string        `yaml:"userAgent"`
	MaxImageBytes     int64         `yaml:"maxImageBytes"`
}

// ComposerConfig drives summarization and post formatting.
type ComposerConfig struct {
	Backend       string   `yaml:"backend"`
	ContextWindow int      `yaml:"contextWindow"`
	Keywords      int      `yaml:"keywords"`
	Tags          []string `yaml:"tags"`
	CallToAction  string   `yaml:"callToAction"`
	Seed          int64    `yaml:"seed"`
}

// OllamaConfig describes the local model server.
type OllamaConfig struct {
	Host    string        `yaml:"host"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// MLConfig describes neural-service integration parameters.
type MLConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// PublisherConfig selects the social platform and its credentials.
type PublisherConfig struct {
	Platform string         `yaml:"platform"`
	Timeout  time.Duration  `yaml:"timeout"`
	Facebook FacebookConfig `yaml:"facebook"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// FacebookConfig holds Graph API settings. The token is usually supplied
// through the environment or a mounted secret file.
type FacebookConfig struct {
	GraphURL   string `yaml:"graphUrl"`
	PageID     string `yaml:"pageId"`
	Token      string `yaml:"-"`
	SecretFile string `yaml:"secretFile"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatId"`
	Endpoint string `yaml:"endpoint"`
}

// HistoryConfig locates the publish history database. An empty path
// disables it.
type HistoryConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// WebConfig configures the review gateway.
type WebConfig struct {
	Addr      string `yaml:"addr"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	JWTSecret string `yaml:"jwtSecret"`
}

// MetricsConfig exposes pipeline metrics when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// SiteConfig describes a single site with its scanner strategy.
type SiteConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	URL     string            `yaml:"url"`
	Options map[string]string `yaml:"options"`
}

// Load reads .env, YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: cannot read .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.loadSecrets()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Logging.Level, logLevelEnv)
	setString(&c.Store.Path, storePathEnv)
	setString(&c.Store.ImageDir, imageDirEnv)
	setString(&c.Composer.Backend, composerBackendEnv)
	setString(&c.Ollama.Host, ollamaHostEnv)
	setString(&c.ML.InferenceURL, mlEndpointEnv)
	setString(&c.ML.APIKey, mlAPIKeyEnv)
	setString(&c.ChatGPT.APIKey, chatGPTAPIKeyEnv)
	setString(&c.ChatGPT.Model, chatGPTModelEnv)
	setString(&c.Publisher.Platform, platformEnv)
	setString(&c.Publisher.Facebook.Token, facebookTokenEnv)
	setString(&c.Publisher.Facebook.PageID, facebookPageEnv)
	setString(&c.Publisher.Telegram.BotToken, telegramTokenEnv)
	setString(&c.Web.Addr, webAddrEnv)
	setString(&c.Web.Username, webUsernameEnv)
	setString(&c.Web.Password, webPasswordEnv)
	setString(&c.Web.JWTSecret, webJWTSecretEnv)
	setString(&c.Metrics.Addr, metricsAddrEnv)
	setString(&c.History.Path, historyPathEnv)

	if v := os.Getenv(intervalEnv); v != "" {
		if d, err := time.ParseDuration(v); err != nil {
			log.Printf("config: invalid %s %q: %v", intervalEnv, v, err)
		} else if d > 0 {
			c.Scheduler.Interval = d
		}
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err != nil {
			log.Printf("config: invalid %s %q: %v", telegramChatIDEnv, v, err)
		} else {
			c.Publisher.Telegram.ChatID = id
		}
	}
}

// loadSecrets reads the Graph API token from the secret file when the
// environment did not provide one.
func (c *Config) loadSecrets() {
	fb := &c.Publisher.Facebook
	if fb.Token != "" || fb.SecretFile == "" {
		return
	}

	raw, err := os.ReadFile(fb.SecretFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: cannot read secret %s: %v", fb.SecretFile, err)
		}
		return
	}
	fb.Token = strings.TrimSpace(string(raw))
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}
	if override.Store.ImageDir != "" {
		base.Store.ImageDir = override.Store.ImageDir
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Scraper.Timeout > 0 {
		base.Scraper.Timeout = override.Scraper.Timeout
	}
	if override.Scraper.RetryMax > 0 {
		base.Scraper.RetryMax = override.Scraper.RetryMax
	}
	if override.Scraper.RequestsPerSecond > 0 {
		base.Scraper.RequestsPerSecond = override.Scraper.RequestsPerSecond
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}
	if override.Scraper.MaxImageBytes > 0 {
		base.Scraper.MaxImageBytes = override.Scraper.MaxImageBytes
	}

	if override.Composer.Backend != "" {
		base.Composer.Backend = override.Composer.Backend
	}
	if override.Composer.ContextWindow > 0 {
		base.Composer.ContextWindow = override.Composer.ContextWindow
	}
	if override.Composer.Keywords > 0 {
		base.Composer.Keywords = override.Composer.Keywords
	}
	if len(override.Composer.Tags) > 0 {
		base.Composer.Tags = override.Composer.Tags
	}
	if override.Composer.CallToAction != "" {
		base.Composer.CallToAction = override.Composer.CallToAction
	}
	if override.Composer.Seed != 0 {
		base.Composer.Seed = override.Composer.Seed
	}

	if override.Ollama.Host != "" {
		base.Ollama.Host = override.Ollama.Host
	}
	if override.Ollama.Model != "" {
		base.Ollama.Model = override.Ollama.Model
	}
	if override.Ollama.Timeout > 0 {
		base.Ollama.Timeout = override.Ollama.Timeout
	}

	if override.ML.InferenceURL != "" {
		base.ML.InferenceURL = override.ML.InferenceURL
	}
	if override.ML.APIKey != "" {
		base.ML.APIKey = override.ML.APIKey
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.Publisher.Platform != "" {
		base.Publisher.Platform = override.Publisher.Platform
	}
	if override.Publisher.Timeout > 0 {
		base.Publisher.Timeout = override.Publisher.Timeout
	}
	if override.Publisher.Facebook.GraphURL != "" {
		base.Publisher.Facebook.GraphURL = override.Publisher.Facebook.GraphURL
	}
	if override.Publisher.Facebook.PageID != "" {
		base.Publisher.Facebook.PageID = override.Publisher.Facebook.PageID
	}
	if override.Publisher.Facebook.SecretFile != "" {
		base.Publisher.Facebook.SecretFile = override.Publisher.Facebook.SecretFile
	}
	if override.Publisher.Telegram.BotToken != "" {
		base.Publisher.Telegram.BotToken = override.Publisher.Telegram.BotToken
	}
	if override.Publisher.Telegram.ChatID != 0 {
		base.Publisher.Telegram.ChatID = override.Publisher.Telegram.ChatID
	}
	if override.Publisher.Telegram.Endpoint != "" {
		base.Publisher.Telegram.Endpoint = override.Publisher.Telegram.Endpoint
	}

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}
	if override.History.Disabled {
		base.History.Disabled = true
	}

	if override.Web.Addr != "" {
		base.Web.Addr = override.Web.Addr
	}
	if override.Web.Username != "" {
		base.Web.Username = override.Web.Username
	}
	if override.Web.Password != "" {
		base.Web.Password = override.Web.Password
	}
	if override.Web.JWTSecret != "" {
		base.Web.JWTSecret = override.Web.JWTSecret
	}

	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Store:     StoreConfig{Path: defaultStorePath, ImageDir: defaultImageDir},
		Scheduler: SchedulerConfig{Interval: defaultPipelineTick},
		Scraper: ScraperConfig{
			Timeout:           20 * time.Second,
			RetryMax:          2,
			RequestsPerSecond: 2,
			UserAgent:         "NewsPoster/1.0",
			MaxImageBytes:     10 << 20,
		},
		Composer: ComposerConfig{
			Backend:       "ollama",
			ContextWindow: 1022,
			Keywords:      5,
			Tags:          []string{"#TechNews", "#TheVerge", "#LatestTech"},
			CallToAction:  "What are your thoughts on this news? Share your thoughts below!",
		},
		Ollama: OllamaConfig{
			Host:    "http://127.0.0.1:11434",
			Model:   "llama3.2",
			Timeout: 2 * time.Minute,
		},
		ML: MLConfig{InferenceURL: "http://127.0.0.1:8000", APIKey: ""},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			APIKey:       "",
			SystemPrompt: "You summarize technology news articles for social media.",
		},
		Publisher: PublisherConfig{
			Platform: "facebook",
			Timeout:  30 * time.Second,
			Facebook: FacebookConfig{
				GraphURL:   "https://graph.facebook.com/v19.0",
				PageID:     "me",
				SecretFile: defaultSecretFile,
			},
		},
		History: HistoryConfig{Path: defaultHistoryPath},
		Web:     WebConfig{Addr: ":5000"},
		Sites: []SiteConfig{
			{
				Name:    "theverge-tech",
				Scanner: "verge",
				URL:     "https://www.theverge.com/tech",
			},
		},
	}
}
