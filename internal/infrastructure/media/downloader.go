package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"NewsPoster/internal/ports"
)

const defaultMaxBytes = 10 << 20

var (
	// ErrNotImage is returned when the downloaded payload is not an image.
	ErrNotImage = errors.New("payload is not an image")
	// ErrTooLarge is returned when the payload exceeds the configured limit.
	ErrTooLarge = errors.New("image exceeds size limit")
)

// Downloader stores article lead images as <dir>/<id><ext>.
type Downloader struct {
	client   *http.Client
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

var _ ports.ImageDownloader = (*Downloader)(nil)

// NewDownloader prepares a downloader writing into dir.
func NewDownloader(client *http.Client, dir string, maxBytes int64, log *slog.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Downloader{client: client, dir: dir, maxBytes: maxBytes, logger: log}
}

// DownloadImage fetches imageURL and returns the saved file path.
func (d *Downloader) DownloadImage(ctx context.Context, imageURL, id string) (string, error) {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid image id %q", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image %s: %s", imageURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, imageURL)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s is %s", ErrNotImage, imageURL, mime.String())
	}

	ext := mime.Extension()
	if ext == "" {
		ext = ".jpg"
	}

	path := filepath.Join(d.dir, id+ext)
	if err := writeFile(path, data); err != nil {
		return "", err
	}

	d.logger.Debug("image saved", "url", imageURL, "path", path, "mime", mime.String(), "bytes", len(data))
	return path, nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".img-*")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename image: %w", err)
	}
	return nil
}
