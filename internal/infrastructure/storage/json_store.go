package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

var (
	// ErrCorrupt reports a store file that cannot be decoded as a post array.
	ErrCorrupt = errors.New("post store is corrupt")
	// ErrNoChange may be returned from an Update callback to skip the write.
	ErrNoChange = ports.ErrNoChange
)

const defaultRetryDelay = 50 * time.Millisecond

// JSONStore persists posts in a single pretty-printed JSON file guarded by a
// cooperative file lock shared by every process that touches the store.
type JSONStore struct {
	path       string
	lockPath   string
	retryDelay time.Duration
	recover    bool
	logger     *slog.Logger
	now        func() time.Time
}

var _ ports.PostStore = (*JSONStore)(nil)

// NewJSONStore wires the store at path; the lock file lives next to it.
func NewJSONStore(path string, log *slog.Logger) *JSONStore {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &JSONStore{
		path:       path,
		lockPath:   path + ".lock",
		retryDelay: defaultRetryDelay,
		logger:     log,
		now:        time.Now,
	}
}

// WithRecovery returns a store view that treats a corrupt file as empty. The
// corrupt bytes are copied aside before the next write replaces them.
func (s *JSONStore) WithRecovery() *JSONStore {
	clone := *s
	clone.recover = true
	return &clone
}

// Path returns the store file location.
func (s *JSONStore) Path() string {
	return s.path
}

// View runs fn over the current records while holding the store lock.
func (s *JSONStore) View(ctx context.Context, fn func(posts []domain.Post) error) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	posts, err := s.load()
	if err != nil {
		return err
	}
	return fn(posts)
}

// Update runs one read-modify-write cycle under the store lock. The records
// returned by fn replace the whole file; returning ErrNoChange skips the write.
func (s *JSONStore) Update(ctx context.Context, fn func(posts []domain.Post) ([]domain.Post, error)) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	posts, err := s.load()
	if err != nil {
		return err
	}

	updated, err := fn(posts)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.save(updated)
}

func (s *JSONStore) lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	fl := flock.New(s.lockPath)
	locked, err := fl.TryLockContext(ctx, s.retryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire store lock: %s is busy", s.lockPath)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("release store lock", "path", s.lockPath, "error", err)
		}
	}, nil
}

func (s *JSONStore) load() ([]domain.Post, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Post{}, nil
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		if !s.recover {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
		}
		if s.quarantine(raw, err) {
			if err := s.save([]domain.Post{}); err != nil {
				s.logger.Error("reset corrupt store", "path", s.path, "error", err)
			}
		}
		return []domain.Post{}, nil
	}

	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// quarantine copies corrupt content aside. The store is only reset once the
// copy exists.
func (s *JSONStore) quarantine(raw []byte, cause error) bool {
	target := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.WriteFile(target, raw, 0o644); err != nil {
		s.logger.Error("store is corrupt and could not be copied aside", "path", s.path, "cause", cause, "error", err)
		return false
	}
	s.logger.Warn("store is corrupt, starting from empty", "path", s.path, "backup", target, "cause", cause)
	return true
}

func (s *JSONStore) save(posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}

	return nil
}
