package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// memStore mimics the JSON store transaction contract in memory.
type memStore struct {
	mu     sync.Mutex
	posts  []domain.Post
	writes int
}

func newMemStore(posts ...domain.Post) *memStore {
	return &memStore{posts: posts}
}

func (m *memStore) View(_ context.Context, fn func([]domain.Post) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(slices.Clone(m.posts))
}

func (m *memStore) Update(_ context.Context, fn func([]domain.Post) ([]domain.Post, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated, err := fn(slices.Clone(m.posts))
	if errors.Is(err, ports.ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	m.posts = updated
	m.writes++
	return nil
}

// insert simulates another process writing between transactions.
func (m *memStore) insert(p domain.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, p)
}

func (m *memStore) snapshot() []domain.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.posts)
}

func strPtr(s string) *string { return &s }

func assertInvariants(t interface {
	Errorf(string, ...any)
	Helper()
}, posts []domain.Post) {
	t.Helper()
	seen := map[string]bool{}
	for _, p := range posts {
		if seen[p.Link] {
			t.Errorf("duplicate link %s", p.Link)
		}
		seen[p.Link] = true
		if p.Posted && !p.Approved {
			t.Errorf("record %s posted without approval", p.Link)
		}
	}
}
