package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsPoster/internal/domain"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSONStore(filepath.Join(t.TempDir(), "posts", "generated_posts.json"), nil)
}

func samplePosts() []domain.Post {
	img := "static/article_images/a.jpg"
	return []domain.Post{
		{ID: "a", Title: "First <b>", Body: "body a", Link: "https://x/a", ImagePath: &img, PostContent: "🚨 BREAKING: First", Approved: true, Posted: true},
		{ID: "b", Title: "Second", Body: "body b", Link: "https://x/b", PostContent: "📰 LATEST: Second"},
		{ID: "c", Title: "Third", Body: "body c", Link: "https://x/c"},
	}
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	err := store.View(context.Background(), func(posts []domain.Post) error {
		assert.Empty(t, posts)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONStoreRoundTripPreservesBytes(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.save(samplePosts()))

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	loaded, err := store.load()
	require.NoError(t, err)
	assert.Equal(t, samplePosts(), loaded)

	require.NoError(t, store.save(loaded))
	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Contains(t, string(after), `"title": "First <b>"`)
	assert.Contains(t, string(after), `"image_path": null`)
	assert.Contains(t, string(after), "🚨")
}

func TestJSONStoreUpdatePersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	err := store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		return append(posts, samplePosts()...), nil
	})
	require.NoError(t, err)

	err = store.View(ctx, func(posts []domain.Post) error {
		require.Len(t, posts, 3)
		assert.Equal(t, "b", posts[1].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONStoreUpdateErrorLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.save(samplePosts()))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		posts[1].Approved = true
		return posts, boom
	})
	require.ErrorIs(t, err, boom)

	err = store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		return nil, ErrNoChange
	})
	require.NoError(t, err)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestJSONStoreCorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"not": "a list"`), 0o644))

	err := store.View(ctx, func([]domain.Post) error { return nil })
	require.ErrorIs(t, err, ErrCorrupt)

	recovering := store.WithRecovery()
	recovering.now = func() time.Time { return time.Unix(1700000000, 0) }
	err = recovering.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
		assert.Empty(t, posts)
		return append(posts, domain.Post{ID: "n", Link: "https://x/n"}), nil
	})
	require.NoError(t, err)

	backup, err := os.ReadFile(store.Path() + ".corrupt-1700000000")
	require.NoError(t, err)
	assert.Equal(t, `{"not": "a list"`, string(backup))

	err = store.View(ctx, func(posts []domain.Post) error {
		require.Len(t, posts, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONStoreRecoveryResetsCorruptFileOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`[{"id": `), 0o644))

	clock := time.Unix(1700000000, 0)
	recovering := store.WithRecovery()
	recovering.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for range 3 {
		err := recovering.View(ctx, func(posts []domain.Post) error {
			assert.Empty(t, posts)
			return nil
		})
		require.NoError(t, err)
	}

	backups, err := filepath.Glob(store.Path() + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	err = store.View(ctx, func(posts []domain.Post) error {
		assert.Empty(t, posts)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONStoreConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	const writers = 12
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Update(ctx, func(posts []domain.Post) ([]domain.Post, error) {
				return append(posts, domain.Post{ID: fmt.Sprint(i), Link: fmt.Sprintf("https://x/%d", i)}), nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	err := store.View(ctx, func(posts []domain.Post) error {
		assert.Len(t, posts, writers)
		return nil
	})
	require.NoError(t, err)
}

func TestJSONStoreLockHonoursContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- store.View(context.Background(), func([]domain.Post) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := store.View(ctx, func([]domain.Post) error { return nil })
	require.Error(t, err)

	close(release)
	require.NoError(t, <-done)
}
