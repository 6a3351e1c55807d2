package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports/mocks"
)

type fakeRunLock struct {
	busy     bool
	err      error
	locked   int
	unlocked int
}

func (f *fakeRunLock) TryLock() (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.busy {
		return false, nil
	}
	f.locked++
	return true, nil
}

func (f *fakeRunLock) Unlock() error {
	f.unlocked++
	return nil
}

func TestPipelineRunsEveryStageAfterFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockArticleSource(ctrl)
	social := mocks.NewMockSocialPublisher(ctrl)
	c, summarizer, keywords := newTestComposer(t)

	store := newMemStore(
		domain.Post{ID: "1", Title: "Pending", Body: "body", Link: "https://x/1"},
		domain.Post{ID: "2", Title: "Approved", Link: "https://x/2", PostContent: "ready", Approved: true},
	)

	src.EXPECT().FetchListing(gomock.Any(), "https://a").Return(nil, errors.New("listing down"))
	src.EXPECT().FetchListing(gomock.Any(), "https://b").Return(nil, nil)
	summarizer.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("Summary.", nil)
	keywords.EXPECT().ExtractKeywords(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"x"}, nil)
	social.EXPECT().Publish(gomock.Any(), "ready", "").Return(nil)

	lock := &fakeRunLock{}
	p := NewPipeline(PipelineDeps{
		Sources:   []string{"https://a", "https://b"},
		Scraper:   NewScraper(src, nil, store, nil, nil),
		Composer:  NewComposeStage(c, store, nil, nil),
		Publisher: NewPublisher(social, store, nil, nil),
		RunLock:   lock,
	})

	stats, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing down")
	assert.Equal(t, 1, stats.Composed)
	assert.True(t, stats.Published)
	assert.Equal(t, 1, lock.locked)
	assert.Equal(t, 1, lock.unlocked)

	posts := store.snapshot()
	assert.NotEmpty(t, posts[0].PostContent)
	assert.True(t, posts[1].Posted)
}

func TestPipelineSkipsWhenRunLockBusy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	src := mocks.NewMockArticleSource(ctrl)
	store := newMemStore()

	p := NewPipeline(PipelineDeps{
		Sources: []string{"https://a"},
		Scraper: NewScraper(src, nil, store, nil, nil),
		RunLock: &fakeRunLock{busy: true},
	})

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunStats{}, stats)

	_, err = NewPipeline(PipelineDeps{RunLock: &fakeRunLock{err: errors.New("permission denied")}}).Run(context.Background())
	require.Error(t, err)
}

func TestPipelineWithoutPublisher(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Post{ID: "1", Link: "https://x/1", PostContent: "ready", Approved: true})
	stats, err := NewPipeline(PipelineDeps{}).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Published)
	assert.False(t, store.snapshot()[0].Posted)
}

func TestSchedulerStartsDriverWithPipeline(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	driver := mocks.NewMockScheduler(ctrl)
	social := mocks.NewMockSocialPublisher(ctrl)
	store := newMemStore(domain.Post{ID: "1", Link: "https://x/1", PostContent: "ready", Approved: true})

	social.EXPECT().Publish(gomock.Any(), "ready", "").Return(nil)
	driver.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job func(time.Time)) error {
		job(time.Now())
		return nil
	})
	driver.EXPECT().Stop(gomock.Any()).Return(nil)

	p := NewPipeline(PipelineDeps{Publisher: NewPublisher(social, store, nil, nil)})
	s := NewScheduler(driver, p, nil)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, store.snapshot()[0].Posted)
}
