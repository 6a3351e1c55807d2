package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"NewsPoster/internal/compose"
	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports/mocks"
)

func newTestComposer(t *testing.T) (*compose.Composer, *mocks.MockSummarizer, *mocks.MockKeywordExtractor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	summarizer := mocks.NewMockSummarizer(ctrl)
	keywords := mocks.NewMockKeywordExtractor(ctrl)
	c := compose.New(compose.Deps{
		Summarizer: summarizer,
		Keywords:   keywords,
		Chooser:    compose.NewRandomChooser(7),
	}, compose.Options{Tags: []string{"#TechNews"}})
	return c, summarizer, keywords
}

func TestComposeDraftsFillsPendingRecords(t *testing.T) {
	t.Parallel()

	store := newMemStore(
		domain.Post{ID: "1", Title: "Done", Body: "b", Link: "https://x/1", PostContent: "kept", Approved: true},
		domain.Post{ID: "2", Title: "Fresh", Body: "fresh body", Link: "https://x/2"},
		domain.Post{ID: "3", Title: "Fails", Body: "bad body", Link: "https://x/3"},
		domain.Post{ID: "4", Title: "Posted", Body: "b", Link: "https://x/4", PostContent: "old", Approved: true, Posted: true},
	)
	c, summarizer, keywords := newTestComposer(t)

	summarizer.EXPECT().Summarize(gomock.Any(), "fresh body", gomock.Any()).Return("Fresh summary.", nil)
	summarizer.EXPECT().Summarize(gomock.Any(), "bad body", gomock.Any()).Return("", errors.New("oom"))
	keywords.EXPECT().ExtractKeywords(gomock.Any(), "Fresh summary.", 5).Return([]string{"gadgets"}, nil)

	stage := NewComposeStage(c, store, nil, nil)
	res, err := stage.ComposeDrafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ComposeResult{Composed: 1, Failed: 1}, res)

	posts := store.snapshot()
	assert.Equal(t, "kept", posts[0].PostContent)
	assert.True(t, posts[0].Approved)

	assert.Contains(t, posts[1].PostContent, "Fresh summary.")
	assert.Contains(t, posts[1].PostContent, "Full story: https://x/2")
	assert.Contains(t, posts[1].PostContent, "#TechNews #gadgets")
	assert.False(t, posts[1].Approved)
	assert.False(t, posts[1].Posted)

	assert.Empty(t, posts[2].PostContent)
	assert.Equal(t, "old", posts[3].PostContent)
	assertInvariants(t, posts)
}

func TestComposeDraftsIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Post{ID: "1", Title: "T", Body: "body", Link: "https://x/1"})
	c, summarizer, keywords := newTestComposer(t)

	summarizer.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).Return("S.", nil).Times(1)
	keywords.EXPECT().ExtractKeywords(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	stage := NewComposeStage(c, store, nil, nil)
	_, err := stage.ComposeDrafts(context.Background())
	require.NoError(t, err)
	first := store.snapshot()

	res, err := stage.ComposeDrafts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Composed)
	assert.Equal(t, first, store.snapshot())
	assert.Equal(t, 1, store.writes)
}

func TestComposeDraftsKeepsConcurrentApproval(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Post{ID: "1", Title: "T", Body: "body", Link: "https://x/1"})
	c, summarizer, keywords := newTestComposer(t)

	summarizer.EXPECT().Summarize(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, domain.SummaryLength) (string, error) {
			// another composer finished first and a reviewer approved it
			_ = store.Update(context.Background(), func(posts []domain.Post) ([]domain.Post, error) {
				posts[0].PostContent = "theirs"
				posts[0].Approved = true
				return posts, nil
			})
			return "mine", nil
		})
	keywords.EXPECT().ExtractKeywords(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := NewComposeStage(c, store, nil, nil).ComposeDrafts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Composed)

	posts := store.snapshot()
	assert.Equal(t, "theirs", posts[0].PostContent)
	assert.True(t, posts[0].Approved)
}

func TestComposeDraftsCountsSkippedLinks(t *testing.T) {
	t.Parallel()

	store := newMemStore(
		domain.Post{ID: "1", Title: "Done", Body: "b", Link: "https://x/1", PostContent: "kept"},
		domain.Post{ID: "2", Title: "Done again", Body: "b", Link: "https://x/1"},
		domain.Post{ID: "3", Title: "New", Body: "new body", Link: "https://x/3"},
		domain.Post{ID: "4", Title: "New twice", Body: "new body", Link: "https://x/3"},
	)
	c, summarizer, keywords := newTestComposer(t)

	summarizer.EXPECT().Summarize(gomock.Any(), "new body", gomock.Any()).Return("S.", nil).Times(1)
	keywords.EXPECT().ExtractKeywords(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := NewComposeStage(c, store, nil, nil).ComposeDrafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ComposeResult{Composed: 1, Skipped: 2}, res)

	posts := store.snapshot()
	assert.Empty(t, posts[1].PostContent)
	assert.NotEmpty(t, posts[2].PostContent)
	assert.Empty(t, posts[3].PostContent)
}
