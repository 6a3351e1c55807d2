package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsPoster/internal/config"
)

type botServer struct {
	mu       sync.Mutex
	methods  []string
	captions []string

	getMeFailures int
	failMethod    string
}

func (b *botServer) calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, m := range b.methods {
		if m == method {
			n++
		}
	}
	return n
}

func (b *botServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		b.mu.Lock()
		b.methods = append(b.methods, method)
		failGetMe := method == "getMe" && b.getMeFailures > 0
		if failGetMe {
			b.getMeFailures--
		}
		fail := method == b.failMethod
		b.mu.Unlock()

		if failGetMe {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 5"}`))
			return
		}

		switch method {
		case "getMe":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"poster","username":"poster_bot"}}`))
		case "sendPhoto":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			b.mu.Lock()
			b.captions = append(b.captions, r.FormValue("caption"))
			b.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1,"chat":{"id":42,"type":"channel"}}}`))
		case "sendMessage":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":8,"date":1,"chat":{"id":42,"type":"channel"}}}`))
		default:
			_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}
}

func newTestTelegram(t *testing.T, b *botServer) *TelegramPublisher {
	t.Helper()
	server := httptest.NewServer(b.handler(t))
	t.Cleanup(server.Close)

	return NewTelegramPublisher(config.TelegramConfig{
		BotToken: "123:abc",
		ChatID:   42,
		Endpoint: server.URL + "/bot%s/%s",
	}, server.Client(), nil)
}

func TestTelegramPublishPhotoWithCaption(t *testing.T) {
	t.Parallel()

	b := &botServer{}
	pub := newTestTelegram(t, b)

	require.NoError(t, pub.Publish(context.Background(), "short post", writeImage(t)))
	assert.Equal(t, []string{"getMe", "sendPhoto"}, b.methods)
	assert.Equal(t, []string{"short post"}, b.captions)
}

func TestTelegramPublishLongMessageGoesFirst(t *testing.T) {
	t.Parallel()

	b := &botServer{}
	pub := newTestTelegram(t, b)

	require.NoError(t, pub.Publish(context.Background(), strings.Repeat("é", captionLimit+1), writeImage(t)))
	assert.Equal(t, []string{"getMe", "sendMessage", "sendPhoto"}, b.methods)
	assert.Equal(t, []string{""}, b.captions)
}

func TestTelegramLongMessageFailureSendsNoPhoto(t *testing.T) {
	t.Parallel()

	b := &botServer{failMethod: "sendMessage"}
	pub := newTestTelegram(t, b)
	message := strings.Repeat("a", 1500)
	image := writeImage(t)

	for range 2 {
		require.Error(t, pub.Publish(context.Background(), message, image))
	}
	assert.Zero(t, b.calls("sendPhoto"), "a failed post must not leave photos behind")
	assert.Equal(t, 2, b.calls("sendMessage"))
}

func TestTelegramPhotoFailureAfterLongMessageCountsAsPublished(t *testing.T) {
	t.Parallel()

	b := &botServer{failMethod: "sendPhoto"}
	pub := newTestTelegram(t, b)

	require.NoError(t, pub.Publish(context.Background(), strings.Repeat("a", 1500), writeImage(t)))
	assert.Equal(t, 1, b.calls("sendMessage"))
	assert.Equal(t, 1, b.calls("sendPhoto"))
}

func TestTelegramAuthenticatesOnFirstPublish(t *testing.T) {
	t.Parallel()

	b := &botServer{getMeFailures: 1}
	pub := newTestTelegram(t, b)
	assert.Empty(t, b.methods, "constructor must not call the API")

	err := pub.Publish(context.Background(), "text", "")
	require.ErrorContains(t, err, "telegram bot")
	assert.Zero(t, b.calls("sendMessage"))

	require.NoError(t, pub.Publish(context.Background(), "text", ""))
	require.NoError(t, pub.Publish(context.Background(), "again", ""))
	assert.Equal(t, 2, b.calls("getMe"))
	assert.Equal(t, 2, b.calls("sendMessage"))
}

func TestTelegramPublishTextAndMissingImage(t *testing.T) {
	t.Parallel()

	b := &botServer{}
	pub := newTestTelegram(t, b)

	require.NoError(t, pub.Publish(context.Background(), "text only", ""))
	require.ErrorIs(t, pub.Publish(context.Background(), "x", "/nonexistent/image.jpg"), ErrMissingImage)
	assert.Equal(t, []string{"getMe", "sendMessage"}, b.methods)
}
