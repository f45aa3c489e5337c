package wrapped_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/mocks"
	"github.com/davidbz/ember/internal/provider/wrapped"
	"github.com/davidbz/ember/internal/upstream"
	"github.com/davidbz/ember/internal/workerpool"
)

// stubCaller returns a fixed document.
type stubCaller struct {
	doc   []byte
	err   error
	calls int32
	body  []byte
}

func (s *stubCaller) Call(_ context.Context, _ string, body []byte, _ http.Header) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	s.body = body
	return s.doc, s.err
}

func testDescriptor(url string) *domain.ProviderDescriptor {
	return &domain.ProviderDescriptor{
		ID:         "puter",
		URL:        url,
		Credential: "token",
		Kind:       domain.AdapterWrappedBuffered,
	}
}

func testRequest() *domain.CompletionRequest {
	return domain.ApplyPolicy(&domain.CompletionRequest{
		Model:       "gpt-4o-mini",
		Messages:    []domain.Message{{Role: "user", Content: "Hello"}},
		MaxTokens:   100,
		Temperature: 0.7,
	})
}

func drain(t *testing.T, reader domain.ChunkReader) []domain.Chunk {
	t.Helper()

	var chunks []domain.Chunk
	for {
		chunk, err := reader.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return chunks
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}
}

func TestAdapter_Transform(t *testing.T) {
	adapter := wrapped.NewAdapter(nil, nil, nil, 0)

	t.Run("should wrap canonical request in envelope", func(t *testing.T) {
		req := testRequest()

		payload, err := adapter.Transform(testDescriptor("http://x"), req)
		require.NoError(t, err)

		var env struct {
			Interface string `json:"interface"`
			Driver    string `json:"driver"`
			Method    string `json:"method"`
			Args      struct {
				domain.CompletionRequest
				TestMode *bool `json:"test_mode"`
			} `json:"args"`
		}
		require.NoError(t, json.Unmarshal(payload.Body, &env))

		require.Equal(t, wrapped.DefaultInterface, env.Interface)
		require.Equal(t, wrapped.DefaultDriver, env.Driver)
		require.Equal(t, wrapped.DefaultMethod, env.Method)
		require.Equal(t, *req, env.Args.CompletionRequest)
		require.NotNil(t, env.Args.TestMode)
		require.False(t, *env.Args.TestMode)
		require.Equal(t, "Bearer token", payload.Headers.Get("Authorization"))
	})

	t.Run("should use descriptor envelope metadata", func(t *testing.T) {
		desc := testDescriptor("http://x")
		desc.Envelope = domain.Envelope{Interface: "chat", Driver: "claude", Method: "run"}

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		var env map[string]any
		require.NoError(t, json.Unmarshal(payload.Body, &env))
		require.Equal(t, "chat", env["interface"])
		require.Equal(t, "claude", env["driver"])
		require.Equal(t, "run", env["method"])
	})

	t.Run("should return error when request is nil", func(t *testing.T) {
		_, err := adapter.Transform(testDescriptor("http://x"), nil)
		require.Error(t, err)
	})
}

func TestAdapter_Invoke(t *testing.T) {
	pool := workerpool.New(&workerpool.Config{Size: 2})

	t.Run("should synthesize delta finish and done", func(t *testing.T) {
		caller := &stubCaller{doc: []byte(`[{"type":"text","text":"A"},{"type":"other"},{"type":"text","text":"B"}]`)}
		adapter := wrapped.NewAdapter(caller, pool, nil, 0)
		desc := testDescriptor("http://x")

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.NoError(t, err)
		defer reader.Close()

		chunks := drain(t, reader)
		require.Len(t, chunks, 3)

		require.Equal(t, domain.ChunkDelta, chunks[0].Kind)
		require.Equal(t, "AB", chunks[0].Text)
		require.Equal(t, "gpt-4o-mini", chunks[0].Model)
		require.NotEmpty(t, chunks[0].ID)

		require.Equal(t, domain.ChunkFinish, chunks[1].Kind)
		require.Equal(t, "stop", chunks[1].Reason)
		require.Equal(t, chunks[0].ID, chunks[1].ID)

		require.Equal(t, domain.ChunkDone, chunks[2].Kind)
		require.Equal(t, payload.Body, caller.body)
	})

	t.Run("should emit empty delta for undecodable document", func(t *testing.T) {
		caller := &stubCaller{doc: []byte("not a document")}
		adapter := wrapped.NewAdapter(caller, pool, nil, 0)
		desc := testDescriptor("http://x")

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.NoError(t, err)

		chunks := drain(t, reader)
		require.Len(t, chunks, 3)
		require.Empty(t, chunks[0].Text)
		require.Equal(t, domain.ChunkDone, chunks[2].Kind)
	})

	t.Run("should surface upstream status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer server.Close()

		adapter := wrapped.NewAdapter(upstream.NewInvoker(nil), pool, nil, 0)
		desc := testDescriptor(server.URL)

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.Nil(t, reader)

		var statusErr *domain.UpstreamStatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, "boom", statusErr.Body)
	})

	t.Run("should serve cached text without calling upstream", func(t *testing.T) {
		cache := mocks.NewMockResponseCache(t)
		caller := &stubCaller{}
		adapter := wrapped.NewAdapter(caller, pool, cache, time.Hour)
		desc := testDescriptor("http://x")

		cache.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return("cached", true, nil)

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.NoError(t, err)

		chunks := drain(t, reader)
		require.Equal(t, "cached", chunks[0].Text)
		require.Zero(t, atomic.LoadInt32(&caller.calls))
	})

	t.Run("should store extracted text on miss", func(t *testing.T) {
		cache := mocks.NewMockResponseCache(t)
		caller := &stubCaller{doc: []byte(`[{"type":"text","text":"fresh"}]`)}
		adapter := wrapped.NewAdapter(caller, pool, cache, time.Hour)
		desc := testDescriptor("http://x")

		cache.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return("", false, nil)
		cache.EXPECT().Set(mock.Anything, mock.AnythingOfType("string"), "fresh", time.Hour).Return(nil)

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.NoError(t, err)

		chunks := drain(t, reader)
		require.Equal(t, "fresh", chunks[0].Text)
		require.Equal(t, int32(1), atomic.LoadInt32(&caller.calls))
	})

	t.Run("should fall through to upstream when cache fails", func(t *testing.T) {
		cache := mocks.NewMockResponseCache(t)
		caller := &stubCaller{doc: []byte("garbage")}
		adapter := wrapped.NewAdapter(caller, pool, cache, time.Hour)
		desc := testDescriptor("http://x")

		cache.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return("", false, errors.New("down"))

		payload, err := adapter.Transform(desc, testRequest())
		require.NoError(t, err)

		reader, err := adapter.Invoke(context.Background(), desc, payload)
		require.NoError(t, err)

		// Undecodable documents are not cached, so Set is never expected.
		chunks := drain(t, reader)
		require.Empty(t, chunks[0].Text)
	})
}

func TestSynthesize(t *testing.T) {
	now := time.Unix(1700000000, 42)

	chunks := wrapped.Synthesize(now, "m", "")

	require.Len(t, chunks, 3)
	require.Equal(t, "chatcmpl-1700000000000000042", chunks[0].ID)
	require.Equal(t, int64(1700000000), chunks[0].Created)
	require.Empty(t, chunks[0].Text)
	require.Equal(t, domain.ChunkFinish, chunks[1].Kind)
	require.Equal(t, domain.ChunkDone, chunks[2].Kind)
}
