// Package wrapped implements the adapter for backends that only answer one
// synchronous RPC-style call. The request is wrapped in an envelope, the call
// runs on the worker pool, and the returned document is re-streamed as
// canonical events.
package wrapped

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
	"github.com/davidbz/ember/internal/provider"
	"github.com/davidbz/ember/internal/workerpool"
)

// Caller performs a buffered upstream call.
type Caller interface {
	Call(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error)
}

// Adapter implements domain.Adapter for wrapped-buffered backends.
type Adapter struct {
	caller   Caller
	pool     *workerpool.Pool
	cache    domain.ResponseCache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewAdapter creates a new wrapped-buffered adapter. cache may be nil.
func NewAdapter(caller Caller, pool *workerpool.Pool, cache domain.ResponseCache, cacheTTL time.Duration) *Adapter {
	return &Adapter{
		caller:   caller,
		pool:     pool,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Kind returns domain.AdapterWrappedBuffered.
func (a *Adapter) Kind() domain.AdapterKind {
	return domain.AdapterWrappedBuffered
}

// Transform nests the canonical request inside the backend's RPC envelope.
func (a *Adapter) Transform(desc *domain.ProviderDescriptor, req *domain.CompletionRequest) (*domain.BackendPayload, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	body, err := json.Marshal(newEnvelope(desc.Envelope, req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return &domain.BackendPayload{
		Body:    body,
		Headers: provider.Headers(desc, "*/*"),
		Model:   req.Model,
	}, nil
}

// Invoke performs the buffered call on the worker pool and returns the
// synthesized delta, finish and done events.
func (a *Adapter) Invoke(
	ctx context.Context,
	desc *domain.ProviderDescriptor,
	payload *domain.BackendPayload,
) (domain.ChunkReader, error) {
	logger := observability.FromContext(ctx)
	key := cacheKey(desc.ID, payload.Body)

	if text, ok := a.lookup(ctx, key); ok {
		return &sliceReader{chunks: Synthesize(a.now(), payload.Model, text)}, nil
	}

	logger.Debug("dispatching buffered call", observability.String("url", desc.URL))

	doc, err := workerpool.Do(ctx, a.pool, func(ctx context.Context) ([]byte, error) {
		return a.caller.Call(ctx, desc.URL, payload.Body, payload.Headers)
	})
	if err != nil {
		return nil, fmt.Errorf("buffered call to %s failed: %w", desc.ID, err)
	}

	text, err := ExtractText(doc)
	if err != nil {
		// Unrecognized documents count as empty content.
		logger.Warn("could not extract text from buffered response",
			observability.Error(err),
			observability.Int("document_size", len(doc)))
		text = ""
	} else {
		a.store(ctx, key, text)
	}

	return &sliceReader{chunks: Synthesize(a.now(), payload.Model, text)}, nil
}

func (a *Adapter) lookup(ctx context.Context, key string) (string, bool) {
	if a.cache == nil {
		return "", false
	}

	text, ok, err := a.cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.CacheLookupsTotal.WithLabelValues("error").Inc()
		observability.FromContext(ctx).Warn("cache get failed, continuing without cache",
			observability.Error(err))
		return "", false
	case !ok:
		observability.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return "", false
	default:
		observability.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return text, true
	}
}

func (a *Adapter) store(ctx context.Context, key, text string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, key, text, a.cacheTTL); err != nil {
		observability.FromContext(ctx).Warn("failed to store in cache", observability.Error(err))
	}
}

// cacheKey derives a key from the provider and the exact upstream payload.
func cacheKey(providerID string, body []byte) string {
	hash := sha256.New()
	hash.Write([]byte(providerID))
	hash.Write([]byte{0})
	hash.Write(body)
	return "ember:buffered:" + hex.EncodeToString(hash.Sum(nil))
}
