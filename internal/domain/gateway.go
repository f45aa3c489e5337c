package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/davidbz/ember/internal/observability"
)

// GatewayService orchestrates requests to providers.
type GatewayService struct {
	registry ProviderRegistry
	adapters map[AdapterKind]Adapter
	filter   ContentFilter
}

// NewGatewayService creates a new gateway service (DI constructor).
func NewGatewayService(registry ProviderRegistry, adapters []Adapter, filter ContentFilter) *GatewayService {
	byKind := make(map[AdapterKind]Adapter, len(adapters))
	for _, adapter := range adapters {
		byKind[adapter.Kind()] = adapter
	}

	return &GatewayService{
		registry: registry,
		adapters: byKind,
		filter:   filter,
	}
}

// ApplyPolicy forces the dispatch policy onto a request copy.
func ApplyPolicy(req *CompletionRequest) *CompletionRequest {
	out := *req
	out.Messages = append([]Message(nil), req.Messages...)
	out.Stream = true
	out.Temperature = 0
	if out.MaxTokens <= 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	return &out
}

// Stream handles a streaming completion request. The returned channel is
// closed once the stream ends; failures arrive as a single error chunk.
func (g *GatewayService) Stream(
	ctx context.Context,
	providerID string,
	req *CompletionRequest,
) <-chan Chunk {
	chunks := make(chan Chunk)

	go func() {
		defer close(chunks)

		logger := observability.FromContext(ctx)

		reader, kind, err := g.open(ctx, providerID, req)
		if err != nil {
			logger.Error("stream failed before first chunk", observability.Error(err))
			send(ctx, chunks, ErrorChunk(err))
			return
		}
		defer reader.Close()

		start := time.Now()
		outcome := g.forward(ctx, providerID, kind, reader, chunks)
		observability.UpstreamLatency.WithLabelValues(providerID, string(kind)).
			Observe(time.Since(start).Seconds())
		observability.UpstreamRequestsTotal.WithLabelValues(providerID, string(kind), outcome).Inc()
	}()

	return chunks
}

// open resolves, transforms and invokes.
func (g *GatewayService) open(
	ctx context.Context,
	providerID string,
	req *CompletionRequest,
) (ChunkReader, AdapterKind, error) {
	if req == nil {
		return nil, "", errors.New("request cannot be nil")
	}

	desc, err := g.registry.Resolve(ctx, providerID)
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues("unknown", "none", "unknown_provider").Inc()
		return nil, "", err
	}

	adapter, ok := g.adapters[desc.Kind]
	if !ok {
		return nil, desc.Kind, fmt.Errorf("%w: %q", ErrUnknownAdapterKind, desc.Kind)
	}

	payload, err := adapter.Transform(desc, ApplyPolicy(req))
	if err != nil {
		return nil, desc.Kind, fmt.Errorf("failed to transform request: %w", err)
	}

	reader, err := adapter.Invoke(ctx, desc, payload)
	if err != nil {
		observability.UpstreamRequestsTotal.WithLabelValues(desc.ID, string(desc.Kind), "failed").Inc()
		return nil, desc.Kind, err
	}

	return reader, desc.Kind, nil
}

// forward copies chunks from the reader to the caller, applying the content
// filter to raw fragments. It returns the outcome label for metrics.
func (g *GatewayService) forward(
	ctx context.Context,
	providerID string,
	kind AdapterKind,
	reader ChunkReader,
	chunks chan<- Chunk,
) string {
	logger := observability.FromContext(ctx)

	for {
		chunk, err := reader.Next(ctx)
		if errors.Is(err, io.EOF) {
			logger.Debug("upstream stream exhausted")
			return "ok"
		}
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("caller went away, upstream closed", observability.Error(ctx.Err()))
				return "cancelled"
			}
			logger.Error("upstream stream failed", observability.Error(err))
			send(ctx, chunks, ErrorChunk(err))
			return "failed"
		}

		if chunk.Kind == ChunkRaw && g.filter != nil && g.filter.ShouldSuppress(string(chunk.Raw)) {
			// Truncated without a terminal event.
			logger.Warn("content filter matched, truncating stream",
				observability.Int("suppressed_bytes", len(chunk.Raw)))
			observability.FilterSuppressedTotal.WithLabelValues(providerID).Inc()
			return "suppressed"
		}

		if !send(ctx, chunks, chunk) {
			logger.Info("caller went away, upstream closed", observability.String("kind", string(kind)))
			return "cancelled"
		}
	}
}

func send(ctx context.Context, chunks chan<- Chunk, chunk Chunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
