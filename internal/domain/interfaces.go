package domain

import (
	"context"
	"time"
)

// ProviderRegistry resolves provider identifiers to descriptors.
type ProviderRegistry interface {
	// Resolve returns the descriptor registered under the identifier.
	Resolve(ctx context.Context, providerID string) (*ProviderDescriptor, error)

	// List returns all configured provider identifiers.
	List(ctx context.Context) ([]string, error)
}

// Adapter implements one wire-adapter kind.
type Adapter interface {
	// Kind returns the adapter kind this implementation serves.
	Kind() AdapterKind

	// Transform builds the backend payload. It performs no I/O.
	Transform(desc *ProviderDescriptor, req *CompletionRequest) (*BackendPayload, error)

	// Invoke performs the upstream call and returns a reader over canonical chunks.
	Invoke(ctx context.Context, desc *ProviderDescriptor, payload *BackendPayload) (ChunkReader, error)
}

// ChunkReader yields canonical chunks in order.
type ChunkReader interface {
	// Next returns the next chunk, or io.EOF once the source is exhausted.
	Next(ctx context.Context) (Chunk, error)

	// Close releases the upstream connection.
	Close() error
}

// ContentFilter decides whether a fragment must not reach the caller.
type ContentFilter interface {
	ShouldSuppress(fragment string) bool
}

// ResponseCache stores extracted text of buffered upstream calls.
type ResponseCache interface {
	// Get returns the cached text and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores text under key for ttl.
	Set(ctx context.Context, key string, text string, ttl time.Duration) error
}
