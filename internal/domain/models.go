package domain

import "net/http"

const (
	// DefaultMaxTokens is applied when the caller omits max_tokens.
	DefaultMaxTokens = 4000

	// DefaultTemperature is applied when the caller omits temperature.
	DefaultTemperature = 0.7
)

// CompletionRequest represents a canonical chat-completion request.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// AdapterKind selects the wire adapter used to talk to a backend.
type AdapterKind string

const (
	// AdapterPassthrough forwards the backend's native stream byte-for-byte.
	AdapterPassthrough AdapterKind = "passthrough"

	// AdapterWrappedBuffered wraps the request in an RPC envelope, performs one
	// buffered call and re-streams the extracted text.
	AdapterWrappedBuffered AdapterKind = "wrapped-buffered"
)

// Valid reports whether the kind is one the gateway knows how to dispatch.
func (k AdapterKind) Valid() bool {
	return k == AdapterPassthrough || k == AdapterWrappedBuffered
}

// Envelope carries the remote procedure metadata for wrapped-buffered backends.
type Envelope struct {
	Interface string `yaml:"interface" json:"interface"`
	Driver    string `yaml:"driver"    json:"driver"`
	Method    string `yaml:"method"    json:"method"`
}

// ProviderDescriptor describes one configured backend.
type ProviderDescriptor struct {
	ID         string            `yaml:"id"`
	URL        string            `yaml:"url"`
	Credential string            `yaml:"credential"`
	Kind       AdapterKind       `yaml:"kind"`
	Headers    map[string]string `yaml:"headers"`
	Envelope   Envelope          `yaml:"envelope"`
}

// BackendPayload is a provider-specific request ready to be sent upstream.
type BackendPayload struct {
	Body    []byte
	Headers http.Header
	Model   string
}

// ChunkKind discriminates the canonical chunk variants.
type ChunkKind int

const (
	// ChunkRaw is a wire-ready fragment forwarded verbatim from a passthrough backend.
	ChunkRaw ChunkKind = iota
	// ChunkDelta carries a content delta.
	ChunkDelta
	// ChunkFinish carries the finish reason.
	ChunkFinish
	// ChunkDone is the terminal sentinel.
	ChunkDone
	// ChunkError reports a failure; nothing follows it.
	ChunkError
)

// String returns a short label used in logs and metrics.
func (k ChunkKind) String() string {
	switch k {
	case ChunkRaw:
		return "raw"
	case ChunkDelta:
		return "delta"
	case ChunkFinish:
		return "finish"
	case ChunkDone:
		return "done"
	case ChunkError:
		return "error"
	default:
		return "unknown"
	}
}

// Chunk is one canonical stream event.
type Chunk struct {
	Kind    ChunkKind
	Raw     []byte
	ID      string
	Created int64
	Model   string
	Text    string
	Reason  string
	Err     *ErrorPayload
}

// ErrorPayload is the body of an error event.
type ErrorPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// RawChunk builds a passthrough fragment.
func RawChunk(b []byte) Chunk {
	return Chunk{Kind: ChunkRaw, Raw: b}
}

// DoneChunk builds the terminal sentinel.
func DoneChunk() Chunk {
	return Chunk{Kind: ChunkDone}
}

// ErrorChunk builds an error event from any failure.
func ErrorChunk(err error) Chunk {
	ce := ClassifyError(err)
	return Chunk{Kind: ChunkError, Err: &ce}
}
