// Package passthrough implements the adapter for backends whose native
// stream is already in the canonical chunk format. Bytes are forwarded as
// they arrive; no reshaping happens on the way back.
package passthrough

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/tidwall/sjson"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
	"github.com/davidbz/ember/internal/provider"
)

const readBufferSize = 4096

// Streamer opens a streaming upstream call.
type Streamer interface {
	Stream(ctx context.Context, url string, body []byte, headers http.Header) (io.ReadCloser, error)
}

// Adapter implements domain.Adapter for passthrough backends.
type Adapter struct {
	streamer Streamer
}

// NewAdapter creates a new passthrough adapter.
func NewAdapter(streamer Streamer) *Adapter {
	return &Adapter{streamer: streamer}
}

// Kind returns domain.AdapterPassthrough.
func (a *Adapter) Kind() domain.AdapterKind {
	return domain.AdapterPassthrough
}

// Transform serializes the canonical request as an OpenAI-compatible body.
func (a *Adapter) Transform(desc *domain.ProviderDescriptor, req *domain.CompletionRequest) (*domain.BackendPayload, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	body, err := json.Marshal(toSDKParams(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// The SDK sets stream on the wire itself, so the params type has no field for it.
	body, err = sjson.SetBytes(body, "stream", req.Stream)
	if err != nil {
		return nil, fmt.Errorf("failed to set stream flag: %w", err)
	}

	return &domain.BackendPayload{
		Body:    body,
		Headers: provider.Headers(desc, "text/event-stream"),
		Model:   req.Model,
	}, nil
}

// Invoke opens the upstream stream.
func (a *Adapter) Invoke(
	ctx context.Context,
	desc *domain.ProviderDescriptor,
	payload *domain.BackendPayload,
) (domain.ChunkReader, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("opening passthrough stream", observability.String("url", desc.URL))

	body, err := a.streamer.Stream(ctx, desc.URL, payload.Body, payload.Headers)
	if err != nil {
		return nil, fmt.Errorf("passthrough call to %s failed: %w", desc.ID, err)
	}

	return &rawReader{body: body, buf: make([]byte, readBufferSize)}, nil
}

// toSDKParams converts a canonical request to SDK ChatCompletionNewParams.
func toSDKParams(req *domain.CompletionRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case "assistant":
			messages[i] = openai.AssistantMessage(msg.Content)
		case "system":
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	}
}

// rawReader yields upstream bytes as raw chunks in arrival order.
type rawReader struct {
	body io.ReadCloser
	buf  []byte
}

func (r *rawReader) Next(ctx context.Context) (domain.Chunk, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Chunk{}, err
		}

		n, err := r.body.Read(r.buf)
		if n > 0 {
			fragment := make([]byte, n)
			copy(fragment, r.buf[:n])
			// A trailing error surfaces on the next call.
			return domain.RawChunk(fragment), nil
		}
		if err != nil {
			return domain.Chunk{}, err
		}
	}
}

func (r *rawReader) Close() error {
	return r.body.Close()
}
