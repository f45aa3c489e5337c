package http

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davidbz/ember/internal/domain"
)

const doneFrame = "data: [DONE]\n\n"

// streamChunk is the chat.completion.chunk shape written for synthesized events.
type streamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Content *string `json:"content,omitempty"`
}

type errorFrame struct {
	Error *domain.ErrorPayload `json:"error"`
}

// WriteChunk serializes one canonical chunk onto the event stream.
// Raw fragments are written byte-for-byte.
func WriteChunk(w io.Writer, chunk domain.Chunk) error {
	switch chunk.Kind {
	case domain.ChunkRaw:
		_, err := w.Write(chunk.Raw)
		return err
	case domain.ChunkDone:
		_, err := io.WriteString(w, doneFrame)
		return err
	case domain.ChunkDelta:
		text := chunk.Text
		return writeFrame(w, newStreamChunk(chunk, streamDelta{Content: &text}, nil))
	case domain.ChunkFinish:
		reason := chunk.Reason
		return writeFrame(w, newStreamChunk(chunk, streamDelta{}, &reason))
	case domain.ChunkError:
		payload := chunk.Err
		if payload == nil {
			ce := domain.ClassifyError(nil)
			payload = &ce
		}
		return writeFrame(w, errorFrame{Error: payload})
	default:
		return fmt.Errorf("unsupported chunk kind %s", chunk.Kind)
	}
}

func newStreamChunk(chunk domain.Chunk, delta streamDelta, reason *string) streamChunk {
	return streamChunk{
		ID:      chunk.ID,
		Object:  "chat.completion.chunk",
		Created: chunk.Created,
		Model:   chunk.Model,
		Choices: []streamChoice{{Index: 0, Delta: delta, FinishReason: reason}},
	}
}

func writeFrame(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
