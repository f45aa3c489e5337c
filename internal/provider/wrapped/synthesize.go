package wrapped

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/davidbz/ember/internal/domain"
)

const finishReasonStop = "stop"

// Synthesize turns extracted text into the delta, finish and done events.
func Synthesize(now time.Time, model, text string) []domain.Chunk {
	id := fmt.Sprintf("chatcmpl-%d", now.UnixNano())
	created := now.Unix()

	return []domain.Chunk{
		{Kind: domain.ChunkDelta, ID: id, Created: created, Model: model, Text: text},
		{Kind: domain.ChunkFinish, ID: id, Created: created, Model: model, Reason: finishReasonStop},
		domain.DoneChunk(),
	}
}

// sliceReader replays a fixed chunk sequence.
type sliceReader struct {
	chunks []domain.Chunk
	pos    int
}

func (r *sliceReader) Next(ctx context.Context) (domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return domain.Chunk{}, err
	}
	if r.pos >= len(r.chunks) {
		return domain.Chunk{}, io.EOF
	}

	chunk := r.chunks[r.pos]
	r.pos++
	return chunk, nil
}

func (r *sliceReader) Close() error {
	return nil
}
