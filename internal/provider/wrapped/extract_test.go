package wrapped_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/provider/wrapped"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    string
		wantErr error
	}{
		{
			name: "array of typed fragments keeps text fragments in order",
			doc:  `[{"type":"text","text":"A"},{"type":"other"},{"type":"text","text":"B"}]`,
			want: "AB",
		},
		{
			name: "empty array yields empty text",
			doc:  `[]`,
			want: "",
		},
		{
			name: "line frames skip malformed lines",
			doc:  "data: {\"type\":\"text\",\"text\":\"X\"}\ndata: {not json\n",
			want: "X",
		},
		{
			name: "line frames ignore unprefixed lines and other types",
			doc: "event: message\n" +
				"data: {\"type\":\"text\",\"text\":\"Hel\"}\r\n" +
				"data: {\"type\":\"usage\",\"tokens\":3}\n" +
				"data:{\"type\":\"text\",\"text\":\"lo\"}\n" +
				"data: [DONE]\n",
			want: "Hello",
		},
		{
			name:    "unrecognized document",
			doc:     "<html>bad gateway</html>",
			wantErr: domain.ErrDecode,
		},
		{
			name:    "json object is not an array of fragments",
			doc:     `{"type":"text","text":"nope"}`,
			wantErr: domain.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wrapped.ExtractText([]byte(tt.doc))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
