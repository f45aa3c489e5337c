package wrapped

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/davidbz/ember/internal/domain"
)

const (
	eventPrefix  = "data:"
	fragmentText = "text"
)

// ExtractText pulls the text out of a buffered response document. It first
// treats the document as a JSON array of typed fragments; failing that, it
// reads prefixed event lines holding one JSON object each and skips lines
// that do not parse. domain.ErrDecode is returned when neither shape is found.
func ExtractText(doc []byte) (string, error) {
	if gjson.ValidBytes(doc) {
		if parsed := gjson.ParseBytes(doc); parsed.IsArray() {
			var builder strings.Builder
			parsed.ForEach(func(_, fragment gjson.Result) bool {
				appendText(&builder, fragment)
				return true
			})
			return builder.String(), nil
		}
	}

	return extractFromLines(string(doc))
}

func extractFromLines(doc string) (string, error) {
	var builder strings.Builder
	found := false

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, eventPrefix) {
			continue
		}

		raw := strings.TrimSpace(strings.TrimPrefix(line, eventPrefix))
		if !gjson.Valid(raw) {
			continue
		}

		object := gjson.Parse(raw)
		if !object.IsObject() {
			continue
		}

		found = true
		appendText(&builder, object)
	}

	if !found {
		return "", domain.ErrDecode
	}

	return builder.String(), nil
}

func appendText(builder *strings.Builder, fragment gjson.Result) {
	if fragment.Get("type").String() != fragmentText {
		return
	}
	builder.WriteString(fragment.Get("text").String())
}
