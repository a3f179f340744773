package kinds

import (
	"context"
	"io"
	"strings"
)

// Text is a plain text asset such as a shader source or a script.
type Text struct {
	Body  string `json:"body"`
	Lines int    `json:"lines"`
}

// TextExtensions are routed to the text kind.
var TextExtensions = []string{".txt", ".md", ".json", ".csv", ".yaml", ".yml", ".glsl", ".vert", ".frag", ".lua"}

// DecodeText reads the whole stream as UTF-8 text.
func DecodeText(ctx context.Context, key string, r io.Reader) (*Text, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body := string(data)
	lines := strings.Count(body, "\n")
	if body != "" && !strings.HasSuffix(body, "\n") {
		lines++
	}
	return &Text{Body: body, Lines: lines}, nil
}
