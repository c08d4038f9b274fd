package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is configured without WithUnsafe, so raw HTML in the source is
// dropped by the renderer. Animal descriptions are stored as the
// rendered output, never as raw user input.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts markdown to sanitized HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
