package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	html, err := Render("# Rex\n\nA **friendly** dog.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Rex</h1>")
	assert.Contains(t, html, "<strong>friendly</strong>")
}

func TestRenderDropsRawHTML(t *testing.T) {
	html, err := Render(`hello <script>alert("x")</script> world`)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
