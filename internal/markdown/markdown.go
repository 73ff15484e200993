// Package markdown renders markdown sources to HTML fragments.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// converter is shared; goldmark.Markdown is safe for concurrent use and the
// build pipeline is single-threaded anyway.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Render converts a markdown document to an HTML fragment.
//
// Raw HTML in sources passes through unchanged (WithUnsafe): sources are the
// site author's own files, and inline HTML is a normal authoring escape hatch.
func Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := converter.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}
