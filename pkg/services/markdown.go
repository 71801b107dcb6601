package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown converts article Markdown to HTML. Raw HTML in the source is
// omitted from the output. The engine is stateless and safe to share.
type Markdown struct {
	engine goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
			),
		),
	}
}

func (m *Markdown) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := m.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
