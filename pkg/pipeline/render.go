package pipeline

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/render/dot"
	"github.com/notewerk/blocktree/pkg/render/markdown"
)

// htmlConverter turns rendered Markdown into an HTML fragment.
// GFM covers the strikethrough and task-list syntax the Markdown
// renderer emits; unsafe is required for raw block HTML like <details>.
var htmlConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// renderFormat produces a single artifact. Markdown is the base
// representation; html is derived from it, and svg from dot.
func renderFormat(g block.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		md, err := markdown.Render(g, opts.RootID, opts.Env)
		if err != nil {
			return nil, err
		}
		return []byte(md), nil

	case FormatHTML:
		md, err := markdown.Render(g, opts.RootID, opts.Env)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := htmlConverter.Convert([]byte(md), &buf); err != nil {
			return nil, fmt.Errorf("convert markdown to html: %w", err)
		}
		return buf.Bytes(), nil

	case FormatDOT:
		return []byte(dot.ToDOT(g, opts.RootID, dot.Options{MaxLabel: opts.MaxLabel})), nil

	case FormatSVG:
		d := dot.ToDOT(g, opts.RootID, dot.Options{MaxLabel: opts.MaxLabel})
		return dot.RenderSVG(d)

	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
