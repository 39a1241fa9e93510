// Package markdown renders a block graph to Markdown text.
//
// It is the reference rule set for the transform engine: every output
// kind has a builder, contiguous sibling runs are grouped so that
// adjacent list items join into one list, and numbered lists consume the
// engine's list-index collaborator.
package markdown

import (
	"fmt"
	"strings"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/transform"
)

// Render transforms the graph from rootID into a Markdown document.
// It returns an empty string (and no error) when rootID is absent from
// the graph.
func Render(g block.Graph, rootID string, env *transform.Env) (string, error) {
	out, ok, err := transform.Transform(g, rootID, Rules(g), env)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// Rules returns the Markdown rule set. The graph is needed so container
// builders can group their children by contiguous sibling runs.
func Rules(g block.Graph) transform.Rules[string] {
	return transform.Rules[string]{
		transform.KindPage: func(id string, c transform.Content, children []string) string {
			page, _ := c.(transform.PageContent)
			var sb strings.Builder
			if title := Inline(page.Title); title != "" {
				sb.WriteString("# ")
				if page.Icon != "" {
					sb.WriteString(page.Icon + " ")
				}
				sb.WriteString(title + "\n\n")
			}
			sb.WriteString(joinGrouped(g, id, children))
			return sb.String()
		},

		transform.KindPageLink: func(id string, c transform.Content, _ []string) string {
			link, _ := c.(transform.PageLinkContent)
			label := link.Title
			if link.Icon != "" {
				label = link.Icon + " " + label
			}
			return fmt.Sprintf("[%s](%s)", label, id)
		},

		transform.KindText: func(_ string, c transform.Content, _ []string) string {
			text, _ := c.(transform.TextContent)
			return Inline(text.Text)
		},

		transform.KindHeader: func(_ string, c transform.Content, _ []string) string {
			h, _ := c.(transform.HeaderContent)
			return strings.Repeat("#", h.Level) + " " + Inline(h.Text)
		},

		transform.KindBulletedList: func(_ string, c transform.Content, children []string) string {
			item, _ := c.(transform.ListContent)
			return "- " + Inline(item.Text) + nested(children)
		},

		transform.KindNumberedList: func(_ string, c transform.Content, children []string) string {
			item, _ := c.(transform.ListContent)
			return fmt.Sprintf("%d. %s%s", item.StartIndex, Inline(item.Text), nested(children))
		},

		transform.KindToDo: func(_ string, c transform.Content, children []string) string {
			td, _ := c.(transform.ToDoContent)
			box := "[ ]"
			if td.Checked {
				box = "[x]"
			}
			return "- " + box + " " + Inline(td.Text) + nested(children)
		},

		transform.KindToggle: func(id string, c transform.Content, children []string) string {
			tg, _ := c.(transform.ToggleContent)
			body := joinGrouped(g, id, children)
			return "<details>\n<summary>" + Inline(tg.Text) + "</summary>\n\n" + body + "\n</details>"
		},

		transform.KindQuote: func(_ string, c transform.Content, _ []string) string {
			q, _ := c.(transform.QuoteContent)
			return "> " + Inline(q.Text)
		},

		transform.KindCallout: func(_ string, c transform.Content, _ []string) string {
			co, _ := c.(transform.CalloutContent)
			text := Inline(co.Text)
			if co.Icon != "" {
				text = co.Icon + " " + text
			}
			return "> " + text
		},

		transform.KindDivider: func(_ string, _ transform.Content, _ []string) string {
			return "---"
		},

		transform.KindTableOfContents: func(_ string, c transform.Content, _ []string) string {
			toc, _ := c.(transform.TOCContent)
			lines := make([]string, 0, len(toc.Entries))
			for _, e := range toc.Entries {
				indent := strings.Repeat("  ", e.Level-1)
				lines = append(lines, fmt.Sprintf("%s- [%s](#%s)", indent, e.Text, e.ID))
			}
			return strings.Join(lines, "\n")
		},

		transform.KindImage: func(_ string, c transform.Content, _ []string) string {
			m, _ := c.(transform.MediaContent)
			return fmt.Sprintf("![%s](%s)", Inline(m.Caption), m.Src)
		},

		transform.KindVideo: func(_ string, c transform.Content, _ []string) string {
			m, _ := c.(transform.MediaContent)
			label := Inline(m.Caption)
			if label == "" {
				label = "video"
			}
			return fmt.Sprintf("[%s](%s)", label, m.Src)
		},

		transform.KindCode: func(_ string, c transform.Content, _ []string) string {
			code, _ := c.(transform.CodeContent)
			lang := strings.ToLower(code.Language)
			return "```" + lang + "\n" + code.Text.TextContent() + "\n```"
		},

		transform.KindEquation: func(_ string, c transform.Content, _ []string) string {
			eq, _ := c.(transform.EquationContent)
			return "$$" + eq.Expression + "$$"
		},

		transform.KindBookmark: func(_ string, c transform.Content, _ []string) string {
			bm, _ := c.(transform.BookmarkContent)
			return fmt.Sprintf("[%s](%s)", bm.Title, bm.Link)
		},

		transform.KindCollectionView: func(_ string, c transform.Content, _ []string) string {
			cv, _ := c.(transform.CollectionViewContent)
			return fmt.Sprintf("<!-- collection %s -->", cv.CollectionID)
		},

		transform.KindColumnList: func(id string, _ transform.Content, children []string) string {
			return joinGrouped(g, id, children)
		},

		transform.KindColumn: func(id string, _ transform.Content, children []string) string {
			return joinGrouped(g, id, children)
		},
	}
}

// Inline renders rich text with Markdown inline marks. Unrecognized
// decorations pass the text through unchanged.
func Inline(rt block.RichText) string {
	var sb strings.Builder
	for _, span := range rt {
		sb.WriteString(inlineSpan(span))
	}
	return sb.String()
}

func inlineSpan(s block.Span) string {
	out := s.Text
	for _, mark := range s.Marks {
		if len(mark) == 0 {
			continue
		}
		switch mark[0] {
		case "b":
			out = "**" + out + "**"
		case "i":
			out = "*" + out + "*"
		case "s":
			out = "~~" + out + "~~"
		case "c":
			out = "`" + out + "`"
		case "a":
			if len(mark) > 1 {
				out = "[" + out + "](" + mark[1] + ")"
			}
		}
	}
	return out
}

// joinGrouped joins a container's rendered children using the sibling
// run grouping: children inside one run are separated by single
// newlines (so adjacent list items form one list), runs by blank lines.
//
// The runs line up with the rendered children one-to-one: the rule set
// covers every known kind, so the engine skips exactly the children that
// are missing or of unknown type, and those are filtered out before
// grouping.
func joinGrouped(g block.Graph, parentID string, children []string) string {
	parent, ok := g.Block(parentID)
	if !ok {
		return strings.Join(children, "\n\n")
	}

	rendered := make([]string, 0, len(parent.ContentIDs))
	for _, id := range parent.ContentIDs {
		b, ok := g.Block(id)
		if !ok || transform.ResolveKind(b.Type, false) == transform.KindUnknown {
			continue
		}
		rendered = append(rendered, id)
	}

	runs := transform.GroupSiblings(g, rendered)
	var parts []string
	i := 0
	for _, run := range runs {
		n := len(run)
		if i+n > len(children) {
			n = len(children) - i
		}
		if n <= 0 {
			break
		}
		parts = append(parts, strings.Join(children[i:i+n], "\n"))
		i += n
	}
	// Anything left over (shouldn't happen with a full rule set).
	if i < len(children) {
		parts = append(parts, children[i:]...)
	}
	return strings.Join(parts, "\n\n")
}

// nested indents already-rendered child output under a list item.
func nested(children []string) string {
	if len(children) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, child := range children {
		for _, line := range strings.Split(child, "\n") {
			sb.WriteString("\n  " + line)
		}
	}
	return sb.String()
}
