package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/transform"
)

func buildDoc(t *testing.T) block.Graph {
	t.Helper()
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle("Notes"))
	g.AppendChild(root, (&block.Block{Type: block.TypeSubHeader}).WithID("h").WithTitle("Tasks"))
	g.AppendChild(root, (&block.Block{Type: block.TypeNumberedList}).WithID("n1").WithTitle("one"))
	g.AppendChild(root, (&block.Block{Type: block.TypeNumberedList}).WithID("n2").WithTitle("two"))
	g.AppendChild(root, (&block.Block{Type: block.TypeText}).WithID("t").WithTitle("gap"))
	g.AppendChild(root, (&block.Block{Type: block.TypeBulletedList}).WithID("b1").WithTitle("alpha"))
	g.AppendChild(root, (&block.Block{Type: block.TypeBulletedList}).WithID("b2").WithTitle("beta"))
	g.AppendChild(root, (&block.Block{Type: block.TypeDivider}).WithID("d"))
	todo := (&block.Block{Type: block.TypeToDo}).WithID("td").WithTitle("done")
	todo.WithProperty(block.PropChecked, block.Plain("Yes"))
	g.AppendChild(root, todo)
	return g
}

func TestRenderGroupsListRuns(t *testing.T) {
	g := buildDoc(t)

	got, err := Render(g, "root", nil)
	require.NoError(t, err)

	want := `# Notes

## Tasks

1. one
2. two

gap

- alpha
- beta

---

- [x] done
`
	assert.Equal(t, want, got)
}

func TestRenderMissingRoot(t *testing.T) {
	got, err := Render(block.Graph{}, "nope", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderNumberedListContinues(t *testing.T) {
	g := buildDoc(t)
	got, err := Render(g, "root", nil)
	require.NoError(t, err)

	// Second item of the run numbers from the run start.
	assert.Contains(t, got, "1. one\n2. two")
}

func TestRenderNestedListChildren(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle(""))
	item := g.AppendChild(root, (&block.Block{Type: block.TypeBulletedList}).WithID("li").WithTitle("outer"))
	g.AppendChild(item, (&block.Block{Type: block.TypeBulletedList}).WithID("inner").WithTitle("inner"))

	got, err := Render(g, "root", nil)
	require.NoError(t, err)
	assert.Equal(t, "- outer\n  - inner\n", got)
}

func TestInlineMarks(t *testing.T) {
	tests := []struct {
		name string
		rt   block.RichText
		want string
	}{
		{
			name: "Bold",
			rt:   block.RichText{{Text: "hi", Marks: [][]string{{"b"}}}},
			want: "**hi**",
		},
		{
			name: "Link",
			rt:   block.RichText{{Text: "site", Marks: [][]string{{"a", "https://x.io"}}}},
			want: "[site](https://x.io)",
		},
		{
			name: "CodeInsideItalic",
			rt:   block.RichText{{Text: "x", Marks: [][]string{{"c"}, {"i"}}}},
			want: "*`x`*",
		},
		{
			name: "UnknownMarkPassesThrough",
			rt:   block.RichText{{Text: "x", Marks: [][]string{{"h", "red"}}}},
			want: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inline(tt.rt))
		})
	}
}

func TestRulesCoverEveryKnownKind(t *testing.T) {
	rules := Rules(block.Graph{})
	kinds := []transform.Kind{
		transform.KindText, transform.KindToggle, transform.KindPage,
		transform.KindPageLink, transform.KindBulletedList,
		transform.KindNumberedList, transform.KindHeader,
		transform.KindToDo, transform.KindTableOfContents,
		transform.KindDivider, transform.KindColumnList,
		transform.KindColumn, transform.KindQuote, transform.KindEquation,
		transform.KindCode, transform.KindImage, transform.KindVideo,
		transform.KindCallout, transform.KindBookmark,
		transform.KindCollectionView,
	}
	for _, k := range kinds {
		assert.Contains(t, rules, k, "no markdown rule for kind %q", k)
	}
}
