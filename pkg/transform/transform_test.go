package transform

import (
	"errors"
	"reflect"
	"testing"

	"github.com/notewerk/blocktree/pkg/block"
)

// node is a generic output tree used across the tests.
type node struct {
	Kind     Kind
	ID       string
	Content  Content
	Children []node
}

// allRules registers a capture-everything builder for the given kinds
// (or every kind when none are named).
func allRules(kinds ...Kind) Rules[node] {
	if len(kinds) == 0 {
		kinds = []Kind{
			KindText, KindToggle, KindPage, KindPageLink,
			KindBulletedList, KindNumberedList, KindHeader, KindToDo,
			KindTableOfContents, KindDivider, KindColumnList,
			KindColumn, KindQuote, KindEquation, KindCode, KindImage,
			KindVideo, KindCallout, KindBookmark, KindCollectionView,
			KindUnknown,
		}
	}
	rules := Rules[node]{}
	for _, k := range kinds {
		kind := k
		rules[kind] = func(id string, content Content, children []node) node {
			return node{Kind: kind, ID: id, Content: content, Children: children}
		}
	}
	return rules
}

func TestTransformMissingRoot(t *testing.T) {
	g := block.Graph{}
	_, ok, err := Transform(g, "nope", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if ok {
		t.Error("missing root should produce no output")
	}
}

func TestTransformEndToEnd(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle("Doc"))
	g.AppendChild(root, (&block.Block{Type: block.TypeText}).WithID("a").WithTitle("Hello"))
	todo := (&block.Block{Type: block.TypeToDo}).WithID("b").WithTitle("Buy milk")
	todo.WithProperty(block.PropChecked, block.Plain("Yes"))
	g.AppendChild(root, todo)

	out, ok, err := Transform(g, "root", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if !ok {
		t.Fatal("expected output for root")
	}
	if out.Kind != KindPage {
		t.Errorf("root kind = %q, want %q", out.Kind, KindPage)
	}
	if len(out.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(out.Children))
	}

	text, ok := out.Children[0].Content.(TextContent)
	if !ok {
		t.Fatalf("child 0 content type %T", out.Children[0].Content)
	}
	if got := text.Text.TextContent(); got != "Hello" {
		t.Errorf("text content = %q, want %q", got, "Hello")
	}

	td, ok := out.Children[1].Content.(ToDoContent)
	if !ok {
		t.Fatalf("child 1 content type %T", out.Children[1].Content)
	}
	if !td.Checked {
		t.Error("to_do should be checked")
	}
	if got := td.Text.TextContent(); got != "Buy milk" {
		t.Errorf("to_do text = %q, want %q", got, "Buy milk")
	}
}

func TestTransformNestedPageBecomesLink(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle("Top"))
	sub := (&block.Block{Type: block.TypePage}).WithID("sub").WithTitle("Nested")
	sub.WithFormat(block.Format{PageIcon: "📎"})
	g.AppendChild(root, sub)
	g.AppendChild(sub, (&block.Block{Type: block.TypeText}).WithID("deep").WithTitle("hidden"))

	out, _, err := Transform(g, "root", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if len(out.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(out.Children))
	}

	link := out.Children[0]
	if link.Kind != KindPageLink {
		t.Errorf("nested page kind = %q, want %q", link.Kind, KindPageLink)
	}
	if len(link.Children) != 0 {
		t.Error("page link must not contribute children")
	}
	content := link.Content.(PageLinkContent)
	if content.Title != "Nested" || content.Icon != "📎" {
		t.Errorf("page link content = %+v", content)
	}
}

func TestTransformHeaderLevels(t *testing.T) {
	tests := []struct {
		typ   block.Type
		level int
	}{
		{block.TypeHeader, 1},
		{block.TypeSubHeader, 2},
		{block.TypeSubSubHeader, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			g := block.Graph{}
			g.Add((&block.Block{Type: tt.typ}).WithID("h").WithTitle("Section"))

			out, ok, err := Transform(g, "h", allRules(), nil)
			if err != nil || !ok {
				t.Fatalf("Transform = %v, %v", ok, err)
			}
			if out.Kind != KindHeader {
				t.Errorf("kind = %q, want %q", out.Kind, KindHeader)
			}
			if got := out.Content.(HeaderContent).Level; got != tt.level {
				t.Errorf("level = %d, want %d", got, tt.level)
			}
		})
	}
}

func TestTransformTableOfContents(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle("Doc"))
	g.AppendChild(root, (&block.Block{Type: block.TypeHeader}).WithID("h1").WithTitle("One"))
	g.AppendChild(root, (&block.Block{Type: block.TypeText}).WithID("p1").WithTitle("prose"))
	g.AppendChild(root, (&block.Block{Type: block.TypeSubHeader}).WithID("h2").WithTitle("Two"))
	g.AppendChild(root, (&block.Block{Type: block.TypeTableOfContents}).WithID("toc"))
	g.AppendChild(root, (&block.Block{Type: block.TypeSubSubHeader}).WithID("h3").WithTitle("Three"))

	out, _, err := Transform(g, "root", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}

	var toc *node
	for i := range out.Children {
		if out.Children[i].Kind == KindTableOfContents {
			toc = &out.Children[i]
		}
	}
	if toc == nil {
		t.Fatal("no table_of_contents child")
	}

	want := []TOCEntry{
		{ID: "h1", Level: 1, Text: "One"},
		{ID: "h2", Level: 2, Text: "Two"},
		{ID: "h3", Level: 3, Text: "Three"},
	}
	got := toc.Content.(TOCContent).Entries
	if !reflect.DeepEqual(got, want) {
		t.Errorf("toc entries = %+v, want %+v", got, want)
	}
}

func TestTransformColumnRatioDefault(t *testing.T) {
	g := block.Graph{}
	g.Add((&block.Block{Type: block.TypeColumn}).WithID("col"))

	out, _, err := Transform(g, "col", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if got := out.Content.(ColumnContent).Ratio; got != 0.5 {
		t.Errorf("default ratio = %v, want 0.5", got)
	}

	ratio := 0.25
	g.Add((&block.Block{Type: block.TypeColumn}).WithID("col2").WithFormat(block.Format{ColumnRatio: &ratio}))
	out, _, _ = Transform(g, "col2", allRules(), nil)
	if got := out.Content.(ColumnContent).Ratio; got != 0.25 {
		t.Errorf("explicit ratio = %v, want 0.25", got)
	}
}

func TestTransformCycleDetection(t *testing.T) {
	g := block.Graph{
		"a": {ID: "a", Type: block.TypeToggle, ContentIDs: []string{"b"}},
		"b": {ID: "b", Type: block.TypeToggle, ContentIDs: []string{"a"}},
	}

	_, _, err := Transform(g, "a", allRules(), nil)
	var cerrTyped *CyclicGraphError
	if !errors.As(err, &cerrTyped) {
		t.Fatalf("err = %v, want *CyclicGraphError", err)
	}
	if cerrTyped.ID != "a" {
		t.Errorf("cycle closed at %q, want %q", cerrTyped.ID, "a")
	}
}

func TestTransformSharedChildIsNotACycle(t *testing.T) {
	// A diamond: both columns reference the same text block.
	g := block.Graph{
		"root": {ID: "root", Type: block.TypeColumnList, ContentIDs: []string{"c1", "c2"}},
		"c1":   {ID: "c1", Type: block.TypeColumn, ContentIDs: []string{"shared"}},
		"c2":   {ID: "c2", Type: block.TypeColumn, ContentIDs: []string{"shared"}},
		"shared": {
			ID: "shared", Type: block.TypeText,
			Properties: block.Properties{block.PropTitle: block.Plain("x")},
		},
	}

	out, ok, err := Transform(g, "root", allRules(), nil)
	if err != nil || !ok {
		t.Fatalf("Transform = %v, %v", ok, err)
	}
	if len(out.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(out.Children))
	}
}

func TestTransformMissingChildFiltered(t *testing.T) {
	g := block.Graph{
		"root": {ID: "root", Type: block.TypePage, ContentIDs: []string{"gone", "there"}},
		"there": {
			ID: "there", Type: block.TypeText,
			Properties: block.Properties{block.PropTitle: block.Plain("hi")},
		},
	}

	out, _, err := Transform(g, "root", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if len(out.Children) != 1 || out.Children[0].ID != "there" {
		t.Errorf("children = %+v, want just %q", out.Children, "there")
	}
}

func TestTransformUnregisteredKindSkipped(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root").WithTitle("Doc"))
	g.AppendChild(root, (&block.Block{Type: block.TypeDivider}).WithID("d"))
	g.AppendChild(root, (&block.Block{Type: block.TypeText}).WithID("t").WithTitle("kept"))

	// No divider rule registered.
	out, _, err := Transform(g, "root", allRules(KindPage, KindText), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if len(out.Children) != 1 || out.Children[0].ID != "t" {
		t.Errorf("children = %+v, want just the text block", out.Children)
	}
}

func TestTransformUnknownType(t *testing.T) {
	g := block.Graph{
		"x": {ID: "x", Type: "transclusion", ContentIDs: []string{"child"}},
	}

	out, ok, err := Transform(g, "x", allRules(), nil)
	if err != nil || !ok {
		t.Fatalf("Transform = %v, %v", ok, err)
	}
	if out.Kind != KindUnknown {
		t.Errorf("kind = %q, want %q", out.Kind, KindUnknown)
	}
	if out.Content != nil || out.Children != nil {
		t.Errorf("unknown kind should carry nil content and children, got %+v", out)
	}
}

func TestTransformBookmark(t *testing.T) {
	g := block.Graph{}
	bm := (&block.Block{Type: block.TypeBookmark}).WithID("bm").WithTitle("Example site")
	bm.WithProperty(block.PropLink, block.Plain("https://example.com"))
	bm.WithFormat(block.Format{BookmarkIcon: "fav.ico", BookmarkCover: "cover.png", BlockColor: "gray"})
	g.Add(bm)

	out, _, err := Transform(g, "bm", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	content := out.Content.(BookmarkContent)
	if content.Link != "https://example.com" {
		t.Errorf("link = %q", content.Link)
	}
	if content.Title != content.Description {
		t.Error("bookmark title and description must share the title derivation")
	}
	if content.Favicon != "fav.ico" || content.Cover != "cover.png" || content.Color != "gray" {
		t.Errorf("format fields = %+v", content)
	}
}

func TestTransformBookmarkMissingLink(t *testing.T) {
	g := block.Graph{}
	g.Add((&block.Block{Type: block.TypeBookmark}).WithID("bm").WithTitle("no link"))

	_, _, err := Transform(g, "bm", allRules(), nil)
	var mErr *MalformedBlockError
	if !errors.As(err, &mErr) {
		t.Fatalf("err = %v, want *MalformedBlockError", err)
	}
	if mErr.ID != "bm" || mErr.Field != block.PropLink {
		t.Errorf("error = %+v", mErr)
	}
}

func TestTransformMediaSourceResolution(t *testing.T) {
	mapped := func(src string, _ *block.Block) string { return "proxy/" + src }

	tests := []struct {
		name    string
		format  *block.Format
		source  string
		wantSrc string
	}{
		{
			name:    "DisplaySourcePreferred",
			format:  &block.Format{DisplaySource: "display.png"},
			source:  "orig.png",
			wantSrc: "proxy/display.png",
		},
		{
			name:    "FallsBackToSourceProperty",
			source:  "orig.png",
			wantSrc: "proxy/orig.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := (&block.Block{Type: block.TypeImage, Format: tt.format}).WithID("img")
			img.WithProperty(block.PropSource, block.Plain(tt.source))
			img.WithProperty(block.PropCaption, block.Plain("a caption"))
			g := block.Graph{}
			g.Add(img)

			out, _, err := Transform(g, "img", allRules(), &Env{MapImageURL: mapped})
			if err != nil {
				t.Fatalf("Transform error: %v", err)
			}
			content := out.Content.(MediaContent)
			if content.Src != tt.wantSrc {
				t.Errorf("src = %q, want %q", content.Src, tt.wantSrc)
			}
			if got := content.Caption.TextContent(); got != "a caption" {
				t.Errorf("caption = %q", got)
			}
		})
	}
}

func TestTransformCodeAndEquation(t *testing.T) {
	g := block.Graph{}
	code := (&block.Block{Type: block.TypeCode}).WithID("code").WithTitle("fmt.Println(1)")
	code.WithProperty(block.PropLanguage, block.Plain("Go"))
	g.Add(code)
	g.Add((&block.Block{Type: block.TypeEquation}).WithID("eq").WithTitle("e^{i\\pi}+1=0"))

	out, _, err := Transform(g, "code", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	cc := out.Content.(CodeContent)
	if cc.Language != "Go" || cc.Text.TextContent() != "fmt.Println(1)" {
		t.Errorf("code content = %+v", cc)
	}

	out, _, _ = Transform(g, "eq", allRules(), nil)
	if got := out.Content.(EquationContent).Expression; got != "e^{i\\pi}+1=0" {
		t.Errorf("expression = %q", got)
	}
}

func TestTransformCollectionView(t *testing.T) {
	g := block.Graph{
		"cv": {
			ID: "cv", Type: block.TypeCollectionView,
			CollectionID: "coll-1",
			ViewIDs:      []string{"v1", "v2"},
			ContentIDs:   []string{"ignored"},
		},
	}

	out, _, err := Transform(g, "cv", allRules(), nil)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	content := out.Content.(CollectionViewContent)
	if content.CollectionID != "coll-1" || len(content.ViewIDs) != 2 {
		t.Errorf("content = %+v", content)
	}
	if len(out.Children) != 0 {
		t.Error("collection_view must not recurse")
	}
}

func TestDefaultListIndex(t *testing.T) {
	g := block.Graph{}
	root := g.Add((&block.Block{Type: block.TypePage}).WithID("root"))
	g.AppendChild(root, (&block.Block{Type: block.TypeNumberedList}).WithID("n1").WithTitle("one"))
	g.AppendChild(root, (&block.Block{Type: block.TypeNumberedList}).WithID("n2").WithTitle("two"))
	g.AppendChild(root, (&block.Block{Type: block.TypeText}).WithID("break").WithTitle("gap"))
	g.AppendChild(root, (&block.Block{Type: block.TypeNumberedList}).WithID("n3").WithTitle("restart"))

	tests := []struct {
		id   string
		want int
	}{
		{"n1", 1},
		{"n2", 2},
		{"n3", 1}, // run restarts after the text block
	}
	for _, tt := range tests {
		if got := DefaultListIndex(tt.id, g); got != tt.want {
			t.Errorf("DefaultListIndex(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestDefaultTopLevelPage(t *testing.T) {
	g := block.Graph{}
	top := g.Add((&block.Block{Type: block.TypePage}).WithID("top"))
	nested := (&block.Block{Type: block.TypePage}).WithID("nested")
	g.AppendChild(top, nested)
	toggle := (&block.Block{Type: block.TypeToggle}).WithID("tg")
	g.AppendChild(nested, toggle)

	got := DefaultTopLevelPage(toggle, g)
	if got == nil || got.ID != "top" {
		t.Errorf("top-level page = %v, want top", got)
	}
}
