package transform

import "github.com/notewerk/blocktree/pkg/block"

// Content is the type-specific payload extracted from a block before the
// builder for its kind runs. Builders type-switch (or type-assert) on
// the concrete types below. Kinds without a payload (divider, toggle
// children containers, unknown types) pass a nil Content.
type Content interface {
	isContent()
}

// TextContent is the payload for text blocks.
type TextContent struct {
	Text  block.RichText
	Color string
}

// ToggleContent is the payload for toggle blocks.
type ToggleContent struct {
	Text block.RichText
}

// PageContent is the payload for the document root page.
type PageContent struct {
	Title block.RichText
	Icon  string
}

// PageLinkContent is the payload for page blocks reached below the
// root. Title is the plain text of the first title span; the block's
// children are never visited.
type PageLinkContent struct {
	Title string
	Icon  string
}

// ListContent is the payload for bulleted and numbered list items.
// StartIndex is the computed start number for numbered lists, produced
// by [Env.FindListIndex].
type ListContent struct {
	Text       block.RichText
	StartIndex int
	Color      string
}

// ToDoContent is the payload for to_do blocks.
type ToDoContent struct {
	Text    block.RichText
	Checked bool
}

// HeaderContent is the payload for the collapsed header family.
// Level is 1, 2 or 3 for header, sub_header and sub_sub_header.
type HeaderContent struct {
	Text  block.RichText
	Level int
}

// TOCEntry is one entry of a table of contents: a header-family block
// among the direct children of the containing top-level page.
type TOCEntry struct {
	ID    string
	Level int
	Text  string
}

// TOCContent is the payload for table_of_contents blocks. Entries keep
// the original child order of the containing page; non-header siblings
// are filtered out, not recursed into.
type TOCContent struct {
	Entries []TOCEntry
}

// QuoteContent is the payload for quote blocks.
type QuoteContent struct {
	Text  block.RichText
	Color string
}

// CalloutContent is the payload for callout blocks.
type CalloutContent struct {
	Text  block.RichText
	Color string
	Icon  string
}

// BookmarkContent is the payload for bookmark blocks.
//
// Description is derived from the title property exactly like Title,
// reproducing the upstream behavior. Do not "fix" this without changing
// the contract: consumers may rely on the two being equal.
type BookmarkContent struct {
	Link        string
	Title       string
	Description string
	Favicon     string
	Cover       string
	Color       string
}

// MediaContent is the payload for image and video blocks. Src has been
// resolved through [Env.MapImageURL], preferring the format's
// display_source over the source property.
type MediaContent struct {
	Src         string
	Caption     block.RichText
	Width       float64
	Height      float64
	AspectRatio float64
	FullWidth   bool
	PageWidth   bool
}

// CodeContent is the payload for code blocks.
type CodeContent struct {
	Text     block.RichText
	Language string
}

// EquationContent is the payload for equation blocks. Expression is the
// raw first value of the title property, passed through unflattened.
type EquationContent struct {
	Expression string
}

// ColumnContent is the payload for column blocks. Ratio defaults to 0.5
// when the block carries no column_ratio hint.
type ColumnContent struct {
	Ratio float64
}

// CollectionViewContent is the payload for collection_view blocks,
// taken verbatim from the record.
type CollectionViewContent struct {
	CollectionID string
	ViewIDs      []string
}

func (TextContent) isContent()           {}
func (ToggleContent) isContent()         {}
func (PageContent) isContent()           {}
func (PageLinkContent) isContent()       {}
func (ListContent) isContent()           {}
func (ToDoContent) isContent()           {}
func (HeaderContent) isContent()         {}
func (TOCContent) isContent()            {}
func (QuoteContent) isContent()          {}
func (CalloutContent) isContent()        {}
func (BookmarkContent) isContent()       {}
func (MediaContent) isContent()          {}
func (CodeContent) isContent()           {}
func (EquationContent) isContent()       {}
func (ColumnContent) isContent()         {}
func (CollectionViewContent) isContent() {}
