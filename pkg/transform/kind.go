package transform

import "github.com/notewerk/blocktree/pkg/block"

// Kind is the output-side classification used to select a builder. It
// mostly mirrors [block.Type], with three differences: the header family
// collapses into a single KindHeader, page blocks below the root resolve
// to KindPageLink instead of KindPage, and types outside the closed set
// resolve to KindUnknown.
type Kind string

// Output kinds.
const (
	KindText            Kind = "text"
	KindToggle          Kind = "toggle"
	KindPage            Kind = "page"
	KindPageLink        Kind = "page_link"
	KindBulletedList    Kind = "bulleted_list"
	KindNumberedList    Kind = "numbered_list"
	KindHeader          Kind = "header"
	KindToDo            Kind = "to_do"
	KindTableOfContents Kind = "table_of_contents"
	KindDivider         Kind = "divider"
	KindColumnList      Kind = "column_list"
	KindColumn          Kind = "column"
	KindQuote           Kind = "quote"
	KindEquation        Kind = "equation"
	KindCode            Kind = "code"
	KindImage           Kind = "image"
	KindVideo           Kind = "video"
	KindCallout         Kind = "callout"
	KindBookmark        Kind = "bookmark"
	KindCollectionView  Kind = "collection_view"

	// KindUnknown is the catch-all for type tags outside the closed
	// set. A builder registered under it receives nil content and nil
	// children, letting callers opt in to handling unrecognized blocks.
	KindUnknown Kind = "unknown"
)

// ResolveKind maps a block type to its output kind. topLevel matters
// only for pages: the document root expands (KindPage) while any page
// reached below the root collapses to a link (KindPageLink).
func ResolveKind(t block.Type, topLevel bool) Kind {
	if t.IsHeader() {
		return KindHeader
	}
	switch t {
	case block.TypePage:
		if topLevel {
			return KindPage
		}
		return KindPageLink
	case block.TypeText:
		return KindText
	case block.TypeToggle:
		return KindToggle
	case block.TypeBulletedList:
		return KindBulletedList
	case block.TypeNumberedList:
		return KindNumberedList
	case block.TypeToDo:
		return KindToDo
	case block.TypeTableOfContents:
		return KindTableOfContents
	case block.TypeDivider:
		return KindDivider
	case block.TypeColumnList:
		return KindColumnList
	case block.TypeColumn:
		return KindColumn
	case block.TypeQuote:
		return KindQuote
	case block.TypeEquation:
		return KindEquation
	case block.TypeCode:
		return KindCode
	case block.TypeImage:
		return KindImage
	case block.TypeVideo:
		return KindVideo
	case block.TypeCallout:
		return KindCallout
	case block.TypeBookmark:
		return KindBookmark
	case block.TypeCollectionView:
		return KindCollectionView
	}
	return KindUnknown
}

// recurses reports whether children of a block with this kind are
// transformed. Page links deliberately do not recurse: a nested page is
// a leaf in the output tree.
func (k Kind) recurses() bool {
	switch k {
	case KindToggle, KindPage, KindBulletedList, KindNumberedList,
		KindToDo, KindColumnList, KindColumn:
		return true
	}
	return false
}
