package transform

import "github.com/notewerk/blocktree/pkg/block"

// Builder constructs one output node from a block's extracted content
// and its already-transformed children. content is nil for kinds without
// a payload and for KindUnknown; children is nil for kinds that do not
// recurse.
type Builder[T any] func(id string, content Content, children []T) T

// Rules maps output kinds to builders. It is the engine's only extension
// point: a kind with no entry yields no output node for matching blocks
// (a silent skip, not an error), and the skip propagates upward as a
// filtered-out child.
type Rules[T any] map[Kind]Builder[T]

// Transform walks the graph from rootID and builds an output tree by
// invoking the matching rule for every visited block.
//
// The boolean result is false when rootID is absent from the graph or no
// rule is registered for the root's kind; absence of a block is a valid
// terminal case throughout, never an error.
//
// Traversal follows each block's content list. Children of page blocks
// below the root are not visited: nested pages become KindPageLink
// leaves. Children whose transform yields no output (missing block,
// unregistered kind) are dropped from the children slice passed to the
// builder. Children of a block whose own kind is unregistered are still
// computed, then discarded with it.
//
// Transform returns *CyclicGraphError when a block is reachable from
// itself, and *MalformedBlockError when a variant-required field is
// absent (bookmark link). The graph is never mutated.
func Transform[T any](g block.Graph, rootID string, rules Rules[T], env *Env) (T, bool, error) {
	w := &walker[T]{
		graph:    g,
		rules:    rules,
		env:      env.fill(),
		visiting: make(map[string]bool),
	}
	return w.walk(rootID, true)
}

type walker[T any] struct {
	graph    block.Graph
	rules    Rules[T]
	env      Env
	visiting map[string]bool // IDs on the current descent path
}

func (w *walker[T]) walk(id string, topLevel bool) (T, bool, error) {
	var zero T

	b, ok := w.graph.Block(id)
	if !ok {
		return zero, false, nil
	}
	if w.visiting[id] {
		return zero, false, &CyclicGraphError{ID: id}
	}
	w.visiting[id] = true
	defer delete(w.visiting, id)

	kind := ResolveKind(b.Type, topLevel)

	content, err := w.extract(b, kind)
	if err != nil {
		return zero, false, err
	}

	// Children are computed before the rule lookup so an unregistered
	// kind still walks (and validates) its subtree.
	var children []T
	if kind.recurses() {
		for _, childID := range b.ContentIDs {
			child, ok, err := w.walk(childID, false)
			if err != nil {
				return zero, false, err
			}
			if ok {
				children = append(children, child)
			}
		}
	}

	rule, ok := w.rules[kind]
	if !ok {
		return zero, false, nil
	}
	return rule(b.ID, content, children), true, nil
}

// extract produces the kind-specific payload for b. Kinds without a
// payload (toggle-less variants, dividers, unknown types) yield nil.
func (w *walker[T]) extract(b *block.Block, kind Kind) (Content, error) {
	f := b.FormatOrZero()

	switch kind {
	case KindText:
		return TextContent{
			Text:  w.env.TextContent(b.Title()),
			Color: f.BlockColor,
		}, nil

	case KindToggle:
		return ToggleContent{Text: w.env.TextContent(b.Title())}, nil

	case KindPage:
		return PageContent{
			Title: w.env.TextContent(b.Title()),
			Icon:  f.PageIcon,
		}, nil

	case KindPageLink:
		return PageLinkContent{
			Title: b.Properties.First(block.PropTitle),
			Icon:  f.PageIcon,
		}, nil

	case KindBulletedList, KindNumberedList:
		return ListContent{
			Text:       w.env.TextContent(b.Title()),
			StartIndex: w.env.FindListIndex(b.ID, w.graph),
			Color:      f.BlockColor,
		}, nil

	case KindToDo:
		return ToDoContent{
			Text:    w.env.TextContent(b.Title()),
			Checked: b.Properties.First(block.PropChecked) == "Yes",
		}, nil

	case KindHeader:
		return HeaderContent{
			Text:  w.env.TextContent(b.Title()),
			Level: b.Type.HeaderLevel(),
		}, nil

	case KindTableOfContents:
		return w.extractTOC(b), nil

	case KindQuote:
		return QuoteContent{
			Text:  w.env.TextContent(b.Title()),
			Color: f.BlockColor,
		}, nil

	case KindCallout:
		return CalloutContent{
			Text:  w.env.TextContent(b.Title()),
			Color: f.BlockColor,
			Icon:  f.PageIcon,
		}, nil

	case KindBookmark:
		link := b.Properties.First(block.PropLink)
		if link == "" {
			return nil, &MalformedBlockError{ID: b.ID, Field: block.PropLink}
		}
		title := b.Title().TextContent()
		return BookmarkContent{
			Link:  link,
			Title: title,
			// Upstream derives the description from the title
			// property too; preserved as-is.
			Description: title,
			Favicon:     f.BookmarkIcon,
			Cover:       f.BookmarkCover,
			Color:       f.BlockColor,
		}, nil

	case KindImage, KindVideo:
		src := f.DisplaySource
		if src == "" {
			src = b.Properties.First(block.PropSource)
		}
		return MediaContent{
			Src:         w.env.MapImageURL(src, b),
			Caption:     w.env.TextContent(b.Properties.Get(block.PropCaption)),
			Width:       f.BlockWidth,
			Height:      f.BlockHeight,
			AspectRatio: f.BlockAspectRatio,
			FullWidth:   f.BlockFullWidth,
			PageWidth:   f.BlockPageWidth,
		}, nil

	case KindCode:
		return CodeContent{
			Text:     w.env.TextContent(b.Title()),
			Language: b.Properties.First(block.PropLanguage),
		}, nil

	case KindEquation:
		// Raw first value, not flattened.
		return EquationContent{Expression: b.Properties.First(block.PropTitle)}, nil

	case KindColumn:
		ratio := 0.5
		if f.ColumnRatio != nil {
			ratio = *f.ColumnRatio
		}
		return ColumnContent{Ratio: ratio}, nil

	case KindCollectionView:
		return CollectionViewContent{
			CollectionID: b.CollectionID,
			ViewIDs:      b.ViewIDs,
		}, nil
	}

	// KindDivider, KindColumnList, KindUnknown: no payload.
	return nil, nil
}

// extractTOC builds the table-of-contents payload. The entries come from
// the containing top-level page, not from the toc block itself: its
// direct children are scanned for header-family blocks in order, and
// everything else is filtered out.
func (w *walker[T]) extractTOC(b *block.Block) TOCContent {
	page := w.env.TopLevelPage(b, w.graph)
	if page == nil {
		return TOCContent{}
	}

	var entries []TOCEntry
	for _, childID := range page.ContentIDs {
		child, ok := w.graph.Block(childID)
		if !ok || !child.Type.IsHeader() {
			continue
		}
		entries = append(entries, TOCEntry{
			ID:    child.ID,
			Level: child.Type.HeaderLevel(),
			Text:  w.env.TextContent(child.Title()).TextContent(),
		})
	}
	return TOCContent{Entries: entries}
}
