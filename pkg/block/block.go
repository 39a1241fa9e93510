package block

// Type is the discriminator tag of a block record. The set of values is
// closed: it mirrors the block variants emitted by the upstream document
// service. Unlisted strings are carried through unchanged so readers can
// decide how to treat them.
type Type string

// Block type tags.
const (
	TypeText            Type = "text"
	TypeToggle          Type = "toggle"
	TypePage            Type = "page"
	TypeBulletedList    Type = "bulleted_list"
	TypeNumberedList    Type = "numbered_list"
	TypeHeader          Type = "header"
	TypeSubHeader       Type = "sub_header"
	TypeSubSubHeader    Type = "sub_sub_header"
	TypeToDo            Type = "to_do"
	TypeTableOfContents Type = "table_of_contents"
	TypeDivider         Type = "divider"
	TypeColumnList      Type = "column_list"
	TypeColumn          Type = "column"
	TypeQuote           Type = "quote"
	TypeEquation        Type = "equation"
	TypeCode            Type = "code"
	TypeImage           Type = "image"
	TypeVideo           Type = "video"
	TypeCallout         Type = "callout"
	TypeBookmark        Type = "bookmark"
	TypeCollectionView  Type = "collection_view"
)

// IsHeader reports whether the type belongs to the header family
// (header, sub_header, sub_sub_header).
func (t Type) IsHeader() bool {
	return t == TypeHeader || t == TypeSubHeader || t == TypeSubSubHeader
}

// IsList reports whether the type is one of the list variants.
func (t Type) IsList() bool {
	return t == TypeBulletedList || t == TypeNumberedList
}

// HeaderLevel returns 1, 2 or 3 for the header family, and 0 for any
// other type.
func (t Type) HeaderLevel() int {
	switch t {
	case TypeHeader:
		return 1
	case TypeSubHeader:
		return 2
	case TypeSubSubHeader:
		return 3
	}
	return 0
}

// Property roles used by the block variants. Properties is an open bag,
// but these are the roles the engine reads.
const (
	PropTitle    = "title"
	PropCaption  = "caption"
	PropLink     = "link"
	PropChecked  = "checked"
	PropLanguage = "language"
	PropSource   = "source"
)

// Properties maps a property role to its rich-text value.
type Properties map[string]RichText

// Get returns the rich text stored under the given role, or nil when the
// role is absent.
func (p Properties) Get(role string) RichText {
	if p == nil {
		return nil
	}
	return p[role]
}

// First returns the plain text of the first span stored under role, or ""
// when the role is absent or empty. Scalar-valued roles (link, checked,
// language, source) are stored as a single span, so First is the way to
// read them.
func (p Properties) First(role string) string {
	rt := p.Get(role)
	if len(rt) == 0 {
		return ""
	}
	return rt[0].Text
}

// Format carries the presentation hints attached to a block. All fields
// are optional; the zero value means the hint is unset.
type Format struct {
	BlockColor       string   `json:"block_color,omitempty"`
	PageIcon         string   `json:"page_icon,omitempty"`
	BookmarkIcon     string   `json:"bookmark_icon,omitempty"`
	BookmarkCover    string   `json:"bookmark_cover,omitempty"`
	BlockWidth       float64  `json:"block_width,omitempty"`
	BlockHeight      float64  `json:"block_height,omitempty"`
	BlockAspectRatio float64  `json:"block_aspect_ratio,omitempty"`
	BlockFullWidth   bool     `json:"block_full_width,omitempty"`
	BlockPageWidth   bool     `json:"block_page_width,omitempty"`
	DisplaySource    string   `json:"display_source,omitempty"`
	ColumnRatio      *float64 `json:"column_ratio,omitempty"`
}

// Block is a single record in a block graph. ContentIDs lists the IDs of
// direct children in document order; a listed ID is allowed to be absent
// from the graph (deleted or inaccessible block), which readers treat as
// a terminal case rather than an error.
//
// CollectionID and ViewIDs are populated only for collection_view blocks.
type Block struct {
	ID           string     `json:"id"`
	Type         Type       `json:"type"`
	Properties   Properties `json:"properties,omitempty"`
	Format       *Format    `json:"format,omitempty"`
	ContentIDs   []string   `json:"content,omitempty"`
	ParentID     string     `json:"parent_id,omitempty"`
	CollectionID string     `json:"collection_id,omitempty"`
	ViewIDs      []string   `json:"view_ids,omitempty"`
}

// Title returns the block's title property.
func (b *Block) Title() RichText { return b.Properties.Get(PropTitle) }

// FormatOrZero returns the block's format hints, or a zero Format when
// none are attached. Useful to read hints without nil checks.
func (b *Block) FormatOrZero() Format {
	if b.Format == nil {
		return Format{}
	}
	return *b.Format
}
