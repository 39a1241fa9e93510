package block

import "github.com/google/uuid"

// New creates a block of the given type with a generated UUID. Use the
// With* helpers to attach content, then wire it into a [Graph] with
// [Graph.Add] or [Graph.AppendChild].
func New(t Type) *Block {
	return &Block{ID: uuid.NewString(), Type: t}
}

// WithID overrides the generated ID. Handy for fixtures that need stable
// identifiers.
func (b *Block) WithID(id string) *Block {
	b.ID = id
	return b
}

// WithTitle sets the title property to a single undecorated span.
func (b *Block) WithTitle(text string) *Block {
	return b.WithProperty(PropTitle, Plain(text))
}

// WithProperty sets one property role, allocating the bag when needed.
func (b *Block) WithProperty(role string, rt RichText) *Block {
	if b.Properties == nil {
		b.Properties = Properties{}
	}
	b.Properties[role] = rt
	return b
}

// WithFormat attaches presentation hints.
func (b *Block) WithFormat(f Format) *Block {
	b.Format = &f
	return b
}
