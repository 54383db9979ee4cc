package model

// ItemKind is the rustdoc page category a documentation path resolved to.
type ItemKind string

const (
	ItemModule   ItemKind = "module"
	ItemFunction ItemKind = "function"
	ItemStruct   ItemKind = "struct"
	ItemTrait    ItemKind = "trait"
	ItemEnum     ItemKind = "enum"
	ItemMacro    ItemKind = "macro"
)

// DocEntry is a resolved docs.rs (or doc.rust-lang.org) documentation item.
type DocEntry struct {
	CrateName    string   `json:"crate_name"`
	ItemPath     string   `json:"item_path"` // "::"-separated, as the user typed it
	Kind         ItemKind `json:"kind"`
	CanonicalURL string   `json:"canonical_url"`
	Title        string   `json:"title"`   // rustdoc page title, may be empty
	Summary      string   `json:"summary"` // first docblock paragraph, may be empty
}
