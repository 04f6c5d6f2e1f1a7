package snapshot

// SchemaVersion is bumped whenever the encoded layout changes.
const SchemaVersion uint16 = 1

// Document is the encoded form of one unit.
type Document struct {
	Schema   uint16         `msgpack:"schema"`
	Source   string         `msgpack:"source,omitempty"`
	Scopes   []ScopeEntry   `msgpack:"scopes"`
	Nodes    []Node         `msgpack:"nodes"`
	Bindings []BindingEntry `msgpack:"bindings"`
}

// ScopeEntry names one scope referenced by the document.
type ScopeEntry struct {
	ID   uint32 `msgpack:"id"`
	Name string `msgpack:"name"`
}

// Node is one syntax value.
type Node struct {
	Kind   uint8          `msgpack:"k"`
	Value  string         `msgpack:"v,omitempty"`
	Str    string         `msgpack:"s,omitempty"`
	File   uint32         `msgpack:"f,omitempty"`
	Start  uint32         `msgpack:"b,omitempty"`
	End    uint32         `msgpack:"e,omitempty"`
	Line   uint32         `msgpack:"l,omitempty"` // 0: no location
	Col    uint32         `msgpack:"c,omitempty"`
	Group  bool           `msgpack:"grp,omitempty"`
	Nested []Node         `msgpack:"g,omitempty"`
	Items  []TemplateItem `msgpack:"t,omitempty"`
	Scopes []PhaseScopes  `msgpack:"sc,omitempty"`
}

// TemplateItem is one template element.
type TemplateItem struct {
	Text   string `msgpack:"text,omitempty"`
	Interp *Node  `msgpack:"interp,omitempty"`
}

// PhaseScopes is the scope sequence recorded for one phase.
type PhaseScopes struct {
	Phase int      `msgpack:"p"`
	IDs   []uint32 `msgpack:"ids"`
}

// BindingEntry is one binding record.
type BindingEntry struct {
	Name     string   `msgpack:"name"`
	Scopes   []uint32 `msgpack:"scopes"`
	Symbol   string   `msgpack:"sym"`
	SymbolID uint32   `msgpack:"sym_id"`
	Alias    *Node    `msgpack:"alias,omitempty"`
}
