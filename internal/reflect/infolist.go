package reflect

// InfolistField is one name/typed-value pair within an infolist item.
type InfolistField struct {
	Name  string
	Type  FieldType
	Value any
}

// InfolistItem is one row of a flat infolist snapshot, built incrementally
// via its Set* methods: a flat ordered list of name->typed-value entries
// used for one-shot snapshots.
type InfolistItem struct {
	Fields []InfolistField
}

func (it *InfolistItem) set(name string, t FieldType, v any) *InfolistItem {
	it.Fields = append(it.Fields, InfolistField{Name: name, Type: t, Value: v})
	return it
}

// SetInteger appends an integer field.
func (it *InfolistItem) SetInteger(name string, v int64) *InfolistItem {
	return it.set(name, TypeInteger, v)
}

// SetString appends a string field.
func (it *InfolistItem) SetString(name string, v string) *InfolistItem {
	return it.set(name, TypeString, v)
}

// SetPointer appends an opaque pointer field (identity only, never
// dereferenced by the registry).
func (it *InfolistItem) SetPointer(name string, v any) *InfolistItem {
	return it.set(name, TypePointer, v)
}

// Get returns the value of a named field within this item.
func (it *InfolistItem) Get(name string) (any, bool) {
	for _, f := range it.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Infolist is an ordered sequence of snapshot items.
type Infolist struct {
	Items []*InfolistItem
}

// NewInfolist returns an empty infolist.
func NewInfolist() *Infolist { return &Infolist{} }

// NewItem appends and returns a fresh item to build via its Set* methods.
func (il *Infolist) NewItem() *InfolistItem {
	it := &InfolistItem{}
	il.Items = append(il.Items, it)
	return it
}
