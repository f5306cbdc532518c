package bufstore

import "github.com/termchat/termchat-core/internal/reflect"

// Get implements reflect.Accessor, giving plugin-facing hdata_get a single
// typed entry point over the existing GetInteger/GetString property
// tables, so core code can introspect a buffer instead of hard-coding
// plugin dumps.
func (b *Buffer) Get(field string) (any, bool) {
	if v, ok := b.GetInteger(field); ok {
		return v, true
	}
	if v, ok := b.GetString(field); ok {
		return v, true
	}
	return nil, false
}

// RegisterSchema declares the "buffer" hdata kind on r, field by field, so
// a plugin can hdata_get_var_info("buffer", "number") before ever touching
// a live buffer.
func RegisterSchema(r *reflect.Registry) {
	r.HdataNew("buffer", []reflect.FieldDescriptor{
		{Name: "id", Type: reflect.TypeString},
		{Name: "number", Type: reflect.TypeInteger},
		{Name: "full_name", Type: reflect.TypeString},
		{Name: "short_name", Type: reflect.TypeString},
		{Name: "type", Type: reflect.TypeInteger},
		{Name: "notify", Type: reflect.TypeInteger, Writable: true},
		{Name: "hidden", Type: reflect.TypeInteger, Writable: true},
		{Name: "zoomed", Type: reflect.TypeInteger},
		{Name: "title", Type: reflect.TypeString, Writable: true},
		{Name: "modes", Type: reflect.TypeString, Writable: true},
		{Name: "input", Type: reflect.TypeString},
		{Name: "num_history", Type: reflect.TypeInteger},
	})
}

// Infolist builds a flat infolist snapshot of every buffer in number
// order, a one-shot dump suitable for e.g. `/buffer list`.
func (s *Store) Infolist() *reflect.Infolist {
	il := reflect.NewInfolist()
	for _, b := range s.All() {
		item := il.NewItem()
		item.SetString("full_name", b.FullName())
		item.SetInteger("number", int64(b.Number))
		item.SetString("short_name", b.ShortName)
		item.SetInteger("hidden", boolToInt(b.Hidden))
		item.SetPointer("pointer", b)
	}
	return il
}
