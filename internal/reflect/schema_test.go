package reflect

import "testing"

type fakeBuffer struct {
	name   string
	number int64
}

func (b *fakeBuffer) Get(field string) (any, bool) {
	switch field {
	case "name":
		return b.name, true
	case "number":
		return b.number, true
	default:
		return nil, false
	}
}

func (b *fakeBuffer) Update(changes map[string]any) error {
	if v, ok := changes["name"]; ok {
		b.name = v.(string)
	}
	return nil
}

func bufferSchemaFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "name", Type: TypeString, Writable: true},
		{Name: "number", Type: TypeInteger, Writable: false},
	}
}

func TestHdataGetKnownField(t *testing.T) {
	r := New()
	r.HdataNew("buffer", bufferSchemaFields())
	b := &fakeBuffer{name: "core", number: 1}

	v, err := r.HdataGet("buffer", b, "name")
	if err != nil || v != "core" {
		t.Fatalf("HdataGet(name) = %v, %v", v, err)
	}
}

func TestHdataGetUnknownFieldErrors(t *testing.T) {
	r := New()
	r.HdataNew("buffer", bufferSchemaFields())
	b := &fakeBuffer{}
	if _, err := r.HdataGet("buffer", b, "nope"); err == nil {
		t.Fatal("expected error for undeclared field")
	}
}

func TestHdataUpdateDropsNonWritableFields(t *testing.T) {
	r := New()
	r.HdataNew("buffer", bufferSchemaFields())
	b := &fakeBuffer{name: "core", number: 1}

	err := r.HdataUpdate("buffer", b, map[string]any{"name": "renamed", "number": int64(99)})
	if err != nil {
		t.Fatalf("HdataUpdate: %v", err)
	}
	if b.name != "renamed" {
		t.Fatalf("name = %q, want renamed", b.name)
	}
	if b.number != 1 {
		t.Fatalf("number = %d, want unchanged 1 (not writable)", b.number)
	}
}

func TestInfolistRoundTrip(t *testing.T) {
	il := NewInfolist()
	il.NewItem().SetString("name", "core").SetInteger("number", 1)
	il.NewItem().SetString("name", "status").SetInteger("number", 2)

	if len(il.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(il.Items))
	}
	v, ok := il.Items[0].Get("name")
	if !ok || v != "core" {
		t.Fatalf("Items[0].Get(name) = %v, %v", v, ok)
	}
}
