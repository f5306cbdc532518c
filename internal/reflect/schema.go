// Package reflect implements the plugin-facing reflection surface: a
// schema registry describing each entity kind's fields (hdata), typed
// get/update against live entities, and flat infolist snapshots. Despite
// the name this package does not use the standard library's reflect
// package: every entity opts in explicitly via the Accessor/Updater
// interfaces, so only fields flagged writable can ever be set.
package reflect

import (
	"fmt"
)

// FieldType is one of the wire types a schema field can carry.
type FieldType int

const (
	TypeInteger FieldType = iota
	TypeLongLong
	TypeString
	TypePointer
	TypeHashtable
	TypeTime
)

// FieldDescriptor describes one field of an entity kind's schema.
type FieldDescriptor struct {
	Name             string
	Type             FieldType
	ArraySizeExpr    string // e.g. "lines_count", empty if scalar
	LinkedEntityKind string // non-empty if Type == TypePointer into another kind
	Writable         bool
}

// Schema is the ordered field list for one entity kind.
type Schema struct {
	Kind   string
	Fields []FieldDescriptor
}

func (s *Schema) field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Accessor is implemented by entities that want to be readable through
// hdata_get.
type Accessor interface {
	Get(field string) (any, bool)
}

// Updater is implemented by entities that additionally accept writes
// through hdata_update; Update receives only the subset of changes the
// registry already confirmed are declared writable.
type Updater interface {
	Accessor
	Update(changes map[string]any) error
}

// Registry is the process-wide hdata schema registry, letting core code
// introspect entity kinds instead of hard-coding plugin dumps.
type Registry struct {
	schemas map[string]*Schema
}

// New returns an empty schema registry.
func New() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// HdataNew registers (or replaces) the schema for kind.
func (r *Registry) HdataNew(kind string, fields []FieldDescriptor) *Schema {
	s := &Schema{Kind: kind, Fields: fields}
	r.schemas[kind] = s
	return s
}

// Schema returns the registered schema for kind, if any.
func (r *Registry) Schema(kind string) (*Schema, bool) {
	s, ok := r.schemas[kind]
	return s, ok
}

// HdataGet reads field off ptr, first checking kind's schema declares it.
func (r *Registry) HdataGet(kind string, ptr Accessor, field string) (any, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("reflect: unknown entity kind %q", kind)
	}
	if _, ok := s.field(field); !ok {
		return nil, fmt.Errorf("reflect: %s has no field %q", kind, field)
	}
	v, ok := ptr.Get(field)
	if !ok {
		return nil, fmt.Errorf("reflect: %s.%s not readable on this instance", kind, field)
	}
	return v, nil
}

// HdataUpdate writes changes to ptr, dropping any key not flagged writable
// in kind's schema.
func (r *Registry) HdataUpdate(kind string, ptr Updater, changes map[string]any) error {
	s, ok := r.schemas[kind]
	if !ok {
		return fmt.Errorf("reflect: unknown entity kind %q", kind)
	}
	filtered := make(map[string]any, len(changes))
	for k, v := range changes {
		f, ok := s.field(k)
		if !ok || !f.Writable {
			continue
		}
		filtered[k] = v
	}
	if len(filtered) == 0 {
		return nil
	}
	return ptr.Update(filtered)
}
