// Package encode builds the structured records handed back to the host
// collector. A record is an ordered list of typed fields keyed by atom
// kind; field order within a record is part of the wire contract and
// must match the kind's schema exactly. The byte-level wire format is
// the host's concern, not this package's.
package encode

import "github.com/okian/atompull/internal/domain/atom"

// Record is an immutable serialized record.
type Record struct {
	kind   atom.Kind
	fields []any
}

// Kind returns the atom kind the record was built for.
func (r Record) Kind() atom.Kind {
	return r.kind
}

// Len returns the number of fields written.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the ordered field values.
func (r Record) Fields() []any {
	out := make([]any, len(r.fields))
	copy(out, r.fields)
	return out
}

// Builder accumulates fields in schema order. Write calls chain; Build
// finalizes the record.
type Builder struct {
	kind   atom.Kind
	fields []any
}

// New starts a record for the given kind.
func New(kind atom.Kind) *Builder {
	return &Builder{kind: kind}
}

// WriteInt appends a 32-bit integer field.
func (b *Builder) WriteInt(v int32) *Builder {
	b.fields = append(b.fields, v)
	return b
}

// WriteLong appends a 64-bit integer field.
func (b *Builder) WriteLong(v int64) *Builder {
	b.fields = append(b.fields, v)
	return b
}

// WriteBool appends a boolean field.
func (b *Builder) WriteBool(v bool) *Builder {
	b.fields = append(b.fields, v)
	return b
}

// WriteString appends a string field.
func (b *Builder) WriteString(v string) *Builder {
	b.fields = append(b.fields, v)
	return b
}

// Build finalizes the record. The builder must not be reused after.
func (b *Builder) Build() Record {
	return Record{kind: b.kind, fields: b.fields}
}
