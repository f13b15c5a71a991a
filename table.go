package vertex

import "fmt"

// Table is an immutable Layout backed by a precomputed attribute slice.
// It is safe for concurrent use.
type Table struct {
	name   string
	attrs  []Attribute
	index  map[string]int
	stride int32
}

// NewTable builds a table for the vertex type called name. attrs must be in
// declaration order with unique, non-empty names.
func NewTable(name string, attrs []Attribute, stride int32) (*Table, error) {
	if stride < 0 {
		return nil, fmt.Errorf("%s: negative stride %d", name, stride)
	}

	t := &Table{
		name:   name,
		attrs:  make([]Attribute, len(attrs)),
		index:  make(map[string]int, len(attrs)),
		stride: stride,
	}
	copy(t.attrs, attrs)

	for i, a := range t.attrs {
		if a.Name == "" {
			return nil, fmt.Errorf("%s: attribute %d has no name", name, i)
		}
		if _, dup := t.index[a.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate attribute %q", name, a.Name)
		}
		if !a.Type.Valid() {
			return nil, fmt.Errorf("%s: attribute %q has invalid type %v", name, a.Name, a.Type)
		}
		if a.Size < 0 {
			return nil, fmt.Errorf("%s: attribute %q has negative size %d", name, a.Name, a.Size)
		}
		if end := a.Offset + a.ByteSize(); end > uintptr(stride) {
			return nil, fmt.Errorf("%s: attribute %q ends at %d, past stride %d", name, a.Name, end, stride)
		}
		t.index[a.Name] = i
	}

	return t, nil
}

// Name returns the vertex type name the table describes
func (t *Table) Name() string { return t.name }

func (t *Table) ElementCount() int { return len(t.attrs) }

func (t *Table) ElementSize(index int) int32 { return t.at(index).Size }

func (t *Table) ElementType(index int) ElementType { return t.at(index).Type }

func (t *Table) ElementStride() int32 { return t.stride }

func (t *Table) ElementPointer(index int) uintptr { return t.at(index).Offset }

func (t *Table) FieldPosition(name string) int {
	i, ok := t.index[name]
	if !ok {
		panic(InvalidFieldName(t.name, name))
	}
	return i
}

// Attributes returns a copy of the table rows, names included
func (t *Table) Attributes() []Attribute {
	out := make([]Attribute, len(t.attrs))
	copy(out, t.attrs)
	return out
}

func (t *Table) at(index int) Attribute {
	if index < 0 || index >= len(t.attrs) {
		panic(InvalidIndex(t.name, index))
	}
	return t.attrs[index]
}
