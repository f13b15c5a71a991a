// Package vertex describes how one vertex of a fixed-layout struct is packed
// in a vertex buffer.
//
// Types opt in with a "// @vertex" doc comment and get their Descriptor
// methods from cmd/vertexgen:
//
//	// @vertex
//	type Vertex struct {
//		Position [3]float32
//		Texture  [2]float32
//		Normal   [3]float32
//	}
//
//	//go:generate go run github.com/alexhholmes/vertex/cmd/vertexgen vertex.go
//
// Every field must be a fixed-length array of one of the scalar types listed
// under ElementType. Offsets and the stride are computed once, when the code
// is generated.
package vertex

import "fmt"

// ElementType is the scalar format of one vertex attribute component
type ElementType int

const (
	UnsignedByte  ElementType = iota // uint8, byte
	Byte                             // int8
	UnsignedShort                    // uint16
	Short                            // int16
	Float                            // float32
)

func (t ElementType) String() string {
	switch t {
	case UnsignedByte:
		return "UnsignedByte"
	case Byte:
		return "Byte"
	case UnsignedShort:
		return "UnsignedShort"
	case Short:
		return "Short"
	case Float:
		return "Float"
	default:
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
}

// Size returns the byte width of one scalar of this type, or 0 if t is not
// a known element type.
func (t ElementType) Size() int {
	switch t {
	case UnsignedByte, Byte:
		return 1
	case UnsignedShort, Short:
		return 2
	case Float:
		return 4
	default:
		return 0
	}
}

// Valid reports whether t is one of the declared element types
func (t ElementType) Valid() bool {
	return t >= UnsignedByte && t <= Float
}

// ParseElementType returns the element type whose String form is name
func ParseElementType(name string) (ElementType, error) {
	for t := UnsignedByte; t <= Float; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown element type: %s", name)
}

// Descriptor describes the attributes of one vertex struct. Attribute
// indices follow field declaration order.
//
// ElementSize, ElementType and ElementPointer panic with an error wrapping
// ErrInvalidIndex when index is out of range. FieldPosition panics with an
// error wrapping ErrInvalidFieldName when no attribute has that name.
type Descriptor interface {
	// ElementSize returns the number of components of attribute index.
	ElementSize(index int) int32
	// ElementType returns the component type of attribute index.
	ElementType(index int) ElementType
	// ElementStride returns the byte size of one vertex.
	ElementStride() int32
	// ElementPointer returns the byte offset of attribute index from the
	// start of the vertex.
	ElementPointer(index int) uintptr
	// FieldPosition returns the index of the attribute called name.
	FieldPosition(name string) int
}

// Layout is a Descriptor that also reports how many attributes it has
type Layout interface {
	Descriptor
	ElementCount() int
}

// Attribute is one row of a descriptor table
type Attribute struct {
	Name   string
	Size   int32
	Type   ElementType
	Offset uintptr
}

// ByteSize returns the number of bytes the attribute occupies
func (a Attribute) ByteSize() uintptr {
	return uintptr(a.Size) * uintptr(a.Type.Size())
}

// Attributes snapshots every attribute of l in index order.
// Attribute names are not part of the Descriptor contract and are left empty.
func Attributes(l Layout) []Attribute {
	attrs := make([]Attribute, l.ElementCount())
	for i := range attrs {
		attrs[i] = Attribute{
			Size:   l.ElementSize(i),
			Type:   l.ElementType(i),
			Offset: l.ElementPointer(i),
		}
	}
	return attrs
}
