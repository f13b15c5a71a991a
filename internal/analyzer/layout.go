package analyzer

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/alexhholmes/vertex"
	"github.com/alexhholmes/vertex/internal/parser"
)

// Attribute is a field descriptor placed at its byte offset
type Attribute struct {
	FieldDescriptor
	Offset int
}

// VertexLayout is the analyzed layout of one vertex type
type VertexLayout struct {
	TypeName   string
	Attributes []Attribute
	Stride     int
	Align      int
}

// Analyze validates an annotated struct and computes its attribute offsets
func Analyze(decl *parser.TypeDecl, registry *TypeRegistry) (*VertexLayout, error) {
	if decl == nil {
		return nil, fmt.Errorf("type declaration is nil")
	}
	if len(decl.Fields) == 0 {
		return nil, &FieldError{Type: decl.Name, Pos: decl.Pos, Err: ErrNoFields}
	}

	// Phase 1: validate and classify fields
	fields, err := Extract(decl.Name, decl.Fields, registry)
	if err != nil {
		return nil, err
	}

	// Phase 2: offsets and stride
	attrs, stride, align, err := Offsets(decl.Name, fields)
	if err != nil {
		return nil, err
	}

	// Phase 3: annotation assertions
	if decl.Anno != nil && decl.Anno.Stride != 0 && decl.Anno.Stride != stride {
		return nil, &FieldError{
			Type: decl.Name,
			Pos:  decl.Pos,
			Err:  fmt.Errorf("%w: annotation says %d, fields add up to %d", ErrStrideMismatch, decl.Anno.Stride, stride),
		}
	}

	return &VertexLayout{
		TypeName:   decl.Name,
		Attributes: attrs,
		Stride:     stride,
		Align:      align,
	}, nil
}

// AnalyzeFile analyzes every annotated type of a parsed file, in source
// order. The first failing type aborts the whole file.
func AnalyzeFile(file *parser.File) ([]*VertexLayout, error) {
	registry := RegistryFor(file)

	layouts := make([]*VertexLayout, 0, len(file.Types))
	for _, decl := range file.Types {
		layout, err := Analyze(decl, registry)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// Offsets places each field directly after the previous one: the first at
// offset 0, every other at the previous offset plus the previous byte size.
// A field whose unpadded offset is misaligned for its scalar is an error,
// since the compiler would pad it and the offsets would no longer match
// memory. The stride is the struct size the compiler computes.
func Offsets(typeName string, fields []FieldDescriptor) ([]Attribute, int, int, error) {
	attrs := make([]Attribute, 0, len(fields))
	offset, maxAlign := 0, 1

	for _, f := range fields {
		align := f.Type.Size()
		if align == 0 {
			return nil, 0, 0, &FieldError{Type: typeName, Field: f.Name, Pos: f.Pos, Err: fmt.Errorf("%v %w", f.Type, ErrUnsupportedType)}
		}
		if offset%align != 0 {
			return nil, 0, 0, &FieldError{
				Type:  typeName,
				Field: f.Name,
				Pos:   f.Pos,
				Err: fmt.Errorf("%w: offset %d is not %d-byte aligned (%s precedes it); reorder fields by scalar size",
					ErrPadding, offset, align, describePrev(attrs)),
			}
		}

		attrs = append(attrs, Attribute{FieldDescriptor: f, Offset: offset})
		offset += f.ByteSize()
		maxAlign = max(maxAlign, align)

		if offset > math.MaxInt32 {
			return nil, 0, 0, &FieldError{
				Type:  typeName,
				Field: f.Name,
				Pos:   f.Pos,
				Err:   fmt.Errorf("%w: vertex exceeds %d bytes", ErrInvalidLength, math.MaxInt32),
			}
		}
	}

	// gc gives a trailing zero-size field its own byte so &v.Last stays inside v
	if n := len(attrs); n > 0 && offset > 0 && attrs[n-1].ByteSize() == 0 {
		offset++
	}

	stride := alignUp(offset, maxAlign)
	if stride > math.MaxInt32 {
		return nil, 0, 0, &FieldError{
			Type: typeName,
			Err:  fmt.Errorf("%w: stride %d exceeds %d bytes", ErrInvalidLength, stride, math.MaxInt32),
		}
	}
	return attrs, stride, maxAlign, nil
}

func describePrev(attrs []Attribute) string {
	if len(attrs) == 0 {
		return "nothing"
	}
	prev := attrs[len(attrs)-1]
	return fmt.Sprintf("%s [%d]%s", prev.Name, prev.Count, prev.Scalar)
}

// alignUp rounds n up to a multiple of align (a power of two)
func alignUp[T constraints.Integer](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

// Lookup returns the attribute index for a name, or -1
func (l *VertexLayout) Lookup(name string) int {
	for i, a := range l.Attributes {
		if a.Attribute == name {
			return i
		}
	}
	return -1
}

// Table converts the layout into a runtime descriptor table
func (l *VertexLayout) Table() (*vertex.Table, error) {
	attrs := make([]vertex.Attribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = vertex.Attribute{
			Name:   a.Attribute,
			Size:   int32(a.Count),
			Type:   a.Type,
			Offset: uintptr(a.Offset),
		}
	}
	return vertex.NewTable(l.TypeName, attrs, int32(l.Stride))
}
