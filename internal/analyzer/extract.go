package analyzer

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"

	"github.com/alexhholmes/vertex"
	"github.com/alexhholmes/vertex/internal/parser"
)

// FieldDescriptor is one attribute field of a vertex type
type FieldDescriptor struct {
	Name      string // Go field name
	Attribute string // name FieldPosition matches
	Count     int    // declared array length
	Scalar    string // resolved Go scalar type
	Type      vertex.ElementType
	Index     int // position among the attribute fields
	Pos       token.Position
}

// ByteSize returns Count * sizeof(scalar)
func (f FieldDescriptor) ByteSize() int {
	return f.Count * f.Type.Size()
}

// Extract turns the declared fields of typeName into attribute descriptors
// in declaration order. The first invalid field aborts extraction.
func Extract(typeName string, fields []parser.Field, reg *TypeRegistry) ([]FieldDescriptor, error) {
	if reg == nil {
		reg = NewTypeRegistry()
	}

	descs := make([]FieldDescriptor, 0, len(fields))
	seen := make(map[string]string, len(fields))

	for i, field := range fields {
		fail := func(err error) error {
			return &FieldError{Type: typeName, Field: field.Name, Pos: field.Pos, Err: err}
		}

		if field.Name == "" || field.Name == "_" {
			return nil, fail(fmt.Errorf("%w: %s", ErrUnnamedField, field.GoType))
		}
		if ReservedNames[field.Name] {
			return nil, fail(fmt.Errorf("%w: rename %s", ErrReservedName, field.Name))
		}

		count, scalar, err := splitArray(field.GoType, reg)
		if err != nil {
			return nil, fail(err)
		}

		typ, err := Classify(reg.ResolveType(scalar))
		if err != nil {
			return nil, fail(err)
		}

		attribute := field.Attribute
		if attribute == "" {
			attribute = field.Name
		}
		if prev, dup := seen[attribute]; dup {
			return nil, fail(fmt.Errorf("%w: %q already used by %s", ErrDuplicateName, attribute, prev))
		}
		seen[attribute] = field.Name

		descs = append(descs, FieldDescriptor{
			Name:      field.Name,
			Attribute: attribute,
			Count:     count,
			Scalar:    reg.ResolveType(scalar),
			Type:      typ,
			Index:     i,
			Pos:       field.Pos,
		})
	}

	return descs, nil
}

// splitArray parses "[N]T" into its length and element type name. Named
// array types declared in the same file ("type Vec3 [3]float32") resolve
// to their definition first.
func splitArray(goType string, reg *TypeRegistry) (int, string, error) {
	expr, err := goparser.ParseExpr(reg.ResolveType(goType))
	if err != nil {
		return 0, "", fmt.Errorf("%w, got %s", ErrNotArray, goType)
	}

	array, ok := expr.(*ast.ArrayType)
	if !ok || array.Len == nil {
		return 0, "", fmt.Errorf("%w, got %s", ErrNotArray, goType)
	}
	if _, ok := array.Len.(*ast.Ellipsis); ok {
		return 0, "", fmt.Errorf("%w, got %s", ErrNotArray, goType)
	}

	count, err := reg.EvalLength(types.ExprString(array.Len))
	if err != nil {
		return 0, "", err
	}

	return count, types.ExprString(array.Elt), nil
}
