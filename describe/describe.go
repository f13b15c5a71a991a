// Package describe builds vertex descriptor tables at run time by reflecting
// over a struct type. It applies the same rules as vertexgen: fields are
// arrays of the five supported scalars, spelled directly or through named
// types of the struct's own package. Named types from other packages are
// rejected, as vertexgen cannot see their definitions.
//
// Reflection cannot tell which file of a package declares a named type, so
// a struct using a type from a sibling file is accepted here while vertexgen,
// which resolves names within the annotated file only, rejects it.
package describe

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/alexhholmes/vertex"
	"github.com/alexhholmes/vertex/internal/analyzer"
	"github.com/alexhholmes/vertex/internal/parser"
)

var (
	ErrNotStruct = errors.New("not a struct type")
	// ErrLayoutMismatch means the computed offsets disagree with the
	// compiler's; it should not happen for types that pass analysis
	ErrLayoutMismatch = errors.New("layout does not match the compiled struct")
)

type entry struct {
	table *vertex.Table
	err   error
}

var cache sync.Map // reflect.Type -> entry

// Of returns the descriptor table of T
func Of[T any]() (*vertex.Table, error) {
	return Type(reflect.TypeFor[T]())
}

// Must is Of that panics on error, for package-level variables
func Must[T any]() *vertex.Table {
	t, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return t
}

// Type returns the descriptor table of a struct type. Results, including
// errors, are cached per type.
func Type(t reflect.Type) (*vertex.Table, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	if e, ok := cache.Load(t); ok {
		return e.(entry).table, e.(entry).err
	}

	table, err := build(t)
	e, _ := cache.LoadOrStore(t, entry{table: table, err: err})
	return e.(entry).table, e.(entry).err
}

func build(t reflect.Type) (*vertex.Table, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", t, ErrNotStruct)
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	decl := &parser.TypeDecl{Name: name, Anno: &parser.TypeAnnotation{}}
	for i := 0; i < t.NumField(); i++ {
		f, err := field(t.PkgPath(), t.Field(i))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, t.Field(i).Name, err)
		}
		decl.Fields = append(decl.Fields, f)
	}

	layout, err := analyzer.Analyze(decl, analyzer.NewTypeRegistry())
	if err != nil {
		return nil, err
	}

	for i, a := range layout.Attributes {
		if got := t.Field(i).Offset; got != uintptr(a.Offset) {
			return nil, fmt.Errorf("%s.%s: %w: offset %d, computed %d", name, a.Name, ErrLayoutMismatch, got, a.Offset)
		}
	}
	if got := t.Size(); got != uintptr(layout.Stride) {
		return nil, fmt.Errorf("%s: %w: size %d, computed stride %d", name, ErrLayoutMismatch, got, layout.Stride)
	}

	return layout.Table()
}

// field describes a struct field the way the parser would have seen it in
// source. Named types of pkg are spelled by their definition, as the
// generator resolves them; named types of any other package keep their
// qualified name and fail classification.
func field(pkg string, sf reflect.StructField) (parser.Field, error) {
	f := parser.Field{Name: sf.Name, GoType: spell(pkg, sf.Type)}
	if sf.Anonymous {
		f.Name = ""
	}

	if value, ok := sf.Tag.Lookup(parser.DefaultTag); ok {
		tag, err := parser.ParseTag(value)
		if err != nil {
			return parser.Field{}, err
		}
		f.Attribute = tag.Name
	}

	return f, nil
}

func spell(pkg string, t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" && t.PkgPath() != pkg {
		return t.String()
	}
	if t.Kind() == reflect.Array {
		return fmt.Sprintf("[%d]%s", t.Len(), spell(pkg, t.Elem()))
	}
	if t.Kind() <= reflect.Complex128 {
		return t.Kind().String()
	}
	return t.String()
}
