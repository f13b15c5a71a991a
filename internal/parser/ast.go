package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Options selects the annotation marker and struct tag key
type Options struct {
	Annotation string
	Tag        string
}

func DefaultOptions() Options {
	return Options{Annotation: DefaultAnnotation, Tag: DefaultTag}
}

// File is the result of parsing one Go source file
type File struct {
	Path    string
	Package string
	Types   []*TypeDecl

	// Consts maps file-level constant names to their value expressions.
	// Aliases maps file-level type names to the type they are declared as.
	// Both are used to resolve array lengths, array types and scalar types.
	Consts  map[string]string
	Aliases map[string]string

	// Names holds every package-level identifier the file declares
	Names map[string]bool
}

// TypeDecl represents a struct annotated for descriptor generation
type TypeDecl struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field
	Pos    token.Position
}

// Field is one declared struct field, valid or not.
// Embedded fields have an empty Name.
type Field struct {
	Name      string
	Attribute string // tag name, empty if untagged
	GoType    string
	Pos       token.Position
}

// ParseFile parses a Go source file and extracts types with the annotation
func ParseFile(filename string, opts Options) (*File, error) {
	return ParseSource(filename, nil, opts)
}

// ParseSource is ParseFile for in-memory source; src follows go/parser rules
func ParseSource(filename string, src any, opts Options) (*File, error) {
	if opts.Annotation == "" {
		opts.Annotation = DefaultAnnotation
	}
	if opts.Tag == "" {
		opts.Tag = DefaultTag
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	out := &File{
		Path:    filename,
		Package: file.Name.Name,
		Consts:  make(map[string]string),
		Aliases: make(map[string]string),
		Names:   declaredNames(file),
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}

		switch genDecl.Tok {
		case token.CONST:
			collectConsts(genDecl, out.Consts)
		case token.TYPE:
			decls, err := extractTypes(fset, genDecl, opts, out.Aliases)
			if err != nil {
				return nil, err
			}
			out.Types = append(out.Types, decls...)
		}
	}

	return out, nil
}

func collectConsts(genDecl *ast.GenDecl, consts map[string]string) {
	for _, spec := range genDecl.Specs {
		valueSpec := spec.(*ast.ValueSpec)
		// Implicit repetition (iota lists) has no values to resolve
		if len(valueSpec.Values) != len(valueSpec.Names) {
			continue
		}
		for i, name := range valueSpec.Names {
			if name.Name == "_" {
				continue
			}
			consts[name.Name] = types.ExprString(valueSpec.Values[i])
		}
	}
}

func extractTypes(fset *token.FileSet, genDecl *ast.GenDecl, opts Options, aliases map[string]string) ([]*TypeDecl, error) {
	var decls []*TypeDecl

	for _, spec := range genDecl.Specs {
		typeSpec := spec.(*ast.TypeSpec)

		structType, ok := typeSpec.Type.(*ast.StructType)
		if !ok {
			// type Scalar float32 / type Scalar = float32 / type Vec3 [3]float32
			aliases[typeSpec.Name.Name] = types.ExprString(typeSpec.Type)
			continue
		}

		// The annotation sits on the type spec in grouped declarations,
		// on the GenDecl otherwise. A group's own doc comment does not
		// opt in the types inside it.
		doc := typeSpec.Doc
		if doc == nil && len(genDecl.Specs) == 1 {
			doc = genDecl.Doc
		}
		anno, found, err := extractAnnotation(doc, opts.Annotation)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fset.Position(typeSpec.Pos()), typeSpec.Name.Name, err)
		}
		if !found {
			continue
		}

		if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
			return nil, fmt.Errorf("%s: %s: generic types are not supported", fset.Position(typeSpec.Pos()), typeSpec.Name.Name)
		}

		fields, err := extractFields(fset, structType, opts.Tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typeSpec.Name.Name, err)
		}

		decls = append(decls, &TypeDecl{
			Name:   typeSpec.Name.Name,
			Anno:   anno,
			Fields: fields,
			Pos:    fset.Position(typeSpec.Pos()),
		})
	}

	return decls, nil
}

func extractAnnotation(doc *ast.CommentGroup, marker string) (*TypeAnnotation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}

	return FindAnnotation(lines, marker)
}

func extractFields(fset *token.FileSet, structType *ast.StructType, tagKey string) ([]Field, error) {
	var fields []Field

	for _, field := range structType.Fields.List {
		goType := types.ExprString(field.Type)

		attribute := ""
		if field.Tag != nil {
			raw, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				raw = strings.Trim(field.Tag.Value, "`")
			}
			if value, ok := reflect.StructTag(raw).Lookup(tagKey); ok {
				tag, err := ParseTag(value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fset.Position(field.Pos()), err)
				}
				if len(field.Names) > 1 {
					return nil, fmt.Errorf("%s: %s tag on a multi-name field", fset.Position(field.Pos()), tagKey)
				}
				attribute = tag.Name
			}
		}

		if len(field.Names) == 0 {
			// Embedded; rejected by the analyzer as unnamed
			fields = append(fields, Field{
				GoType: goType,
				Pos:    fset.Position(field.Pos()),
			})
			continue
		}

		for _, name := range field.Names {
			fields = append(fields, Field{
				Name:      name.Name,
				Attribute: attribute,
				GoType:    goType,
				Pos:       fset.Position(name.Pos()),
			})
		}
	}

	return fields, nil
}

// declaredNames collects the package-level identifiers of a file, methods excluded
func declaredNames(file *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names[d.Name.Name] = true
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					names[sp.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range sp.Names {
						names[n.Name] = true
					}
				}
			}
		}
	}
	delete(names, "_")
	return names
}

// PackageNames returns the package-level identifiers declared by the non-test
// files of package pkg in dir. Files for which skip returns true, and files
// that do not parse, are ignored.
func PackageNames(dir, pkg string, skip func(path string) bool) (map[string]bool, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	fset := token.NewFileSet()
	for _, path := range paths {
		if strings.HasSuffix(path, "_test.go") || (skip != nil && skip(path)) {
			continue
		}
		file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil || file.Name.Name != pkg {
			continue
		}
		for name := range declaredNames(file) {
			names[name] = true
		}
	}
	return names, nil
}
