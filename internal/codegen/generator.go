package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexhholmes/vertex/internal/analyzer"
)

// Options controls what the generator emits
type Options struct {
	Assertions bool   // emit the compile-time layout check
	Command    string // name shown in the generated header
	Header     string // extra comment placed under the generated header

	// Reserved holds the package-level names already declared by the target
	// package. Imports of the generated file are renamed to avoid them.
	Reserved map[string]bool

	// names the generated code refers to the imports by
	vertexName string
	unsafeName string
}

func DefaultOptions() Options {
	return Options{Assertions: true, Command: "vertexgen"}
}

// Generator generates Descriptor methods for one vertex layout
type Generator struct {
	layout *analyzer.VertexLayout
	opts   Options
}

// indexEmitter renders the value one index-switched method returns for an attribute
type indexEmitter struct {
	doc    string
	method string
	result string
	value  func(a analyzer.Attribute) string
}

// NewGenerator creates a new code generator
func NewGenerator(layout *analyzer.VertexLayout, opts Options) *Generator {
	if opts.Command == "" {
		opts.Command = "vertexgen"
	}
	if opts.vertexName == "" {
		opts.vertexName = "vertex"
	}
	if opts.unsafeName == "" {
		opts.unsafeName = "unsafe"
	}
	return &Generator{layout: layout, opts: opts}
}

// Generate returns the generated code for this type (without package header/imports)
func (g *Generator) Generate() (string, error) {
	if g.layout == nil || len(g.layout.Attributes) == 0 {
		return "", fmt.Errorf("nothing to generate")
	}

	var out strings.Builder

	if g.opts.Assertions {
		out.WriteString(g.GenerateAssertions())
		out.WriteString("\n")
	}

	out.WriteString(fmt.Sprintf("var _ %s.Layout = %s{}\n\n", g.opts.vertexName, g.layout.TypeName))
	out.WriteString(g.generateCount())
	out.WriteString("\n")

	for _, e := range g.emitters() {
		out.WriteString(g.generateIndexMethod(e))
		out.WriteString("\n")
	}

	out.WriteString(g.generateStride())
	out.WriteString("\n")
	out.WriteString(g.GeneratePosition())

	return out.String(), nil
}

// emitters returns the index-switched methods in the order they are emitted
func (g *Generator) emitters() []indexEmitter {
	return []indexEmitter{
		{
			doc:    "ElementSize returns the number of components of attribute index.",
			method: "ElementSize",
			result: "int32",
			value:  func(a analyzer.Attribute) string { return strconv.Itoa(a.Count) },
		},
		{
			doc:    "ElementType returns the component type of attribute index.",
			method: "ElementType",
			result: g.opts.vertexName + ".ElementType",
			value:  func(a analyzer.Attribute) string { return g.opts.vertexName + "." + a.Type.String() },
		},
		{
			doc:    "ElementPointer returns the byte offset of attribute index within one vertex.",
			method: "ElementPointer",
			result: "uintptr",
			value:  func(a analyzer.Attribute) string { return strconv.Itoa(a.Offset) },
		},
	}
}

// generateIndexMethod emits a switch over the attribute index; anything
// outside [0, n) panics
func (g *Generator) generateIndexMethod(e indexEmitter) string {
	var code strings.Builder
	name := g.layout.TypeName

	code.WriteString(fmt.Sprintf("// %s\n", e.doc))
	code.WriteString(fmt.Sprintf("func (%s) %s(index int) %s {\n", name, e.method, e.result))
	code.WriteString("\tswitch index {\n")
	for i, a := range g.layout.Attributes {
		code.WriteString(fmt.Sprintf("\tcase %d: // %s\n", i, a.Name))
		code.WriteString(fmt.Sprintf("\t\treturn %s\n", e.value(a)))
	}
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\tpanic(%s.InvalidIndex(%q, index))\n", g.opts.vertexName, name))
	code.WriteString("}\n")

	return code.String()
}

func (g *Generator) generateCount() string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// ElementCount returns the number of attributes in %s.\n", g.layout.TypeName))
	code.WriteString(fmt.Sprintf("func (%s) ElementCount() int { return %d }\n",
		g.layout.TypeName, len(g.layout.Attributes)))

	return code.String()
}

func (g *Generator) generateStride() string {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// ElementStride returns the size of one %s in bytes.\n", g.layout.TypeName))
	code.WriteString(fmt.Sprintf("func (%s) ElementStride() int32 { return %d }\n",
		g.layout.TypeName, g.layout.Stride))

	return code.String()
}

// GeneratePosition generates the FieldPosition name lookup
func (g *Generator) GeneratePosition() string {
	var code strings.Builder
	name := g.layout.TypeName

	code.WriteString("// FieldPosition returns the index of the attribute called name.\n")
	code.WriteString(fmt.Sprintf("func (%s) FieldPosition(name string) int {\n", name))
	code.WriteString("\tswitch name {\n")
	for i, a := range g.layout.Attributes {
		code.WriteString(fmt.Sprintf("\tcase %q:\n", a.Attribute))
		code.WriteString(fmt.Sprintf("\t\treturn %d\n", i))
	}
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\tpanic(%s.InvalidFieldName(%q, name))\n", g.opts.vertexName, name))
	code.WriteString("}\n")

	return code.String()
}

// GenerateAssertions generates a function that fails to compile when the
// struct's real layout no longer matches the generated offsets.
// Any mismatch makes a constant index negative or past the end of x.
func (g *Generator) GenerateAssertions() string {
	var code strings.Builder
	name := g.layout.TypeName

	code.WriteString("func _() {\n")
	code.WriteString(fmt.Sprintf("\t// An \"invalid array index\" compiler error signifies that the layout of %s has changed.\n", name))
	code.WriteString(fmt.Sprintf("\t// Re-run the %s command to generate it again.\n", g.opts.Command))
	x := "x"
	if name == x {
		x = "y"
	}
	code.WriteString(fmt.Sprintf("\tvar %s [1]struct{}\n", x))
	for _, a := range g.layout.Attributes {
		code.WriteString(fmt.Sprintf("\t_ = %s[%s.Offsetof(%s{}.%s)-%d]\n", x, g.opts.unsafeName, name, a.Name, a.Offset))
	}
	code.WriteString(fmt.Sprintf("\t_ = %s[%s.Sizeof(%s{})-%d]\n", x, g.opts.unsafeName, name, g.layout.Stride))
	code.WriteString("}\n")

	return code.String()
}
