package codegen

import (
	"bytes"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/alexhholmes/vertex/internal/analyzer"
	"github.com/alexhholmes/vertex/internal/parser"
)

func vertexLayout(t *testing.T) *analyzer.VertexLayout {
	t.Helper()

	// type Vertex struct {
	//     position [3]float32
	//     texture  [2]float32
	//     normal   [3]float32
	// }
	decl := &parser.TypeDecl{
		Name: "Vertex",
		Anno: &parser.TypeAnnotation{},
		Fields: []parser.Field{
			{Name: "position", GoType: "[3]float32"},
			{Name: "texture", GoType: "[2]float32"},
			{Name: "normal", GoType: "[3]float32"},
		},
	}

	layout, err := analyzer.Analyze(decl, analyzer.NewTypeRegistry())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return layout
}

func TestGenerateMethods(t *testing.T) {
	code, err := NewGenerator(vertexLayout(t), DefaultOptions()).Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	want := []string{
		"var _ vertex.Layout = Vertex{}",
		"func (Vertex) ElementCount() int { return 3 }",
		"func (Vertex) ElementSize(index int) int32 {",
		"func (Vertex) ElementType(index int) vertex.ElementType {",
		"func (Vertex) ElementPointer(index int) uintptr {",
		"func (Vertex) ElementStride() int32 { return 32 }",
		"func (Vertex) FieldPosition(name string) int {",
		`panic(vertex.InvalidIndex("Vertex", index))`,
		`panic(vertex.InvalidFieldName("Vertex", name))`,
	}
	for _, w := range want {
		if !strings.Contains(code, w) {
			t.Errorf("generated code missing %q\n%s", w, code)
		}
	}
}

func TestGenerateIndexSwitch(t *testing.T) {
	g := NewGenerator(vertexLayout(t), DefaultOptions())

	emitters := g.emitters()
	if len(emitters) != 3 {
		t.Fatalf("emitters() = %d methods, want 3", len(emitters))
	}

	size := g.generateIndexMethod(emitters[0])
	if !strings.Contains(size, "\tcase 1: // texture\n\t\treturn 2\n") {
		t.Errorf("ElementSize missing texture case:\n%s", size)
	}

	typ := g.generateIndexMethod(emitters[1])
	if strings.Count(typ, "return vertex.Float") != 3 {
		t.Errorf("ElementType should return vertex.Float three times:\n%s", typ)
	}

	ptr := g.generateIndexMethod(emitters[2])
	for _, w := range []string{"return 0\n", "return 12\n", "return 20\n"} {
		if !strings.Contains(ptr, w) {
			t.Errorf("ElementPointer missing %q:\n%s", w, ptr)
		}
	}
}

func TestGeneratePosition(t *testing.T) {
	code := NewGenerator(vertexLayout(t), DefaultOptions()).GeneratePosition()

	for i, name := range []string{"position", "texture", "normal"} {
		want := "\tcase \"" + name + "\":\n\t\treturn " + string(rune('0'+i)) + "\n"
		if !strings.Contains(code, want) {
			t.Errorf("FieldPosition missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateAssertions(t *testing.T) {
	code := NewGenerator(vertexLayout(t), DefaultOptions()).GenerateAssertions()

	want := []string{
		"var x [1]struct{}",
		"_ = x[unsafe.Offsetof(Vertex{}.position)-0]",
		"_ = x[unsafe.Offsetof(Vertex{}.texture)-12]",
		"_ = x[unsafe.Offsetof(Vertex{}.normal)-20]",
		"_ = x[unsafe.Sizeof(Vertex{})-32]",
		"Re-run the vertexgen command",
	}
	for _, w := range want {
		if !strings.Contains(code, w) {
			t.Errorf("assertions missing %q\n%s", w, code)
		}
	}
}

func TestGenerateAttributeNames(t *testing.T) {
	decl := &parser.TypeDecl{
		Name: "Sprite",
		Anno: &parser.TypeAnnotation{},
		Fields: []parser.Field{
			{Name: "Corner", Attribute: "a_corner", GoType: "[2]float32"},
			{Name: "Color", GoType: "[4]uint8"},
		},
	}
	layout, err := analyzer.Analyze(decl, analyzer.NewTypeRegistry())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	code, err := NewGenerator(layout, DefaultOptions()).Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// Lookup uses the tag name, assertions use the Go field name
	if !strings.Contains(code, `case "a_corner":`) {
		t.Error("FieldPosition should match the tag name")
	}
	if strings.Contains(code, `case "Corner":`) {
		t.Error("FieldPosition should not match the Go name of a tagged field")
	}
	if !strings.Contains(code, "unsafe.Offsetof(Sprite{}.Corner)-0") {
		t.Error("assertion should use the Go field name")
	}
	if !strings.Contains(code, "return vertex.UnsignedByte") {
		t.Error("Color should be UnsignedByte")
	}
}

func TestGenerateEmpty(t *testing.T) {
	if _, err := NewGenerator(&analyzer.VertexLayout{TypeName: "Empty"}, DefaultOptions()).Generate(); err == nil {
		t.Error("Generate() with no attributes expected error, got nil")
	}
	if _, err := NewGenerator(nil, DefaultOptions()).Generate(); err == nil {
		t.Error("Generate() with nil layout expected error, got nil")
	}
}

func TestGenerateFile(t *testing.T) {
	opts := DefaultOptions()
	opts.Header = "Source: mesh.go"

	src, err := GenerateFile("mesh", []*analyzer.VertexLayout{vertexLayout(t)}, opts)
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}

	if !bytes.HasPrefix(src, []byte("// Code generated by vertexgen. DO NOT EDIT.\n// Source: mesh.go\n")) {
		t.Errorf("missing generated header:\n%s", src)
	}

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "mesh_vertex.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	if file.Name.Name != "mesh" {
		t.Errorf("package = %q, want mesh", file.Name.Name)
	}

	imports := map[string]bool{}
	for _, imp := range file.Imports {
		imports[imp.Path.Value] = true
	}
	if !imports[`"unsafe"`] || !imports[`"github.com/alexhholmes/vertex"`] {
		t.Errorf("imports = %v, want unsafe and vertex", imports)
	}

	methods := map[string]bool{}
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			methods[fn.Name.Name] = true
		}
	}
	for _, m := range []string{"ElementCount", "ElementSize", "ElementType", "ElementStride", "ElementPointer", "FieldPosition"} {
		if !methods[m] {
			t.Errorf("generated file missing method %s", m)
		}
	}
}

func TestGenerateFileWithoutAssertions(t *testing.T) {
	opts := DefaultOptions()
	opts.Assertions = false

	src, err := GenerateFile("mesh", []*analyzer.VertexLayout{vertexLayout(t)}, opts)
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}
	if bytes.Contains(src, []byte(`"unsafe"`)) {
		t.Error("unsafe imported without assertions")
	}
	if bytes.Contains(src, []byte("func _()")) {
		t.Error("assertion block emitted without assertions")
	}
}

func TestGenerateFileDeterministic(t *testing.T) {
	layouts := []*analyzer.VertexLayout{vertexLayout(t)}

	first, err := GenerateFile("mesh", layouts, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}
	second, err := GenerateFile("mesh", layouts, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("GenerateFile() output differs between runs")
	}
}

func TestGenerateFileErrors(t *testing.T) {
	if _, err := GenerateFile("", []*analyzer.VertexLayout{vertexLayout(t)}, DefaultOptions()); err == nil {
		t.Error("GenerateFile() without package expected error, got nil")
	}
	if _, err := GenerateFile("mesh", nil, DefaultOptions()); err == nil {
		t.Error("GenerateFile() without layouts expected error, got nil")
	}
}

func TestGenerateFileTypeNamedVertex(t *testing.T) {
	decl := &parser.TypeDecl{
		Name:   "vertex",
		Anno:   &parser.TypeAnnotation{},
		Fields: []parser.Field{{Name: "Position", GoType: "[3]float32"}},
	}
	layout, err := analyzer.Analyze(decl, analyzer.NewTypeRegistry())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	src, err := GenerateFile("mesh", []*analyzer.VertexLayout{layout}, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}

	for _, want := range []string{
		`vertexpkg "github.com/alexhholmes/vertex"`,
		"var _ vertexpkg.Layout = vertex{}",
		"func (vertex) ElementType(index int) vertexpkg.ElementType {",
		"return vertexpkg.Float",
		`panic(vertexpkg.InvalidIndex("vertex", index))`,
		`panic(vertexpkg.InvalidFieldName("vertex", name))`,
	} {
		if !bytes.Contains(src, []byte(want)) {
			t.Errorf("output missing %q\n%s", want, src)
		}
	}
	if bytes.Contains(src, []byte("vertex.")) {
		t.Errorf("output still refers to the import as vertex\n%s", src)
	}

	assertResolves(t, src)
}

func TestGenerateFileReservedNames(t *testing.T) {
	opts := DefaultOptions()
	opts.Reserved = map[string]bool{"vertex": true, "vertexpkg": true, "unsafe": true, "Vertex": true}

	src, err := GenerateFile("mesh", []*analyzer.VertexLayout{vertexLayout(t)}, opts)
	if err != nil {
		t.Fatalf("GenerateFile() error: %v", err)
	}

	for _, want := range []string{
		`unsafepkg "unsafe"`,
		`vertexpkg2 "github.com/alexhholmes/vertex"`,
		"_ = x[unsafepkg.Offsetof(Vertex{}.texture)-12]",
		"var _ vertexpkg2.Layout = Vertex{}",
	} {
		if !bytes.Contains(src, []byte(want)) {
			t.Errorf("output missing %q\n%s", want, src)
		}
	}

	assertResolves(t, src)
}

// assertResolves checks that every selector in src names one of the file's imports
func assertResolves(t *testing.T, src []byte) {
	t.Helper()

	file, err := goparser.ParseFile(token.NewFileSet(), "out.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v", err)
	}

	imports := map[string]bool{}
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := path[strings.LastIndex(path, "/")+1:]
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports[name] = true
	}

	declared := map[string]bool{}
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			declared[types.ExprString(fn.Recv.List[0].Type)] = true
		}
	}
	for name := range declared {
		if imports[name] {
			t.Errorf("import name %q collides with type %s", name, name)
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !imports[id.Name] {
			t.Errorf("selector %s.%s does not name an import", id.Name, sel.Sel.Name)
		}
		return true
	})
}

func TestGenerateAssertionsTypeNamedX(t *testing.T) {
	decl := &parser.TypeDecl{
		Name:   "x",
		Anno:   &parser.TypeAnnotation{},
		Fields: []parser.Field{{Name: "uv", GoType: "[2]float32"}},
	}
	layout, err := analyzer.Analyze(decl, analyzer.NewTypeRegistry())
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	code := NewGenerator(layout, DefaultOptions()).GenerateAssertions()
	if !strings.Contains(code, "var y [1]struct{}") || !strings.Contains(code, "_ = y[unsafe.Sizeof(x{})-8]") {
		t.Errorf("assertion array should not shadow type x:\n%s", code)
	}
}
