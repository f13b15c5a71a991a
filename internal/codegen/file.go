package codegen

import (
	"fmt"
	"go/format"
	pathpkg "path"
	"strings"

	"github.com/alexhholmes/vertex/internal/analyzer"
)

// ImportPath is the package generated code refers to, as vertex unless the
// target package already declares that name
const ImportPath = "github.com/alexhholmes/vertex"

// GenerateFile renders a complete, gofmt'ed Go file holding the methods for
// every layout, in the order given
func GenerateFile(pkg string, layouts []*analyzer.VertexLayout, opts Options) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("missing package name")
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no vertex types to generate")
	}
	if opts.Command == "" {
		opts.Command = "vertexgen"
	}

	taken := make(map[string]bool, len(opts.Reserved)+len(layouts))
	for name := range opts.Reserved {
		taken[name] = true
	}
	for _, layout := range layouts {
		if layout != nil {
			taken[layout.TypeName] = true
		}
	}
	opts.vertexName = importName("vertex", taken)
	taken[opts.vertexName] = true
	opts.unsafeName = importName("unsafe", taken)

	var out strings.Builder

	out.WriteString(fmt.Sprintf("// Code generated by %s. DO NOT EDIT.\n", opts.Command))
	for _, line := range strings.Split(strings.TrimSpace(opts.Header), "\n") {
		if line != "" {
			out.WriteString("// " + line + "\n")
		}
	}
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("package %s\n\n", pkg))

	out.WriteString("import (\n")
	if opts.Assertions {
		out.WriteString(importSpec(opts.unsafeName, "unsafe"))
		out.WriteString("\n")
	}
	out.WriteString(importSpec(opts.vertexName, ImportPath))
	out.WriteString(")\n")

	for _, layout := range layouts {
		code, err := NewGenerator(layout, opts).Generate()
		if err != nil {
			if layout == nil {
				return nil, err
			}
			return nil, fmt.Errorf("%s: %w", layout.TypeName, err)
		}
		out.WriteString("\n")
		out.WriteString(code)
	}

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// importName returns base, or base+"pkg" (then a numbered variant) when the
// target package already declares base
func importName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	name := base + "pkg"
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%spkg%d", base, i)
	}
	return name
}

func importSpec(name, path string) string {
	if name == pathpkg.Base(path) {
		return fmt.Sprintf("\t%q\n", path)
	}
	return fmt.Sprintf("\t%s %q\n", name, path)
}
