package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/alexhholmes/vertex/internal/analyzer"
	"github.com/alexhholmes/vertex/internal/codegen"
	"github.com/alexhholmes/vertex/internal/config"
	"github.com/alexhholmes/vertex/internal/logging"
	"github.com/alexhholmes/vertex/internal/parser"
)

func parserOptions(cfg config.Config) parser.Options {
	return parser.Options{Annotation: cfg.Annotation, Tag: cfg.Tag}
}

// analyze parses path and computes the layout of every annotated type
func analyze(path string, cfg config.Config) (*parser.File, []*analyzer.VertexLayout, error) {
	file, err := parser.ParseFile(path, parserOptions(cfg))
	if err != nil {
		return nil, nil, err
	}
	layouts, err := analyzer.AnalyzeFile(file)
	if err != nil {
		return nil, nil, err
	}
	return file, layouts, nil
}

// generate writes the descriptor methods for path. A file without annotated
// types is skipped; nothing is written when any type fails.
func generate(path, output string, cfg config.Config) error {
	if cfg.IsGenerated(path) {
		logging.Debug("skipping generated file", "file", path)
		return nil
	}

	file, layouts, err := analyze(path, cfg)
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		logging.Warn("no annotated types", "file", path, "annotation", cfg.Annotation)
		return nil
	}

	// names declared anywhere in the package, so imports can avoid them
	reserved, err := parser.PackageNames(filepath.Dir(path), file.Package, cfg.IsGenerated)
	if err != nil {
		return err
	}
	for name := range file.Names {
		reserved[name] = true
	}

	src, err := codegen.GenerateFile(file.Package, layouts, codegen.Options{
		Assertions: cfg.Assertions,
		Command:    "vertexgen",
		Header:     cfg.Header,
		Reserved:   reserved,
	})
	if err != nil {
		return err
	}

	if output == "" {
		output = cfg.OutputPath(path)
	}
	if err := writeFile(output, src); err != nil {
		return err
	}

	for _, l := range layouts {
		logging.Debug("generated", "type", l.TypeName, "attributes", len(l.Attributes), "stride", l.Stride)
	}
	logging.Info("wrote", "file", output, "types", len(layouts))
	return nil
}

// writeFile replaces path with data atomically, so a failed write never
// leaves a truncated output behind
func writeFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
