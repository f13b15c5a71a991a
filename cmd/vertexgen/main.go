// Command vertexgen generates vertex descriptor methods for annotated structs.
//
// A struct opts in with a "// @vertex" line in its doc comment:
//
//	//go:generate go run github.com/alexhholmes/vertex/cmd/vertexgen vertex.go
//
//	// @vertex
//	type Vertex struct {
//		Position [3]float32 `vertex:"position"`
//		Texture  [2]float32 `vertex:"texture"`
//	}
//
// For each input file vertexgen writes <name>_vertex.go next to it.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
