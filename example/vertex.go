// Package example holds annotated vertex types and their generated
// descriptor methods.
package example

//go:generate go run github.com/alexhholmes/vertex/cmd/vertexgen vertex.go

// Vertex is the vertex of a lit, textured mesh.
//
// @vertex
type Vertex struct {
	Position [3]float32 `vertex:"position"`
	Texture  [2]float32 `vertex:"texture"`
	Normal   [3]float32 `vertex:"normal"`
}

// SkinnedVertex carries up to four joint influences.
//
// @vertex stride=52
type SkinnedVertex struct {
	Position [3]float32 `vertex:"position"`
	Normal   [3]float32 `vertex:"normal"`
	Weights  [4]float32 `vertex:"weights"`
	Joints   [4]uint16  `vertex:"joints"`
	Color    [4]uint8   `vertex:"color"`
}
