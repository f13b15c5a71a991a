package testdata

// @vertex
type Vertex struct {
	Position [3]float32 `vertex:"position"`
	Texture  [2]float32 `vertex:"texture"`
	Normal   [3]float32 `vertex:"normal"`
}

// Color has no annotation and should be skipped
type Color struct {
	RGBA [4]uint8
}

// SkinnedVertex carries bone data.
//
// @vertex stride=24
type SkinnedVertex struct {
	Position [3]float32
	Bones    [4]uint8
	Weights  [4]uint16
}
