package mesh

// @vertex
type vertex struct {
	position [3]float32
	uv       [2]float32
}
