package mesh

// @vertex
type Bone struct {
	Weights [4]float32
	Index   uint32
}
