package mesh

// @vertex
type Vertex struct {
	position [3]float32
	texture  [2]float32
	normal   [3]float32
}

// @vertex stride=12
type Colored struct {
	Position [2]float32 `vertex:"a_position"`
	Color    [4]uint8   `vertex:"a_color"`
}

// Plain is not annotated and gets no methods.
type Plain struct {
	ID uint64
}
