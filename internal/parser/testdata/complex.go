package testdata

const (
	Components = 3
	UV         = Components - 1
)

type Scalar float32

type Packed = int16

type (
	// @vertex
	Sprite struct {
		Corner, Size [2]Scalar
		UV           [UV]Packed
	}

	Embedded struct {
		Sprite
	}
)

// @vertex
type Broken struct {
	Position [3]float32
	Index    uint32
	Weights  []float32
}
