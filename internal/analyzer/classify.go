package analyzer

import (
	"fmt"

	"github.com/alexhholmes/vertex"
)

// Classify maps a Go scalar type name to its vertex element type.
// Only the scalar formats vertex hardware reads natively are accepted.
func Classify(scalar string) (vertex.ElementType, error) {
	switch scalar {
	case "uint8", "byte":
		return vertex.UnsignedByte, nil
	case "int8":
		return vertex.Byte, nil
	case "uint16":
		return vertex.UnsignedShort, nil
	case "int16":
		return vertex.Short, nil
	case "float32":
		return vertex.Float, nil
	default:
		return 0, fmt.Errorf("%s %w", scalar, ErrUnsupportedType)
	}
}
