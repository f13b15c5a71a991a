package vertex

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex     = errors.New("invalid index")
	ErrInvalidFieldName = errors.New("invalid field name")
)

// InvalidIndex returns the value generated descriptors panic with when an
// attribute index is out of range.
func InvalidIndex(typeName string, index int) error {
	return fmt.Errorf("%s: %w %d", typeName, ErrInvalidIndex, index)
}

// InvalidFieldName returns the value generated descriptors panic with when
// no attribute has the requested name.
func InvalidFieldName(typeName, name string) error {
	return fmt.Errorf("%s: %w %q", typeName, ErrInvalidFieldName, name)
}
