package parser

import (
	"fmt"
	"go/token"
	"strings"
)

// DefaultTag is the struct tag key that renames an attribute
const DefaultTag = "vertex"

// FieldTag is a parsed vertex struct tag
type FieldTag struct {
	Name string // Attribute name used by FieldPosition
}

// ParseTag parses a vertex struct tag value
//
// Semantics:
//   - "a_position" : attribute is looked up as "a_position"
//
// Every field of a vertex struct is an attribute, so "-" is rejected rather
// than treated as "skip".
func ParseTag(tag string) (*FieldTag, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty vertex tag")
	}

	parts := strings.Split(tag, ",")
	name := parts[0]

	if name == "-" {
		return nil, fmt.Errorf("fields cannot be excluded from a vertex: %q", tag)
	}
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("invalid attribute name: %q", name)
	}
	if len(parts) > 1 {
		return nil, fmt.Errorf("unknown parameter: %s", parts[1])
	}

	return &FieldTag{Name: name}, nil
}
