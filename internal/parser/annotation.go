package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAnnotation marks a struct type for descriptor generation
const DefaultAnnotation = "@vertex"

// TypeAnnotation holds a parsed @vertex annotation
type TypeAnnotation struct {
	Stride int // Expected stride in bytes (0 = not asserted)
}

// ParseAnnotation parses an annotation line using the default marker
//
// Expected format:
//
//	// @vertex
//	// @vertex stride=32
//
// Params are space-separated key=value pairs.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	return parseAnnotation(comment, DefaultAnnotation)
}

func parseAnnotation(comment, marker string) (*TypeAnnotation, error) {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(marker) + `(?:\s+(.*))?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no %s annotation found", marker)
	}

	anno := &TypeAnnotation{}
	if matches[1] == "" {
		return anno, nil
	}

	for _, param := range strings.Fields(matches[1]) {
		key, value, ok := strings.Cut(param, "=")
		if !ok || value == "" {
			return nil, fmt.Errorf("invalid parameter: %s (expected key=value)", param)
		}

		switch key {
		case "stride":
			stride, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid stride: %s", value)
			}
			if stride <= 0 {
				return nil, fmt.Errorf("stride must be positive, got: %d", stride)
			}
			anno.Stride = stride

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for the marker.
// A line carrying the marker with bad params is an error, not a miss.
func FindAnnotation(comments []string, marker string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !hasMarker(comment, marker) {
			continue
		}
		anno, err := parseAnnotation(comment, marker)
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

func hasMarker(line, marker string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), marker)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// CleanComment removes comment markers from a line
// "// @vertex stride=32" → "@vertex stride=32"
// "/* @vertex */" → "@vertex"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		return strings.TrimSpace(line)
	}

	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		return strings.TrimSpace(line)
	}

	return line
}
