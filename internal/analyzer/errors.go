package analyzer

import (
	"errors"
	"fmt"
	"go/token"
)

// Generation-time errors. Each is wrapped in a *FieldError naming the
// offending type and field.
var (
	ErrUnsupportedType = errors.New("not supported")
	ErrNotArray        = errors.New("only arrays are supported")
	ErrUnnamedField    = errors.New("unnamed fields not allowed")
	ErrInvalidLength   = errors.New("invalid array length")
	ErrDuplicateName   = errors.New("duplicate attribute name")
	ErrPadding         = errors.New("field would be padded")
	ErrStrideMismatch  = errors.New("stride mismatch")
	ErrNoFields        = errors.New("no fields")
	ErrReservedName    = errors.New("field name clashes with a generated method")
)

// ReservedNames are the methods generated for every vertex type; no
// attribute field may share their names
var ReservedNames = map[string]bool{
	"ElementCount":   true,
	"ElementSize":    true,
	"ElementType":    true,
	"ElementStride":  true,
	"ElementPointer": true,
	"FieldPosition":  true,
}

// FieldError reports a generation failure for one field of a vertex type.
// Field is empty for errors about the type as a whole.
type FieldError struct {
	Type  string
	Field string
	Pos   token.Position
	Err   error
}

func (e *FieldError) Error() string {
	where := e.Type
	if e.Field != "" {
		where += "." + e.Field
	}
	if e.Pos.IsValid() {
		where = e.Pos.String() + ": " + where
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
