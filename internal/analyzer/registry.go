package analyzer

import (
	"fmt"
	"go/ast"
	"go/constant"
	goparser "go/parser"
	"go/token"
	"math"

	"github.com/alexhholmes/vertex/internal/parser"
)

// maxConstDepth bounds constant resolution so a const cycle cannot recurse forever
const maxConstDepth = 32

// TypeRegistry tracks scalar type definitions and integer constants declared
// next to the vertex types
type TypeRegistry struct {
	aliases map[string]string // type name → underlying type
	consts  map[string]string // const name → value expression
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		aliases: make(map[string]string),
		consts:  make(map[string]string),
	}
}

// RegistryFor builds a registry from the declarations of a parsed file
func RegistryFor(file *parser.File) *TypeRegistry {
	r := NewTypeRegistry()
	for alias, underlying := range file.Aliases {
		r.RegisterAlias(alias, underlying)
	}
	for name, expr := range file.Consts {
		r.RegisterConst(name, expr)
	}
	return r
}

// RegisterAlias adds a type definition or alias (e.g., type Scalar float32)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// RegisterConst adds an integer constant usable as an array length
func (r *TypeRegistry) RegisterConst(name, expr string) {
	r.consts[name] = expr
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for {
		underlying, ok := r.aliases[goType]
		if !ok || seen[goType] {
			return goType
		}
		seen[goType] = true
		goType = underlying
	}
}

// EvalLength evaluates an array length expression to a non-negative int.
// Integer literals, registered constants and arithmetic on them are accepted.
func (r *TypeRegistry) EvalLength(expr string) (int, error) {
	e, err := goparser.ParseExpr(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidLength, expr)
	}

	v, err := r.eval(e, 0)
	if err != nil {
		return 0, err
	}

	v = constant.ToInt(v)
	if v.Kind() != constant.Int {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrInvalidLength, expr)
	}
	n, exact := constant.Int64Val(v)
	if !exact || n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidLength, expr)
	}
	return int(n), nil
}

func (r *TypeRegistry) eval(e ast.Expr, depth int) (constant.Value, error) {
	if depth > maxConstDepth {
		return nil, fmt.Errorf("%w: constant chain too deep", ErrInvalidLength)
	}

	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLength, e.Value)
		}
		return constant.MakeFromLiteral(e.Value, e.Kind, 0), nil

	case *ast.Ident:
		expr, ok := r.consts[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown constant %s", ErrInvalidLength, e.Name)
		}
		inner, err := goparser.ParseExpr(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s = %s", ErrInvalidLength, e.Name, expr)
		}
		return r.eval(inner, depth+1)

	case *ast.ParenExpr:
		return r.eval(e.X, depth)

	case *ast.UnaryExpr:
		x, err := r.eval(e.X, depth)
		if err != nil {
			return nil, err
		}
		if e.Op != token.ADD && e.Op != token.SUB {
			return nil, fmt.Errorf("%w: unsupported operator %s", ErrInvalidLength, e.Op)
		}
		return constant.UnaryOp(e.Op, x, 0), nil

	case *ast.BinaryExpr:
		x, err := r.eval(e.X, depth)
		if err != nil {
			return nil, err
		}
		y, err := r.eval(e.Y, depth)
		if err != nil {
			return nil, err
		}
		return binaryOp(x, e.Op, y)

	default:
		return nil, fmt.Errorf("%w: unsupported expression %T", ErrInvalidLength, e)
	}
}

func binaryOp(x constant.Value, op token.Token, y constant.Value) (constant.Value, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL, token.REM:
		if op == token.REM && constant.Sign(y) == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrInvalidLength)
		}
		return constant.BinaryOp(x, op, y), nil

	case token.QUO:
		if constant.Sign(y) == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrInvalidLength)
		}
		// Integer division, as the compiler does for untyped int constants
		return constant.BinaryOp(x, token.QUO_ASSIGN, y), nil

	case token.SHL, token.SHR:
		s, ok := constant.Uint64Val(constant.ToInt(y))
		if !ok || s > 31 {
			return nil, fmt.Errorf("%w: bad shift count", ErrInvalidLength)
		}
		return constant.Shift(x, op, uint(s)), nil

	default:
		return nil, fmt.Errorf("%w: unsupported operator %s", ErrInvalidLength, op)
	}
}
