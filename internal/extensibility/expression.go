package extensibility

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	bt "github.com/comalice/behaviortree"
)

// ErrBadExpression is returned by Expression for malformed input.
var ErrBadExpression = errors.New("bad expression")

type exprOp string

const (
	opEq exprOp = "=="
	opNe exprOp = "!="
	opGt exprOp = ">"
	opGe exprOp = ">="
	opLt exprOp = "<"
	opLe exprOp = "<="
)

// Expression compiles a "key op value" comparison against the node's
// *bt.Blackboard, for example "battery > 30" or "docked == true". Supported
// operators are ==, !=, >, >=, < and <=. Numeric comparisons accept any Go
// integer or float stored under key.
//
// The callback returns Failure when the key is absent or has an incomparable
// type, and Error when the node has no *bt.Blackboard.
func Expression(expr string) (bt.TickFunc, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return nil, errors.Wrapf(ErrBadExpression, "%q: want \"key op value\"", expr)
	}
	key, op, lit := parts[0], exprOp(parts[1]), parts[2]

	switch op {
	case opEq, opNe:
	case opGt, opGe, opLt, opLe:
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			return nil, errors.Wrapf(ErrBadExpression, "%q: %s needs a numeric operand", expr, op)
		}
	default:
		return nil, errors.Wrapf(ErrBadExpression, "%q: unknown operator %q", expr, op)
	}

	return func(n *bt.Node) bt.Status {
		bb, ok := bt.BlackboardAs[*bt.Blackboard](n)
		if !ok || bb == nil {
			return bt.Error
		}
		v, ok := bb.Lookup(key)
		if !ok {
			return bt.Failure
		}
		if compare(v, op, lit) {
			return bt.Success
		}
		return bt.Failure
	}, nil
}

// MustExpression is like Expression but panics on error.
func MustExpression(expr string) bt.TickFunc {
	fn, err := Expression(expr)
	if err != nil {
		panic(err)
	}
	return fn
}

func compare(v any, op exprOp, lit string) bool {
	switch op {
	case opEq:
		return equal(v, lit)
	case opNe:
		return !equal(v, lit)
	}
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	want, _ := strconv.ParseFloat(lit, 64)
	switch op {
	case opGt:
		return f > want
	case opGe:
		return f >= want
	case opLt:
		return f < want
	case opLe:
		return f <= want
	}
	return false
}

func equal(v any, lit string) bool {
	switch lit {
	case "true":
		return v == true
	case "false":
		return v == false
	case "nil":
		return v == nil
	}
	if want, err := strconv.ParseFloat(lit, 64); err == nil {
		if f, ok := toFloat(v); ok {
			return f == want
		}
	}
	s, ok := v.(string)
	return ok && s == lit
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
