// Package types defines GoxLang's scalar type system and the operator
// typing rules used by the semantic checker and the IR generator.
package types

import "github.com/cwbudde/goxlang/pkg/token"

// GoxType is one of GoxLang's four scalar types. The zero value, Invalid,
// never names a real type; it marks an expression the checker rejected
// before a type could be assigned.
type GoxType int

const (
	Invalid GoxType = iota
	Int
	Float
	Char
	Bool
)

func (t GoxType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	case Bool:
		return "bool"
	default:
		return "invalid"
	}
}

// FromKeyword maps a type-keyword token to the GoxType it names.
func FromKeyword(tok token.Type) (GoxType, bool) {
	switch tok {
	case token.INT_TYPE:
		return Int, true
	case token.FLOAT_TYPE:
		return Float, true
	case token.CHAR_TYPE:
		return Char, true
	case token.BOOL_TYPE:
		return Bool, true
	default:
		return Invalid, false
	}
}

// Numeric reports whether t is int or float.
func (t GoxType) Numeric() bool {
	return t == Int || t == Float
}

// CheckBinOp returns the result type of applying op to operands of type
// left and right, or Invalid if the combination is not permitted.
// Grounded on the operator typing table in semantic/typesys.check_binop
// in the Python reference implementation.
func CheckBinOp(op token.Type, left, right GoxType) GoxType {
	switch op {
	case token.PLUS, token.MINUS, token.TIMES, token.DIVIDE:
		if left == Int && right == Int {
			return Int
		}
		if left == Float && right == Float {
			return Float
		}
		return Invalid
	case token.LT, token.LE, token.GT, token.GE, token.EQ, token.NE:
		if left != right {
			return Invalid
		}
		switch left {
		case Int, Float, Char:
			return Bool
		default:
			return Invalid
		}
	case token.LAND, token.LOR:
		if left == Bool && right == Bool {
			return Bool
		}
		return Invalid
	default:
		return Invalid
	}
}

// CheckUnaryOp returns the result type of applying a prefix operator to an
// operand of type operand, or Invalid if not permitted.
func CheckUnaryOp(op token.Type, operand GoxType) GoxType {
	switch op {
	case token.PLUS, token.MINUS:
		if operand == Int || operand == Float {
			return operand
		}
		return Invalid
	case token.GROW:
		if operand == Int {
			return Int
		}
		return Invalid
	default:
		return Invalid
	}
}

// CheckCast reports whether a cast to target is legal for a value of type
// from. Casts between any two scalar types are legal; only int<->float
// actually emits a conversion instruction (see internal/ir).
func CheckCast(target, from GoxType) bool {
	return target != Invalid && from != Invalid
}
