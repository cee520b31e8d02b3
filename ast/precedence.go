// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// Precedence is an operator precedence level. Higher binds tighter.
// The parser derives its binding powers from these levels and the
// generator uses them to decide where parentheses are required, so the
// two always agree.
type Precedence int

const (
	PrecLowest Precedence = iota
	PrecComma
	PrecAssignment
	PrecTernary
	PrecLogicalOr
	PrecLogicalXor
	PrecLogicalAnd
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecPrefix
	PrecPostfix
	PrecPrimary
)

var binaryPrecedence = map[string]Precedence{
	",": PrecComma,

	"=": PrecAssignment, "+=": PrecAssignment, "-=": PrecAssignment,
	"*=": PrecAssignment, "/=": PrecAssignment, "%=": PrecAssignment,
	"<<=": PrecAssignment, ">>=": PrecAssignment,
	"&=": PrecAssignment, "^=": PrecAssignment, "|=": PrecAssignment,

	"||": PrecLogicalOr,
	"^^": PrecLogicalXor,
	"&&": PrecLogicalAnd,
	"|":  PrecBitwiseOr,
	"^":  PrecBitwiseXor,
	"&":  PrecBitwiseAnd,

	"==": PrecEquality, "!=": PrecEquality,
	"<": PrecRelational, ">": PrecRelational, "<=": PrecRelational, ">=": PrecRelational,
	"<<": PrecShift, ">>": PrecShift,
	"+": PrecAdditive, "-": PrecAdditive,
	"*": PrecMultiplicative, "/": PrecMultiplicative, "%": PrecMultiplicative,
}

// BinaryPrecedence returns the precedence of a binary operator, or
// PrecLowest if op is not one.
func BinaryPrecedence(op string) Precedence {
	return binaryPrecedence[op]
}

// IsPrefixOperator reports whether op may start a prefix unary expression.
func IsPrefixOperator(op string) bool {
	switch op {
	case "-", "+", "!", "~", "++", "--", "&", "*":
		return true
	}
	return false
}

// RightAssociative reports whether operators at level p group right to left.
func (p Precedence) RightAssociative() bool {
	return p == PrecAssignment || p == PrecTernary
}

// PrecedenceOf returns the precedence of the outermost operator of e.
func PrecedenceOf(e Expression) Precedence {
	switch e := e.(type) {
	case *BinaryExpression:
		return BinaryPrecedence(e.Operator)
	case *TernaryExpression:
		return PrecTernary
	case *UnaryExpression:
		if e.Prefix {
			return PrecPrefix
		}
		return PrecPostfix
	case *CallExpression, *MemberExpression, *ArrayExpression:
		return PrecPostfix
	default:
		return PrecPrimary
	}
}
