// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"github.com/gogpu/shaderkit/ast"
)

// expression writes e, wrapped in parentheses if its precedence is below min.
func (w *Writer) expression(e ast.Expression, min ast.Precedence) {
	if ast.PrecedenceOf(e) < min {
		w.sym("(")
		w.expression(e, ast.PrecLowest)
		w.sym(")")
		return
	}

	switch e := e.(type) {
	case *ast.Literal:
		w.literal(e.Value)
	case *ast.Identifier:
		w.word(e.Name)
	case *ast.Type:
		w.typ(e)
	case *ast.UnaryExpression:
		if e.Prefix {
			w.sym(e.Operator)
			w.expression(e.Argument, ast.PrecPrefix)
		} else {
			w.expression(e.Argument, ast.PrecPostfix)
			w.sym(e.Operator)
		}
	case *ast.BinaryExpression:
		prec := ast.BinaryPrecedence(e.Operator)
		left, right := prec, prec+1
		if prec.RightAssociative() {
			left, right = prec+1, prec
		}
		w.expression(e.Left, left)
		w.sym(e.Operator)
		w.expression(e.Right, right)
	case *ast.TernaryExpression:
		w.expression(e.Test, ast.PrecTernary+1)
		w.sym("?")
		w.expression(e.Consequent, ast.PrecLowest)
		w.sym(":")
		w.expression(e.Alternate, ast.PrecTernary)
	case *ast.CallExpression:
		w.expression(e.Callee, ast.PrecPostfix)
		w.arguments(e.Arguments)
	case *ast.MemberExpression:
		w.expression(e.Object, ast.PrecPostfix)
		if e.Computed {
			w.sym("[")
			if e.Property != nil {
				w.expression(e.Property, ast.PrecLowest)
			}
			w.sym("]")
		} else {
			w.sym(".")
			w.expression(e.Property, ast.PrecPrimary)
		}
	case *ast.ArrayExpression:
		w.typ(e.Type)
		w.arguments(e.Elements)
	default:
		panic(unknownNode(e))
	}
}

func (w *Writer) arguments(args []ast.Expression) {
	w.sym("(")
	for i, a := range args {
		if i > 0 {
			w.sym(",")
		}
		w.expression(a, ast.PrecAssignment)
	}
	w.sym(")")
}

// typ writes a type specifier.
func (w *Writer) typ(t *ast.Type) {
	w.word(t.Name)
	if len(t.Parameters) > 0 {
		w.sym("<")
		for i, p := range t.Parameters {
			if i > 0 {
				w.sym(",")
			}
			w.expression(p, ast.PrecShift)
		}
		w.sym(">")
	}
	w.arraySizes(t.ArraySizes)
}

func (w *Writer) arraySizes(sizes []ast.Expression) {
	for _, s := range sizes {
		w.sym("[")
		if s != nil {
			w.expression(s, ast.PrecLowest)
		}
		w.sym("]")
	}
}
