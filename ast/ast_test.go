// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryPrecedenceOrder(t *testing.T) {
	order := []string{",", "=", "||", "^^", "&&", "|", "^", "&", "==", "<", "<<", "+", "*"}
	for i := 1; i < len(order); i++ {
		assert.Less(t, BinaryPrecedence(order[i-1]), BinaryPrecedence(order[i]), "%s < %s", order[i-1], order[i])
	}
	assert.Equal(t, PrecLowest, BinaryPrecedence("?"))
	assert.Equal(t, PrecAssignment, BinaryPrecedence(">>="))
}

func TestRightAssociative(t *testing.T) {
	assert.True(t, PrecAssignment.RightAssociative())
	assert.True(t, PrecTernary.RightAssociative())
	assert.False(t, PrecAdditive.RightAssociative())
}

func TestPrecedenceOf(t *testing.T) {
	id := &Identifier{Name: "a"}
	assert.Equal(t, PrecPrimary, PrecedenceOf(id))
	assert.Equal(t, PrecPrimary, PrecedenceOf(&Literal{Value: "1"}))
	assert.Equal(t, PrecAdditive, PrecedenceOf(&BinaryExpression{Operator: "-", Left: id, Right: id}))
	assert.Equal(t, PrecTernary, PrecedenceOf(&TernaryExpression{Test: id, Consequent: id, Alternate: id}))
	assert.Equal(t, PrecPrefix, PrecedenceOf(&UnaryExpression{Operator: "-", Prefix: true, Argument: id}))
	assert.Equal(t, PrecPostfix, PrecedenceOf(&UnaryExpression{Operator: "++", Argument: id}))
	assert.Equal(t, PrecPostfix, PrecedenceOf(&CallExpression{Callee: id}))
}

func TestLayoutLookup(t *testing.T) {
	l := Layout{
		{Key: "std140"},
		{Key: "binding", Value: &Literal{Value: "2"}},
	}
	v, ok := l.Lookup("std140")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = l.Lookup("binding")
	assert.True(t, ok)
	assert.Equal(t, &Literal{Value: "2"}, v)

	_, ok = l.Lookup("location")
	assert.False(t, ok)

	_, ok = Layout(nil).Lookup("std140")
	assert.False(t, ok)
}

func TestInspect(t *testing.T) {
	// void main() { float x = a + f(1); if (x > 0.0) return; }
	fn := &FunctionDeclaration{
		Type: &Type{Name: "void"},
		Name: "main",
		Body: &BlockStatement{Body: []Statement{
			&VariableDeclaration{
				Type: &Type{Name: "float"},
				Declarations: []*VariableDeclarator{{
					Name: "x",
					Init: &BinaryExpression{
						Operator: "+",
						Left:     &Identifier{Name: "a"},
						Right: &CallExpression{
							Callee:    &Identifier{Name: "f"},
							Arguments: []Expression{&Literal{Value: "1"}},
						},
					},
				}},
			},
			&IfStatement{
				Test: &BinaryExpression{
					Operator: ">",
					Left:     &Identifier{Name: "x"},
					Right:    &Literal{Value: "0.0"},
				},
				Consequent: &ReturnStatement{},
			},
		}},
	}

	var seen []string
	Inspect(fn, func(n Node) bool {
		switch n := n.(type) {
		case *Identifier:
			seen = append(seen, n.Name)
		case *Literal:
			seen = append(seen, n.Value)
		default:
			seen = append(seen, fmt.Sprintf("%T", n))
		}
		return true
	})

	assert.Equal(t, []string{
		"*ast.FunctionDeclaration", "*ast.Type", "*ast.BlockStatement",
		"*ast.VariableDeclaration", "*ast.Type", "*ast.VariableDeclarator",
		"*ast.BinaryExpression", "a", "*ast.CallExpression", "f", "1",
		"*ast.IfStatement", "*ast.BinaryExpression", "x", "0.0", "*ast.ReturnStatement",
	}, seen)
}

func TestInspectPrune(t *testing.T) {
	block := &BlockStatement{Body: []Statement{
		&ExpressionStatement{Expression: &Identifier{Name: "hidden"}},
	}}
	count := 0
	Inspect(block, func(n Node) bool {
		count++
		_, isStmt := n.(*ExpressionStatement)
		return !isStmt
	})
	assert.Equal(t, 2, count)
}
