// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(node) first; if f returns true, Inspect visits the children of node in
// source order. Nil children are skipped.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Literal, *Identifier, *BreakStatement, *ContinueStatement, *DiscardStatement:
		// leaves

	case *Type:
		inspectList(n.Parameters, f)
		inspectList(n.ArraySizes, f)
	case *UnaryExpression:
		Inspect(n.Argument, f)
	case *BinaryExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *TernaryExpression:
		Inspect(n.Test, f)
		Inspect(n.Consequent, f)
		Inspect(n.Alternate, f)
	case *CallExpression:
		Inspect(n.Callee, f)
		inspectList(n.Arguments, f)
	case *MemberExpression:
		Inspect(n.Object, f)
		Inspect(n.Property, f)
	case *ArrayExpression:
		inspectType(n.Type, f)
		inspectList(n.Elements, f)

	case *VariableDeclarator:
		inspectList(n.ArraySizes, f)
		Inspect(n.Init, f)
	case *VariableDeclaration:
		inspectLayout(n.Layout, f)
		inspectType(n.Type, f)
		for _, d := range n.Declarations {
			Inspect(d, f)
		}
	case *FunctionDeclaration:
		inspectLayout(n.Layout, f)
		inspectType(n.Type, f)
		for _, p := range n.Params {
			Inspect(p, f)
		}
		inspectLayout(n.ReturnLayout, f)
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *StructDeclaration:
		for _, m := range n.Members {
			Inspect(m, f)
		}
		for _, d := range n.Declarations {
			Inspect(d, f)
		}
	case *InterfaceBlock:
		inspectLayout(n.Layout, f)
		for _, m := range n.Members {
			Inspect(m, f)
		}
		if n.Instance != nil {
			Inspect(n.Instance, f)
		}
	case *PrecisionStatement:
		inspectType(n.Type, f)
	case *PreprocessorStatement:
		inspectList(n.Value, f)

	case *BlockStatement:
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *ExpressionStatement:
		Inspect(n.Expression, f)
	case *IfStatement:
		Inspect(n.Test, f)
		Inspect(n.Consequent, f)
		Inspect(n.Alternate, f)
	case *WhileStatement:
		Inspect(n.Test, f)
		Inspect(n.Body, f)
	case *DoWhileStatement:
		Inspect(n.Body, f)
		Inspect(n.Test, f)
	case *ForStatement:
		Inspect(n.Init, f)
		Inspect(n.Test, f)
		Inspect(n.Update, f)
		Inspect(n.Body, f)
	case *SwitchStatement:
		Inspect(n.Discriminant, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
	case *SwitchCase:
		Inspect(n.Test, f)
		for _, s := range n.Consequent {
			Inspect(s, f)
		}
	case *ReturnStatement:
		Inspect(n.Argument, f)
	}
}

func inspectList(list []Expression, f func(Node) bool) {
	for _, e := range list {
		Inspect(e, f)
	}
}

func inspectType(t *Type, f func(Node) bool) {
	if t != nil {
		Inspect(t, f)
	}
}

func inspectLayout(l Layout, f func(Node) bool) {
	for _, q := range l {
		Inspect(q.Value, f)
	}
}

// isNil reports whether node is nil or a typed nil pointer stored in an
// interface.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *BlockStatement:
		return n == nil
	case *Type:
		return n == nil
	case *VariableDeclarator:
		return n == nil
	}
	return false
}
