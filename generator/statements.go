// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package generator

import (
	"github.com/gogpu/shaderkit/ast"
)

// statement writes one statement. A nil statement is the empty statement.
func (w *Writer) statement(s ast.Statement) {
	switch s := s.(type) {
	case nil:
		w.sym(";")
	case *ast.PreprocessorStatement:
		w.directive(s)
	case *ast.VariableDeclaration:
		w.variableDeclaration(s)
		w.sym(";")
	case *ast.FunctionDeclaration:
		w.function(s)
	case *ast.StructDeclaration:
		w.structDeclaration(s)
	case *ast.InterfaceBlock:
		w.interfaceBlock(s)
	case *ast.PrecisionStatement:
		w.word("precision")
		w.word(s.Precision)
		w.typ(s.Type)
		w.sym(";")
	case *ast.BlockStatement:
		w.block(s)
	case *ast.ExpressionStatement:
		w.expression(s.Expression, ast.PrecLowest)
		w.sym(";")
	case *ast.IfStatement:
		w.word("if")
		w.parenthesized(s.Test)
		w.statement(s.Consequent)
		if s.Alternate != nil {
			w.word("else")
			w.statement(s.Alternate)
		}
	case *ast.WhileStatement:
		w.word("while")
		w.parenthesized(s.Test)
		w.statement(s.Body)
	case *ast.DoWhileStatement:
		w.word("do")
		w.statement(s.Body)
		w.word("while")
		w.parenthesized(s.Test)
		w.sym(";")
	case *ast.ForStatement:
		w.word("for")
		w.sym("(")
		w.statement(s.Init)
		if s.Test != nil {
			w.expression(s.Test, ast.PrecLowest)
		}
		w.sym(";")
		if s.Update != nil {
			w.expression(s.Update, ast.PrecLowest)
		}
		w.sym(")")
		w.statement(s.Body)
	case *ast.SwitchStatement:
		w.word("switch")
		w.parenthesized(s.Discriminant)
		w.sym("{")
		for _, c := range s.Cases {
			if c.Test != nil {
				w.word("case")
				w.expression(c.Test, ast.PrecLowest)
			} else {
				w.word("default")
			}
			w.sym(":")
			for _, cs := range c.Consequent {
				w.statement(cs)
			}
		}
		w.sym("}")
	case *ast.ReturnStatement:
		w.word("return")
		if s.Argument != nil {
			w.expression(s.Argument, ast.PrecLowest)
		}
		w.sym(";")
	case *ast.BreakStatement:
		w.word("break")
		w.sym(";")
	case *ast.ContinueStatement:
		w.word("continue")
		w.sym(";")
	case *ast.DiscardStatement:
		w.word("discard")
		w.sym(";")
	default:
		panic(unknownNode(s))
	}
}

func (w *Writer) block(b *ast.BlockStatement) {
	w.sym("{")
	for _, s := range b.Body {
		w.statement(s)
	}
	w.sym("}")
}

func (w *Writer) parenthesized(e ast.Expression) {
	w.sym("(")
	w.expression(e, ast.PrecLowest)
	w.sym(")")
}

// directive writes a preprocessor line on its own line.
func (w *Writer) directive(d *ast.PreprocessorStatement) {
	w.newline()
	w.raw("#" + d.Name)

	for i, v := range d.Value {
		w.raw(" ")
		if lit, ok := v.(*ast.Literal); ok && (i > 0 || d.Name != "define") {
			w.raw(lit.Value)
			continue
		}
		w.expression(v, ast.PrecLowest)
	}

	w.raw("\n")
}

// layout writes layout(...) for GLSL or @attr(...) for WGSL.
func (w *Writer) layout(l ast.Layout) {
	if len(l) == 0 {
		return
	}
	if w.wgsl {
		for _, q := range l {
			w.sym("@")
			w.word(q.Key)
			if q.Value != nil {
				w.sym("(")
				w.expression(q.Value, ast.PrecLowest)
				w.sym(")")
			}
		}
		return
	}

	w.word("layout")
	w.sym("(")
	for i, q := range l {
		if i > 0 {
			w.sym(",")
		}
		w.word(q.Key)
		if q.Value != nil {
			w.sym("=")
			w.expression(q.Value, ast.PrecAssignment)
		}
	}
	w.sym(")")
}

func (w *Writer) qualifiers(quals []string) {
	for _, q := range quals {
		w.word(q)
	}
}

// variableDeclaration writes a declaration without its terminating ';'.
func (w *Writer) variableDeclaration(d *ast.VariableDeclaration) {
	if w.wgsl {
		w.wgslVariable(d)
		return
	}
	w.layout(d.Layout)
	if d.Kind != "" {
		w.word(d.Kind)
	}
	w.qualifiers(d.Qualifiers)
	if d.Type != nil {
		w.typ(d.Type)
	}
	w.declarators(d.Declarations)
}

func (w *Writer) declarators(list []*ast.VariableDeclarator) {
	for i, d := range list {
		if i > 0 {
			w.sym(",")
		}
		w.declarator(d)
	}
}

func (w *Writer) declarator(d *ast.VariableDeclarator) {
	w.word(d.Name)
	w.arraySizes(d.ArraySizes)
	if d.Init != nil {
		w.sym("=")
		w.expression(d.Init, ast.PrecAssignment)
	}
}

// wgslVariable writes [attrs] kind<quals> name: type = init for each
// declarator. Parameters and struct members have no kind.
func (w *Writer) wgslVariable(d *ast.VariableDeclaration) {
	for i, decl := range d.Declarations {
		if i > 0 {
			w.sym(";")
		}
		w.layout(d.Layout)
		if d.Kind != "" {
			w.word(d.Kind)
			if len(d.Qualifiers) > 0 {
				w.sym("<")
				for j, q := range d.Qualifiers {
					if j > 0 {
						w.sym(",")
					}
					w.word(q)
				}
				w.sym(">")
			}
		}
		w.word(decl.Name)
		if d.Type != nil {
			w.sym(":")
			w.typ(d.Type)
		}
		w.arraySizes(decl.ArraySizes)
		if decl.Init != nil {
			w.sym("=")
			w.expression(decl.Init, ast.PrecAssignment)
		}
	}
}

func (w *Writer) function(fn *ast.FunctionDeclaration) {
	if w.wgsl {
		w.layout(fn.Layout)
		w.word("fn")
		w.word(fn.Name)
		w.params(fn.Params)
		if fn.Type != nil {
			w.sym("->")
			w.layout(fn.ReturnLayout)
			w.typ(fn.Type)
		}
	} else {
		w.layout(fn.Layout)
		w.qualifiers(fn.Qualifiers)
		if fn.Type != nil {
			w.typ(fn.Type)
		} else {
			w.word("void")
		}
		w.word(fn.Name)
		w.params(fn.Params)
	}

	if fn.Body == nil {
		w.sym(";")
		return
	}
	w.block(fn.Body)
}

func (w *Writer) params(params []*ast.VariableDeclaration) {
	w.sym("(")
	for i, p := range params {
		if i > 0 {
			w.sym(",")
		}
		w.variableDeclaration(p)
	}
	w.sym(")")
}

func (w *Writer) structDeclaration(s *ast.StructDeclaration) {
	w.word("struct")
	if s.Name != "" {
		w.word(s.Name)
	}
	w.members(s.Members)
	if w.wgsl {
		return
	}
	w.declarators(s.Declarations)
	w.sym(";")
}

func (w *Writer) interfaceBlock(b *ast.InterfaceBlock) {
	w.layout(b.Layout)
	w.qualifiers(b.Qualifiers)
	w.word(b.Name)
	w.members(b.Members)
	if b.Instance != nil {
		w.declarator(b.Instance)
	}
	w.sym(";")
}

// members writes { m; m; } for GLSL and { m, m, } for WGSL.
func (w *Writer) members(members []*ast.VariableDeclaration) {
	sep := ";"
	if w.wgsl {
		sep = ","
	}
	w.sym("{")
	for _, m := range members {
		w.variableDeclaration(m)
		w.sym(sep)
	}
	w.sym("}")
}
