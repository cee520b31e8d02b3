// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ast defines the syntax tree of GLSL and WGSL shader programs.
//
// A program is a []Statement in source order. Nodes hold plain values only:
// no tokens and no source positions survive parsing, so two parses of
// equivalent text produce equal trees. The tree is never shared; every child
// has exactly one parent.
package ast

// Node is the base interface for all AST nodes.
type Node interface {
	node()
}

// Statement is the interface for statements and declarations.
type Statement interface {
	Node
	stmtNode()
}

// Expression is the interface for expressions.
type Expression interface {
	Node
	exprNode()
}

// Expressions

// Literal is a numeric or boolean literal, or opaque text kept verbatim
// (a #define body, an unparsable #if condition).
type Literal struct {
	Value string
}

// Identifier is a reference to a name.
type Identifier struct {
	Name string
}

// Type is a type specifier: a built-in or user type name, WGSL template
// parameters, and array dimensions. A nil entry in ArraySizes is an
// unsized dimension.
type Type struct {
	Name       string
	Parameters []Expression
	ArraySizes []Expression
}

// UnaryExpression is a prefix (-x, !x, ++x) or postfix (x++) operation.
type UnaryExpression struct {
	Operator string
	Prefix   bool
	Argument Expression
}

// BinaryExpression covers arithmetic, logical, comparison, assignment and
// comma operators.
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

// TernaryExpression is test ? consequent : alternate.
type TernaryExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// CallExpression is a function call or constructor.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

// MemberExpression is object.property, or object[property] when Computed.
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
}

// ArrayExpression is an array constructor such as float[3](a, b, c).
type ArrayExpression struct {
	Type     *Type
	Elements []Expression
}

func (*Literal) node()           {}
func (*Identifier) node()        {}
func (*Type) node()              {}
func (*UnaryExpression) node()   {}
func (*BinaryExpression) node()  {}
func (*TernaryExpression) node() {}
func (*CallExpression) node()    {}
func (*MemberExpression) node()  {}
func (*ArrayExpression) node()   {}

func (*Literal) exprNode()           {}
func (*Identifier) exprNode()        {}
func (*Type) exprNode()              {}
func (*UnaryExpression) exprNode()   {}
func (*BinaryExpression) exprNode()  {}
func (*TernaryExpression) exprNode() {}
func (*CallExpression) exprNode()    {}
func (*MemberExpression) exprNode()  {}
func (*ArrayExpression) exprNode()   {}

// Layout is an ordered list of layout qualifiers (GLSL) or attributes (WGSL).
type Layout []LayoutQualifier

// LayoutQualifier is one entry of a Layout. A nil Value is a bare flag such
// as std140 or @vertex; otherwise Value is the assigned expression
// (location=0) or the attribute arguments (@workgroup_size(8, 8)).
type LayoutQualifier struct {
	Key   string
	Value Expression
}

// Lookup returns the value of key and whether key is present. A present
// flag returns a nil expression.
func (l Layout) Lookup(key string) (Expression, bool) {
	for _, q := range l {
		if q.Key == key {
			return q.Value, true
		}
	}
	return nil, false
}

// Declarations

// VariableDeclarator is one name in a declaration list.
type VariableDeclarator struct {
	Name       string
	ArraySizes []Expression
	Init       Expression
}

func (*VariableDeclarator) node() {}

// VariableDeclaration declares one or more variables of a type. It is also
// used for function parameters and aggregate members.
//
// Kind is empty for GLSL and one of var, let, const or override for WGSL.
// WGSL address space and access mode (var<storage, read>) are Qualifiers.
type VariableDeclaration struct {
	Layout       Layout
	Kind         string
	Qualifiers   []string
	Type         *Type
	Declarations []*VariableDeclarator
}

// FunctionDeclaration is a function definition, or a prototype when Body is
// nil. Type is the return type; it is nil for a WGSL function without one.
type FunctionDeclaration struct {
	Layout       Layout
	Qualifiers   []string
	Type         *Type
	Name         string
	Params       []*VariableDeclaration
	ReturnLayout Layout
	Body         *BlockStatement
}

// StructDeclaration is a struct type, optionally followed by declarators
// (struct S { ... } a, b;).
type StructDeclaration struct {
	Name         string
	Members      []*VariableDeclaration
	Declarations []*VariableDeclarator
}

// InterfaceBlock is a GLSL uniform, buffer, in or out block. Instance is nil
// for an anonymous block, whose members are globals.
type InterfaceBlock struct {
	Layout     Layout
	Qualifiers []string
	Name       string
	Members    []*VariableDeclaration
	Instance   *VariableDeclarator
}

// PrecisionStatement is precision mediump float.
type PrecisionStatement struct {
	Precision string
	Type      *Type
}

// PreprocessorStatement is a directive line. Value depends on the directive:
//
//	#define NAME body        [Identifier, Literal]
//	#define NAME(a, b) body  [CallExpression, Literal]
//	#if expr / #elif expr    [expression]
//	#ifdef / #ifndef / #undef NAME  [Identifier]
//	#else / #endif           nil
//	anything else            [Literal]
//
// A #define without a body has a single element.
type PreprocessorStatement struct {
	Name  string
	Value []Expression
}

// Statements

// BlockStatement is { body }.
type BlockStatement struct {
	Body []Statement
}

// ExpressionStatement is an expression followed by ';'.
type ExpressionStatement struct {
	Expression Expression
}

// IfStatement is if (test) consequent else alternate.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// WhileStatement is while (test) body.
type WhileStatement struct {
	Test Expression
	Body Statement
}

// DoWhileStatement is do body while (test);.
type DoWhileStatement struct {
	Body Statement
	Test Expression
}

// ForStatement is for (init; test; update) body. Init is a
// *VariableDeclaration or an *ExpressionStatement; every part may be nil.
type ForStatement struct {
	Init   Statement
	Test   Expression
	Update Expression
	Body   Statement
}

// SwitchStatement is switch (discriminant) { cases }.
type SwitchStatement struct {
	Discriminant Expression
	Cases        []*SwitchCase
}

// SwitchCase is one case label with the statements that follow it up to
// the next label. Test is nil for default.
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

// ReturnStatement is return argument;.
type ReturnStatement struct {
	Argument Expression
}

// BreakStatement is break;.
type BreakStatement struct{}

// ContinueStatement is continue;.
type ContinueStatement struct{}

// DiscardStatement is discard;.
type DiscardStatement struct{}

func (*VariableDeclaration) node()   {}
func (*FunctionDeclaration) node()   {}
func (*StructDeclaration) node()     {}
func (*InterfaceBlock) node()        {}
func (*PrecisionStatement) node()    {}
func (*PreprocessorStatement) node() {}
func (*BlockStatement) node()        {}
func (*ExpressionStatement) node()   {}
func (*IfStatement) node()           {}
func (*WhileStatement) node()        {}
func (*DoWhileStatement) node()      {}
func (*ForStatement) node()          {}
func (*SwitchStatement) node()       {}
func (*SwitchCase) node()            {}
func (*ReturnStatement) node()       {}
func (*BreakStatement) node()        {}
func (*ContinueStatement) node()     {}
func (*DiscardStatement) node()      {}

func (*VariableDeclaration) stmtNode()   {}
func (*FunctionDeclaration) stmtNode()   {}
func (*StructDeclaration) stmtNode()     {}
func (*InterfaceBlock) stmtNode()        {}
func (*PrecisionStatement) stmtNode()    {}
func (*PreprocessorStatement) stmtNode() {}
func (*BlockStatement) stmtNode()        {}
func (*ExpressionStatement) stmtNode()   {}
func (*IfStatement) stmtNode()           {}
func (*WhileStatement) stmtNode()        {}
func (*DoWhileStatement) stmtNode()      {}
func (*ForStatement) stmtNode()          {}
func (*SwitchStatement) stmtNode()       {}
func (*ReturnStatement) stmtNode()       {}
func (*BreakStatement) stmtNode()        {}
func (*ContinueStatement) stmtNode()     {}
func (*DiscardStatement) stmtNode()      {}
