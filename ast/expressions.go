// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ast

import (
	"strconv"

	"github.com/wdamron/polar/types"
)

// Loc is a source location. The zero Loc is an unknown location.
type Loc struct {
	Line   int
	Column int
}

func (l Loc) IsValid() bool { return l.Line > 0 }

func (l Loc) String() string {
	if !l.IsValid() {
		return "-"
	}
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Location of the expression in source.
	Location() Loc
	// Assign a location to the expression.
	SetLocation(Loc)
	// Type returns the inferred type of an expression. Expression types are only available after type-inference.
	Type() types.Type
	// Assign a type to the expression. Type assignments should occur indirectly, during inference.
	SetType(types.Type)
}

var (
	_ Expr = (*Bool)(nil)
	_ Expr = (*Int)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*LetGroup)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Select)(nil)
)

// Node holds the location and inferred type shared by all expressions.
type Node struct {
	Pos      Loc
	inferred types.Type
}

func (n *Node) Location() Loc { return n.Pos }

func (n *Node) SetLocation(l Loc) { n.Pos = l }

// Get the inferred (or assigned) type of the expression.
func (n *Node) Type() types.Type { return n.inferred }

// Assign a type to the expression. Type assignments should occur indirectly, during inference.
func (n *Node) SetType(t types.Type) { n.inferred = t }

// Boolean literal: `true`
type Bool struct {
	Node
	Value bool
}

// "Bool"
func (e *Bool) ExprName() string { return "Bool" }

// Integer literal: `1`
type Int struct {
	Node
	Value int64
}

// "Int"
func (e *Int) ExprName() string { return "Int" }

// Variable
type Var struct {
	Node
	Name string
}

// "Var"
func (e *Var) ExprName() string { return "Var" }

// Abstraction: `fn (x, y) -> x`
//
// A function with multiple parameters has a curried type.
type Func struct {
	Node
	Params []Param
	// Declared return type (optional)
	Return types.Type
	Body   Expr
}

// "Func"
func (e *Func) ExprName() string { return "Func" }

// Function parameter, with an optional declared type
type Param struct {
	Name string
	Type types.Type
}

// Application: `f(x, y)`
type Call struct {
	Node
	Func Expr
	Args []Expr
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Let-binding: `let a = 1 in e`
//
// If the bound value is a function, the function may refer to itself.
type Let struct {
	Node
	Var   string
	Value Expr
	Body  Expr
}

// "Let"
func (e *Let) ExprName() string { return "Let" }

// Grouped let-bindings: `let a = 1 and b = 2 in e`
//
// Functions within a group may refer to each other.
type LetGroup struct {
	Node
	Vars []LetBinding
	Body Expr
}

// "LetGroup"
func (e *LetGroup) ExprName() string { return "LetGroup" }

// Paired identifier and value
type LetBinding struct {
	Var   string
	Value Expr
}

// Conditional: `if c then a else b`
type If struct {
	Node
	Cond Expr
	Then Expr
	Else Expr
}

// "If"
func (e *If) ExprName() string { return "If" }

// Binary operation: `a + b`
type BinaryOp struct {
	Node
	Op    Operator
	Left  Expr
	Right Expr
}

// "BinaryOp"
func (e *BinaryOp) ExprName() string { return "BinaryOp" }

// Unary operation: `-a`
type UnaryOp struct {
	Node
	Op      Operator
	Operand Expr
}

// "UnaryOp"
func (e *UnaryOp) ExprName() string { return "UnaryOp" }

// Record construction: `{a = 1, b = true}`
type Record struct {
	Node
	Fields []LabelValue
}

// "Record"
func (e *Record) ExprName() string { return "Record" }

// Paired label and value
type LabelValue struct {
	Label string
	Value Expr
}

// Selecting value of label: `r.a`
type Select struct {
	Node
	Record Expr
	Label  string
}

// "Select"
func (e *Select) ExprName() string { return "Select" }

// Module is a compilation unit of top-level definitions. Definitions within a module may
// refer to each other in any order.
type Module struct {
	Name string
	Defs []*Def
}

// Top-level definition: `def f = e`
type Def struct {
	Pos   Loc
	Name  string
	Value Expr
}

// Operator of a unary or binary operation
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Rem
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And
	Or
	Neg
	Not
)

var operatorNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",
	Lt:  "<",
	Le:  "<=",
	Gt:  ">",
	Ge:  ">=",
	Eq:  "==",
	Ne:  "!=",
	And: "&&",
	Or:  "||",
	Neg: "-",
	Not: "!",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "Operator(" + strconv.Itoa(int(op)) + ")"
}

// Operand and result types of an operator
func (op Operator) Signature() (operand, result types.Type) {
	switch op {
	case Add, Sub, Mul, Div, Rem, Neg:
		return types.NewInt(), types.NewInt()
	case Lt, Le, Gt, Ge, Eq, Ne:
		return types.NewInt(), types.NewBool()
	default: // And, Or, Not
		return types.NewBool(), types.NewBool()
	}
}
