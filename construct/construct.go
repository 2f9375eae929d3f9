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

package construct

import (
	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

// Types

// Type-variable with the given id: `'a`
//
// Type-variables within declared types are generic.
func TVar(id int) *types.Var {
	return types.NewVar(types.VarId(id))
}

// Boolean type: `bool`
func TBool() *types.Bool { return types.NewBool() }

// Integer type: `int`
func TInt() *types.Int { return types.NewInt() }

// Function type: `int -> int`
func TFunc(arg types.Type, ret types.Type) *types.Func {
	return types.NewFunc(arg, ret)
}

// Curried function type: `int -> int -> int`
func TFuncN(args []types.Type, ret types.Type) types.Type {
	return types.NewCurried(args, ret)
}

// Record type: `{x : int, y : bool}`
func TRecord(fields ...TypeField) *types.Record {
	b := types.NewTypeMapBuilder()
	for _, f := range fields {
		b.Set(f.Label, f.Type)
	}
	return &types.Record{Fields: b.Build()}
}

// Paired label and field type
type TypeField struct {
	Label string
	Type  types.Type
}

// Record field type: `x : int`
func TField(label string, t types.Type) TypeField {
	return TypeField{Label: label, Type: t}
}

// Recursive type: `rec 'a. {next : 'a}`
func TRec(id int, body types.Type) *types.Recursive {
	return &types.Recursive{Var: types.VarId(id), Body: body}
}

// Expressions

// Assign a source location to an expression.
func At[E ast.Expr](line, column int, e E) E {
	e.SetLocation(ast.Loc{Line: line, Column: column})
	return e
}

// Boolean literal: `true`
func Bool(value bool) *ast.Bool {
	return &ast.Bool{Value: value}
}

// Integer literal: `1`
func Int(value int64) *ast.Int {
	return &ast.Int{Value: value}
}

// Variable: `x`
func Var(name string) *ast.Var {
	return &ast.Var{Name: name}
}

// Application: `f(x, y)`
func Call(f ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: f, Args: args}
}

// Abstraction: `fn (x, y) -> x`
func Func(params []string, body ast.Expr) *ast.Func {
	ps := make([]ast.Param, len(params))
	for i, name := range params {
		ps[i] = ast.Param{Name: name}
	}
	return &ast.Func{Params: ps, Body: body}
}

// Abstraction: `fn (x) -> x`
func Func1(param string, body ast.Expr) *ast.Func {
	return Func([]string{param}, body)
}

// Abstraction: `fn (x, y) -> x`
func Func2(param1, param2 string, body ast.Expr) *ast.Func {
	return Func([]string{param1, param2}, body)
}

// Abstraction with declared types: `fn (x : int) : int -> x`
//
// ret may be nil.
func FuncT(params []ast.Param, ret types.Type, body ast.Expr) *ast.Func {
	return &ast.Func{Params: params, Return: ret, Body: body}
}

// Function parameter with a declared type: `x : int`
func Param(name string, t types.Type) ast.Param {
	return ast.Param{Name: name, Type: t}
}

// Let-binding: `let a = 1 in e`
func Let(varName string, value ast.Expr, body ast.Expr) *ast.Let {
	return &ast.Let{Var: varName, Value: value, Body: body}
}

// Grouped let-bindings: `let a = 1 and b = 2 in e`
func LetGroup(vars []ast.LetBinding, body ast.Expr) *ast.LetGroup {
	return &ast.LetGroup{Vars: vars, Body: body}
}

// Paired identifier and value
func LetBinding(varName string, value ast.Expr) ast.LetBinding {
	return ast.LetBinding{Var: varName, Value: value}
}

// Conditional: `if c then a else b`
func If(cond, then, els ast.Expr) *ast.If {
	return &ast.If{Cond: cond, Then: then, Else: els}
}

// Binary operation: `a + b`
func BinaryOp(op ast.Operator, left, right ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Op: op, Left: left, Right: right}
}

// Unary operation: `-a`
func UnaryOp(op ast.Operator, operand ast.Expr) *ast.UnaryOp {
	return &ast.UnaryOp{Op: op, Operand: operand}
}

// Record construction: `{a = 1, b = true}`
func Record(fields ...ast.LabelValue) *ast.Record {
	return &ast.Record{Fields: fields}
}

// Paired label and value
func LabelValue(label string, value ast.Expr) ast.LabelValue {
	return ast.LabelValue{Label: label, Value: value}
}

// Selecting value of label: `r.a`
func Select(record ast.Expr, label string) *ast.Select {
	return &ast.Select{Record: record, Label: label}
}

// Module of top-level definitions
func Module(name string, defs ...*ast.Def) *ast.Module {
	return &ast.Module{Name: name, Defs: defs}
}

// Top-level definition: `def f = e`
func Def(name string, value ast.Expr) *ast.Def {
	return &ast.Def{Name: name, Value: value}
}
