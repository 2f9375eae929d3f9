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

package polar_test

import (
	"context"
	"testing"

	. "github.com/wdamron/polar"
	. "github.com/wdamron/polar/construct"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

func BenchmarkMutuallyRecursiveLet(b *testing.B) {
	env := NewTypeEnv(nil)
	ctx := NewContext()

	env.Declare("add", TFuncN([]types.Type{TInt(), TInt()}, TInt()))
	env.Declare("somebool", TBool())

	somebool := Var("somebool")
	add := Var("add")
	f := Var("f")
	g := Var("g")
	h := Var("h")
	id := Var("id")
	x := Var("x")

	expr := LetGroup(
		[]ast.LetBinding{
			{Var: "id", Value: Func1("x", x)},
			{Var: "f", Value: Func1("x", If(Call(id, somebool), Call(id, x), Call(g, Call(add, x, x))))},
			{Var: "g", Value: Func1("x", If(somebool, x, Call(id, Call(f, x))))},
		},
		Let("h", Func1("x", Call(id, Call(f, x))),
			Record(
				LabelValue("f", f),
				LabelValue("g", g),
				LabelValue("h", h),
				LabelValue("id", id))))

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		ty, err := ctx.Infer(expr, env)
		if err != nil || ty == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRecursiveLet(b *testing.B) {
	ctx := NewContext()

	n, fib := Var("n"), Var("fib")
	expr := Let("fib",
		Func1("n",
			If(BinaryOp(ast.Le, n, Int(1)),
				n,
				BinaryOp(ast.Add,
					Call(fib, BinaryOp(ast.Sub, n, Int(1))),
					Call(fib, BinaryOp(ast.Sub, n, Int(2)))))),
		fib)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ty, err := ctx.Infer(expr, nil)
		if err != nil || ty == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNestedIf(b *testing.B) {
	ctx := NewContext()

	c, x := Var("c"), Var("x")
	var body ast.Expr = x
	for i := 0; i < 200; i++ {
		body = If(c, body, x)
	}
	expr := Func2("c", "x", BinaryOp(ast.Add, body, Int(1)))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ty, err := ctx.Infer(expr, nil)
		if err != nil || ty == nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheckModules(b *testing.B) {
	modules := make([]*ast.Module, 16)
	for i := range modules {
		modules[i] = mathModule()
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := CheckModules(context.Background(), nil, modules...); err != nil {
			b.Fatal(err)
		}
	}
}
