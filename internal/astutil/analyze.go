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

package astutil

import (
	"slices"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/internal/util"
)

// Analysis for grouped bindings which may be mutually-recursive; borrowed from Haskell.
// https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
//
//   In Haskell 98, a group of bindings is sorted into strongly-connected components, and then type-checked
//   in dependency order (H98 s4.5.1). As each dependency group is type-checked, all binders of the group
//   are monomorphic until the group is generalized (H98 s4.5.2).

// DuplicateError is returned when a name is bound more than once within a group.
type DuplicateError struct {
	Name string
	// Index of the second binding of the name
	Index int
}

func (e *DuplicateError) Error() string { return "duplicate binding for " + e.Name }

// BindingGroups sorts a group of bindings into strongly-connected components. Components are
// returned in dependency order: each component only refers to bindings in itself or in an
// earlier component. Indexes within a component are sorted.
func BindingGroups(names []string, values []ast.Expr) ([][]int, error) {
	verts := make(map[string]int, len(names))
	for i, name := range names {
		if _, exists := verts[name]; exists {
			return nil, &DuplicateError{Name: name, Index: i}
		}
		verts[name] = i
	}
	g := util.NewGraph(len(names))
	for i, value := range values {
		for _, name := range References(value) {
			if j, ok := verts[name]; ok {
				// edges run from each dependency to its dependents:
				g.AddEdge(j, i)
			}
		}
	}
	sccs := g.SCC()
	for _, scc := range sccs {
		slices.Sort(scc)
	}
	return sccs, nil
}

// References returns the identifiers which occur free in e, in order of first occurrence.
func References(e ast.Expr) []string {
	r := refs{seen: make(map[string]bool), bound: make(map[string]int)}
	r.visit(e)
	return r.names
}

type refs struct {
	names []string
	seen  map[string]bool
	bound map[string]int // count of enclosing binders for each name
}

func (r *refs) bind(names ...string) {
	for _, name := range names {
		r.bound[name]++
	}
}

func (r *refs) unbind(names ...string) {
	for _, name := range names {
		if r.bound[name]--; r.bound[name] == 0 {
			delete(r.bound, name)
		}
	}
}

func (r *refs) visit(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Var:
		if r.bound[e.Name] == 0 && !r.seen[e.Name] {
			r.seen[e.Name] = true
			r.names = append(r.names, e.Name)
		}

	case *ast.Bool, *ast.Int:

	case *ast.Func:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Name
		}
		r.bind(params...)
		r.visit(e.Body)
		r.unbind(params...)

	case *ast.Call:
		r.visit(e.Func)
		for _, arg := range e.Args {
			r.visit(arg)
		}

	case *ast.Let:
		if _, isFunc := e.Value.(*ast.Func); isFunc {
			r.bind(e.Var)
			r.visit(e.Value)
		} else {
			r.visit(e.Value)
			r.bind(e.Var)
		}
		r.visit(e.Body)
		r.unbind(e.Var)

	case *ast.LetGroup:
		names := make([]string, len(e.Vars))
		for i, v := range e.Vars {
			names[i] = v.Var
		}
		r.bind(names...)
		for _, v := range e.Vars {
			r.visit(v.Value)
		}
		r.visit(e.Body)
		r.unbind(names...)

	case *ast.If:
		r.visit(e.Cond)
		r.visit(e.Then)
		r.visit(e.Else)

	case *ast.BinaryOp:
		r.visit(e.Left)
		r.visit(e.Right)

	case *ast.UnaryOp:
		r.visit(e.Operand)

	case *ast.Record:
		for _, f := range e.Fields {
			r.visit(f.Value)
		}

	case *ast.Select:
		r.visit(e.Record)
	}
}
