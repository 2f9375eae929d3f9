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

package polar

import (
	"context"
	"errors"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/internal/astutil"
	"github.com/wdamron/polar/types"
)

// InferenceContext is a re-usable context for type inference.
//
// An inference context cannot be used concurrently. To check modules in parallel, use
// CheckModules or create a context for each thread.
type InferenceContext struct {
	ti *inferencer
}

// Create a new type-inference context. A context may be re-used across calls of Infer and CheckModule.
func NewContext() *InferenceContext {
	return &InferenceContext{ti: newInferencer()}
}

// SetFuel sets the number of sub-constraints which may be visited while solving each constraint.
// Solving fails with a RecursionLimit error when the fuel is exhausted.
func (c *InferenceContext) SetFuel(fuel int) { c.ti.solver.maxFuel = fuel }

// SetDepthLimit sets the limit for nested sub-constraints while solving each constraint.
// Solving fails with a RecursionLimit error when the limit is exceeded.
func (c *InferenceContext) SetDepthLimit(depth int) { c.ti.solver.maxDepth = depth }

// Get the expression which caused the last inference to fail.
func (c *InferenceContext) InvalidExpr() ast.Expr { return c.ti.invalid }

// Reset the state of the context. The context will be reset automatically between calls of Infer and CheckModule.
func (c *InferenceContext) Reset() { c.ti.reset() }

// Infer the principal type of expr within env. Each sub-expression of expr will be annotated with its type.
func (c *InferenceContext) Infer(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("Empty expression")
	}
	c.ti.reset()
	ast.WalkExpr(expr, clearType)
	t, err := c.ti.infer(newScope(env), 0, expr)
	if err != nil {
		return nil, err
	}
	c.ti.beginOutput()
	out, err := c.ti.output(t, expr.Location())
	if err != nil {
		c.ti.invalid = expr
		return nil, err
	}
	if err = c.ti.annotate(nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckModule infers the principal type of each top-level definition in m.
//
// Definitions are sorted into strongly-connected components, then type-checked in dependency order.
// Type errors are reported within the returned Result; checking continues with the remaining
// components after an error, except for components which depend on a failed definition.
//
// The returned error is only non-nil if ctx is done before checking completes.
func (c *InferenceContext) CheckModule(ctx context.Context, m *ast.Module, env *TypeEnv) (*Result, error) {
	ti := c.ti
	ti.reset()
	ast.WalkModule(m, clearType)
	res := &Result{Module: m.Name, Types: make(map[ast.Expr]types.Type)}

	var defs []*ast.Def
	seen := make(map[string]bool, len(m.Defs))
	for _, def := range m.Defs {
		if seen[def.Name] {
			res.Errors = append(res.Errors, &TypeError{Kind: DuplicateBinding, Loc: def.Pos, Name: def.Name})
			continue
		}
		seen[def.Name] = true
		defs = append(defs, def)
	}
	names := make([]string, len(defs))
	values := make([]ast.Expr, len(defs))
	for i, def := range defs {
		names[i], values[i] = def.Name, def.Value
	}
	sccs, err := astutil.BindingGroups(names, values)
	if err != nil {
		return nil, err
	}

	bindings := make([]Binding, len(defs))
	for i, def := range defs {
		bindings[i] = Binding{Name: def.Name, Loc: def.Pos}
	}
	failed := make(map[string]bool)
	sc := newScope(env)
	for _, scc := range sccs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dependsOnFailed(scc, values, failed) {
			for _, i := range scc {
				failed[names[i]], bindings[i].Failed = true, true
			}
			continue
		}
		next, err := c.checkGroup(sc, names, values, scc, bindings, res)
		if err != nil {
			var terr *TypeError
			if !errors.As(err, &terr) {
				return nil, err
			}
			res.Errors = append(res.Errors, terr)
			for _, i := range scc {
				failed[names[i]], bindings[i].Failed, bindings[i].Type = true, true, nil
			}
			continue
		}
		sc = next
	}
	res.Bindings = bindings
	return res, nil
}

func (c *InferenceContext) checkGroup(sc scope, names []string, values []ast.Expr, scc []int, bindings []Binding, res *Result) (scope, error) {
	ti := c.ti
	ti.nodes = ti.nodes[:0]
	next, err := ti.inferGroup(sc, 0, names, values, scc)
	if err != nil {
		return sc, err
	}
	ti.beginOutput()
	for _, i := range scc {
		sch, _ := next.lookup(names[i])
		t, err := ti.output(sch.(polyScheme).body, values[i].Location())
		if err != nil {
			ti.invalid = values[i]
			return sc, err
		}
		bindings[i].Type = t
	}
	if err = ti.annotate(res.Types); err != nil {
		return sc, err
	}
	return next, nil
}

func dependsOnFailed(scc []int, values []ast.Expr, failed map[string]bool) bool {
	if len(failed) == 0 {
		return false
	}
	for _, i := range scc {
		for _, name := range astutil.References(values[i]) {
			if failed[name] {
				return true
			}
		}
	}
	return false
}

// Annotations left by an earlier check are cleared, so expressions within failed
// definitions have no type.
func clearType(e ast.Expr) { e.SetType(nil) }

// outputCache holds the outputs computed since the bounds of the store last changed.
type outputCache struct {
	coalescer *coalescer
	outputs   map[types.Type]types.Type
}

// beginOutput starts a pass of output conversions. No constraints may be added to the store
// until the pass is complete. A failed conversion ends the pass.
func (ti *inferencer) beginOutput() {
	ti.cache = outputCache{
		coalescer: newCoalescer(ti.store),
		outputs:   make(map[types.Type]types.Type),
	}
}

// output converts a raw type into its simplified output type.
func (ti *inferencer) output(t types.Type, loc ast.Loc) (types.Type, error) {
	if ti.cache.coalescer == nil {
		ti.beginOutput()
	}
	if out, ok := ti.cache.outputs[t]; ok {
		return out, nil
	}
	out, err := ti.cache.coalescer.output(t, types.Positive, loc)
	if err != nil {
		ti.cache = outputCache{}
		return nil, err
	}
	out = Simplify(out)
	ti.cache.outputs[t] = out
	return out, nil
}

// annotate assigns output types to the expressions inferred since the last reset. If into is
// not nil, the types will also be added to into.
func (ti *inferencer) annotate(into map[ast.Expr]types.Type) error {
	for _, n := range ti.nodes {
		t, err := ti.output(n.t, n.expr.Location())
		if err != nil {
			ti.invalid = n.expr
			return err
		}
		n.expr.SetType(t)
		if into != nil {
			into[n.expr] = t
		}
	}
	return nil
}
