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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/internal/astutil"
	"github.com/wdamron/polar/internal/typeutil"
	"github.com/wdamron/polar/types"
)

// scope is a persistent mapping from identifiers to schemes. Extending a scope does not
// modify the scope it was extended from.
type scope struct {
	m   *immutable.Map
	env *TypeEnv
}

func newScope(env *TypeEnv) scope { return scope{m: immutable.NewMap(nil), env: env} }

func (s scope) with(name string, sch scheme) scope {
	return scope{m: s.m.Set(name, sch), env: s.env}
}

func (s scope) lookup(name string) (scheme, bool) {
	if sch, ok := s.m.Get(name); ok {
		return sch.(scheme), true
	}
	if t := s.env.Lookup(name); t != nil {
		return declaredScheme{t}, true
	}
	return nil, false
}

type rawNode struct {
	expr ast.Expr
	t    types.Type
}

// inferencer holds the state of a single inference session. All type-variables created by
// an inferencer are owned by its store.
type inferencer struct {
	store   *typeutil.VarStore
	solver  *solver
	nodes   []rawNode
	invalid ast.Expr
	cache   outputCache
}

func newInferencer() *inferencer {
	store := typeutil.NewVarStore()
	return &inferencer{store: store, solver: newSolver(store)}
}

func (ti *inferencer) reset() {
	ti.store.Reset()
	for i := range ti.nodes {
		ti.nodes[i] = rawNode{}
	}
	ti.nodes, ti.invalid = ti.nodes[:0], nil
	ti.cache = outputCache{}
}

func (ti *inferencer) constrain(e ast.Expr, lhs, rhs types.Type) error {
	if err := ti.solver.constrain(lhs, rhs, e.Location()); err != nil {
		ti.invalid = e
		return err
	}
	return nil
}

func (ti *inferencer) infer(sc scope, level int, e ast.Expr) (types.Type, error) {
	t, err := ti.inferExpr(sc, level, e)
	if err != nil {
		if ti.invalid == nil {
			ti.invalid = e
		}
		return nil, err
	}
	ti.nodes = append(ti.nodes, rawNode{e, t})
	return t, nil
}

func (ti *inferencer) inferExpr(sc scope, level int, e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Bool:
		return types.NewBool(), nil

	case *ast.Int:
		return types.NewInt(), nil

	case *ast.Var:
		sch, ok := sc.lookup(e.Name)
		if !ok {
			return nil, &TypeError{Kind: UnboundIdentifier, Loc: e.Pos, Name: e.Name}
		}
		return sch.instantiate(ti, level, e.Pos)

	case *ast.Func:
		// Type annotations within a function share their type-variables:
		subst := make(map[types.VarId]*types.Var)
		params := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			var pt types.Type
			if p.Type != nil {
				var err error
				if pt, err = ti.importType(p.Type, level, subst, e.Pos); err != nil {
					return nil, err
				}
			} else {
				pt = ti.store.Fresh(level)
			}
			params[i] = pt
			sc = sc.with(p.Name, monoScheme{pt})
		}
		ret, err := ti.infer(sc, level, e.Body)
		if err != nil {
			return nil, err
		}
		if e.Return != nil {
			declared, err := ti.importType(e.Return, level, subst, e.Pos)
			if err != nil {
				return nil, err
			}
			if err = ti.constrain(e.Body, ret, declared); err != nil {
				return nil, err
			}
			ret = declared
		}
		return types.NewCurried(params, ret), nil

	case *ast.Call:
		ft, err := ti.infer(sc, level, e.Func)
		if err != nil {
			return nil, err
		}
		args := make([]types.Type, len(e.Args))
		for i, arg := range e.Args {
			if args[i], err = ti.infer(sc, level, arg); err != nil {
				return nil, err
			}
		}
		ret := ti.store.Fresh(level)
		if err = ti.constrain(e, ft, types.NewCurried(args, ret)); err != nil {
			return nil, err
		}
		return ret, nil

	case *ast.Let:
		var sch scheme
		if _, isFunc := e.Value.(*ast.Func); isFunc {
			// Allow self-references within functions:
			tv := ti.store.Fresh(level + 1)
			t, err := ti.infer(sc.with(e.Var, monoScheme{tv}), level+1, e.Value)
			if err != nil {
				return nil, err
			}
			if err = ti.constrain(e.Value, t, tv); err != nil {
				return nil, err
			}
			sch = polyScheme{lim: level, body: tv}
		} else {
			t, err := ti.infer(sc, level+1, e.Value)
			if err != nil {
				return nil, err
			}
			sch = polyScheme{lim: level, body: t}
		}
		return ti.infer(sc.with(e.Var, sch), level, e.Body)

	case *ast.LetGroup:
		names := make([]string, len(e.Vars))
		values := make([]ast.Expr, len(e.Vars))
		for i, v := range e.Vars {
			names[i], values[i] = v.Var, v.Value
		}
		sccs, err := astutil.BindingGroups(names, values)
		if err != nil {
			if dup, ok := err.(*astutil.DuplicateError); ok {
				return nil, &TypeError{Kind: DuplicateBinding, Loc: e.Vars[dup.Index].Value.Location(), Name: dup.Name}
			}
			return nil, err
		}
		// Grouped let-bindings are sorted into strongly-connected components, then type-checked in dependency order:
		for _, scc := range sccs {
			if sc, err = ti.inferGroup(sc, level, names, values, scc); err != nil {
				return nil, err
			}
		}
		return ti.infer(sc, level, e.Body)

	case *ast.If:
		ct, err := ti.infer(sc, level, e.Cond)
		if err != nil {
			return nil, err
		}
		if err = ti.constrain(e.Cond, ct, types.NewBool()); err != nil {
			return nil, err
		}
		tt, err := ti.infer(sc, level, e.Then)
		if err != nil {
			return nil, err
		}
		et, err := ti.infer(sc, level, e.Else)
		if err != nil {
			return nil, err
		}
		return ti.solver.join(tt, et, level, e.Pos)

	case *ast.BinaryOp:
		operand, result := e.Op.Signature()
		lt, err := ti.infer(sc, level, e.Left)
		if err != nil {
			return nil, err
		}
		if err = ti.constrain(e.Left, lt, operand); err != nil {
			return nil, err
		}
		rt, err := ti.infer(sc, level, e.Right)
		if err != nil {
			return nil, err
		}
		if err = ti.constrain(e.Right, rt, operand); err != nil {
			return nil, err
		}
		return result, nil

	case *ast.UnaryOp:
		operand, result := e.Op.Signature()
		t, err := ti.infer(sc, level, e.Operand)
		if err != nil {
			return nil, err
		}
		if err = ti.constrain(e.Operand, t, operand); err != nil {
			return nil, err
		}
		return result, nil

	case *ast.Record:
		fields := types.NewTypeMapBuilder()
		for _, f := range e.Fields {
			if _, exists := fields.Get(f.Label); exists {
				return nil, &TypeError{Kind: DuplicateBinding, Loc: f.Value.Location(), Name: f.Label}
			}
			t, err := ti.infer(sc, level, f.Value)
			if err != nil {
				return nil, err
			}
			fields.Set(f.Label, t)
		}
		return &types.Record{Fields: fields.Build()}, nil

	case *ast.Select:
		rt, err := ti.infer(sc, level, e.Record)
		if err != nil {
			return nil, err
		}
		ft := ti.store.Fresh(level)
		required := &types.Record{Fields: types.SingletonTypeMap(e.Label, ft)}
		if err = ti.constrain(e, rt, required); err != nil {
			return nil, err
		}
		return ft, nil
	}
	panic("unknown expression type: " + e.ExprName())
}

// inferGroup infers a strongly-connected component of bindings at level+1, then generalizes
// the bindings. The returned scope contains each binding of the component.
func (ti *inferencer) inferGroup(sc scope, level int, names []string, values []ast.Expr, scc []int) (scope, error) {
	vars := make([]*types.Var, len(scc))
	inner := sc
	for i, bindNum := range scc {
		vars[i] = ti.store.Fresh(level + 1)
		inner = inner.with(names[bindNum], monoScheme{vars[i]})
	}
	for i, bindNum := range scc {
		t, err := ti.infer(inner, level+1, values[bindNum])
		if err != nil {
			return sc, err
		}
		if err = ti.constrain(values[bindNum], t, vars[i]); err != nil {
			return sc, err
		}
	}
	for i, bindNum := range scc {
		sc = sc.with(names[bindNum], polyScheme{lim: level, body: vars[i]})
	}
	return sc, nil
}
