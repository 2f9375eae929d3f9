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
	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

// scheme is the type of an identifier in scope.
type scheme interface {
	instantiate(ti *inferencer, level int, loc ast.Loc) (types.Type, error)
}

// monoScheme is the type of a lambda-bound identifier, or of a let-bound identifier within
// its own binding group.
type monoScheme struct {
	t types.Type
}

func (s monoScheme) instantiate(*inferencer, int, ast.Loc) (types.Type, error) { return s.t, nil }

// polyScheme is the type of a generalized let-bound identifier. Variables in body with a
// level greater than lim are copied for each use.
type polyScheme struct {
	lim  int
	body types.Type
}

func (s polyScheme) instantiate(ti *inferencer, level int, _ ast.Loc) (types.Type, error) {
	return ti.store.Fork(s.lim, level, s.body), nil
}

// declaredScheme is a closed output type declared within a TypeEnv. All variables within a
// declared type are generic.
type declaredScheme struct {
	t types.Type
}

func (s declaredScheme) instantiate(ti *inferencer, level int, loc ast.Loc) (types.Type, error) {
	return ti.importType(s.t, level, make(map[types.VarId]*types.Var), loc)
}

// importType converts an output type into a raw type at the given level. Variables are
// replaced by fresh variables through subst. Unions become variables bounded from below by
// their members, and intersections become variables bounded from above.
func (ti *inferencer) importType(t types.Type, level int, subst map[types.VarId]*types.Var, loc ast.Loc) (types.Type, error) {
	switch t := t.(type) {
	case *types.Var:
		if tv, ok := subst[t.Id]; ok {
			return tv, nil
		}
		tv := ti.store.Fresh(level)
		subst[t.Id] = tv
		return tv, nil

	case *types.Func:
		dom, err := ti.importType(t.Domain, level, subst, loc)
		if err != nil {
			return nil, err
		}
		rng, err := ti.importType(t.Range, level, subst, loc)
		if err != nil {
			return nil, err
		}
		return types.NewFunc(dom, rng), nil

	case *types.Record:
		var err error
		fields := t.Fields.Map(func(_ string, ft types.Type) types.Type {
			if err != nil {
				return nil
			}
			var out types.Type
			out, err = ti.importType(ft, level, subst, loc)
			return out
		})
		if err != nil {
			return nil, err
		}
		return &types.Record{Fields: fields}, nil

	case *types.Union:
		tv := ti.store.Fresh(level)
		for _, m := range t.Types {
			mt, err := ti.importType(m, level, subst, loc)
			if err != nil {
				return nil, err
			}
			if err = ti.solver.constrain(mt, tv, loc); err != nil {
				return nil, err
			}
		}
		return tv, nil

	case *types.Inter:
		tv := ti.store.Fresh(level)
		for _, m := range t.Types {
			mt, err := ti.importType(m, level, subst, loc)
			if err != nil {
				return nil, err
			}
			if err = ti.solver.constrain(tv, mt, loc); err != nil {
				return nil, err
			}
		}
		return tv, nil

	case *types.Recursive:
		tv := ti.store.Fresh(level)
		shadowed, hadShadowed := subst[t.Var]
		subst[t.Var] = tv
		body, err := ti.importType(t.Body, level, subst, loc)
		if hadShadowed {
			subst[t.Var] = shadowed
		} else {
			delete(subst, t.Var)
		}
		if err != nil {
			return nil, err
		}
		if err = ti.solver.constrain(body, tv, loc); err != nil {
			return nil, err
		}
		if err = ti.solver.constrain(tv, body, loc); err != nil {
			return nil, err
		}
		return tv, nil
	}
	return t, nil
}
