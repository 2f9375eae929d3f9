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
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/internal/typeutil"
	"github.com/wdamron/polar/types"
)

const (
	// DefaultFuel is the default number of sub-constraints which may be visited by each
	// top-level constraint.
	DefaultFuel = 100000
	// DefaultDepthLimit is the default limit for nested sub-constraints.
	DefaultDepthLimit = 1000
)

// constraintPair identifies a constraint by the canonical keys of both sides.
type constraintPair string

func newConstraintPair(lhs, rhs types.Type) constraintPair {
	return constraintPair(types.Key(lhs) + "<:" + types.Key(rhs))
}

func (p constraintPair) Hash() string { return string(p) }

// solver propagates subtyping constraints into the bounds of type-variables.
type solver struct {
	store    *typeutil.VarStore
	cache    *set.HashSet[constraintPair, string]
	loc      ast.Loc
	maxFuel  int
	maxDepth int
	fuel     int
	depth    int
}

func newSolver(store *typeutil.VarStore) *solver {
	return &solver{store: store, maxFuel: DefaultFuel, maxDepth: DefaultDepthLimit}
}

// constrain ensures lhs is a subtype of rhs, updating the bounds of type-variables as needed.
//
// The first contradiction found is returned as a *TypeError located at loc. Bounds added
// before a contradiction was found are not removed.
func (s *solver) constrain(lhs, rhs types.Type, loc ast.Loc) error {
	s.cache = set.NewHashSet[constraintPair, string](16)
	s.loc = loc
	s.fuel, s.depth = s.maxFuel, 0
	return s.rec(lhs, rhs)
}

func (s *solver) rec(lhs, rhs types.Type) error {
	if lhs == rhs {
		return nil
	}
	if s.fuel--; s.fuel < 0 {
		return &TypeError{Kind: RecursionLimit, Loc: s.loc, Lhs: lhs, Rhs: rhs}
	}
	if s.depth++; s.depth > s.maxDepth {
		return &TypeError{Kind: RecursionLimit, Loc: s.loc, Lhs: lhs, Rhs: rhs}
	}
	defer func() { s.depth-- }()

	lv, lhsIsVar := lhs.(*types.Var)
	rv, rhsIsVar := rhs.(*types.Var)
	if lhsIsVar && rhsIsVar && lv.Id == rv.Id {
		return nil
	}
	if lhsIsVar || rhsIsVar {
		if !s.cache.Insert(newConstraintPair(lhs, rhs)) {
			return nil
		}
	}

	switch l := lhs.(type) {
	case *types.Bool:
		if _, ok := rhs.(*types.Bool); ok {
			return nil
		}
	case *types.Int:
		if _, ok := rhs.(*types.Int); ok {
			return nil
		}
	case *types.Func:
		if r, ok := rhs.(*types.Func); ok {
			if err := s.rec(r.Domain, l.Domain); err != nil {
				return err
			}
			return s.rec(l.Range, r.Range)
		}
	case *types.Record:
		if r, ok := rhs.(*types.Record); ok {
			return s.recRecords(l, r)
		}
	}

	switch {
	case lhsIsVar && s.store.Level(rhs) <= s.store.Record(lv.Id).Level:
		if err := s.checkInterval(lv.Id, rhs, types.Negative); err != nil {
			return err
		}
		if !s.store.AddUpper(lv.Id, rhs) {
			return nil
		}
		for _, lb := range s.store.Record(lv.Id).Lower {
			if err := s.rec(lb, rhs); err != nil {
				return err
			}
		}
		return nil

	case rhsIsVar && s.store.Level(lhs) <= s.store.Record(rv.Id).Level:
		if err := s.checkInterval(rv.Id, lhs, types.Positive); err != nil {
			return err
		}
		if !s.store.AddLower(rv.Id, lhs) {
			return nil
		}
		for _, ub := range s.store.Record(rv.Id).Upper {
			if err := s.rec(lhs, ub); err != nil {
				return err
			}
		}
		return nil

	case lhsIsVar:
		return s.rec(lhs, s.extrude(rhs, types.Negative, s.store.Record(lv.Id).Level))

	case rhsIsVar:
		return s.rec(s.extrude(lhs, types.Positive, s.store.Record(rv.Id).Level), rhs)
	}

	return mismatchError(s.loc, lhs, rhs)
}

// Width subtyping: every field required by rhs must be present in lhs.
func (s *solver) recRecords(lhs, rhs *types.Record) error {
	var err error
	rhs.Fields.Range(func(label string, rt types.Type) bool {
		lt, ok := lhs.Fields.Get(label)
		if !ok {
			err = &TypeError{Kind: RecordFieldMissing, Loc: s.loc, Lhs: lhs, Rhs: rhs, Label: label}
			return false
		}
		err = s.rec(lt, rt)
		return err == nil
	})
	return err
}

// checkInterval rejects a concrete bound whose family differs from a concrete bound already
// on the same side of the variable. Lower bounds are joined and upper bounds are met, and
// neither operation is defined across families.
func (s *solver) checkInterval(id types.VarId, bound types.Type, pol types.Polarity) error {
	fam := types.FamilyOf(bound)
	if fam == types.NoFamily {
		return nil
	}
	for _, b := range s.store.Bounds(id, pol) {
		if f := types.FamilyOf(b); f != types.NoFamily && f != fam {
			if pol == types.Positive {
				return mismatchError(s.loc, b, bound)
			}
			return mismatchError(s.loc, bound, b)
		}
	}
	return nil
}

// extrude copies t down to the given level. Variables above the level are replaced by fresh
// variables at the level, linked to the originals according to the polarity of t.
func (s *solver) extrude(t types.Type, pol types.Polarity, level int) types.Type {
	return s.extrudeRec(t, pol, level, make(map[types.VarId]*types.Var))
}

func (s *solver) extrudeRec(t types.Type, pol types.Polarity, level int, cache map[types.VarId]*types.Var) types.Type {
	if s.store.Level(t) <= level {
		return t
	}
	switch t := t.(type) {
	case *types.Func:
		return types.NewFunc(s.extrudeRec(t.Domain, pol.Flip(), level, cache), s.extrudeRec(t.Range, pol, level, cache))

	case *types.Record:
		return &types.Record{Fields: t.Fields.Map(func(_ string, ft types.Type) types.Type {
			return s.extrudeRec(ft, pol, level, cache)
		})}

	case *types.Var:
		if nv, ok := cache[t.Id]; ok {
			return nv
		}
		nv := s.store.Fresh(level)
		cache[t.Id] = nv
		r := s.store.Record(t.Id)
		if pol == types.Positive {
			s.store.AddUpper(t.Id, nv)
			for _, lb := range r.Lower {
				s.store.AddLower(nv.Id, s.extrudeRec(lb, pol, level, cache))
			}
		} else {
			s.store.AddLower(t.Id, nv)
			for _, ub := range r.Upper {
				s.store.AddUpper(nv.Id, s.extrudeRec(ub, pol, level, cache))
			}
		}
		return nv
	}
	return t
}

// proxyCombiner combines non-concrete operands by introducing a fresh variable bounded by
// both operands.
type proxyCombiner struct {
	s     *solver
	level int
}

func (c proxyCombiner) Combine(op types.Op, a, b types.Type) (types.Type, error) {
	v := c.s.store.Fresh(c.level)
	loc := c.s.loc
	if op == types.JoinOp {
		if err := c.s.constrain(a, v, loc); err != nil {
			return nil, err
		}
		return v, c.s.constrain(b, v, loc)
	}
	if err := c.s.constrain(v, a, loc); err != nil {
		return nil, err
	}
	return v, c.s.constrain(v, b, loc)
}

// join returns the least upper bound of a and b at the given level.
func (s *solver) join(a, b types.Type, level int, loc ast.Loc) (types.Type, error) {
	return s.combine(types.JoinOp, a, b, level, loc)
}

// meet returns the greatest lower bound of a and b at the given level.
func (s *solver) meet(a, b types.Type, level int, loc ast.Loc) (types.Type, error) {
	return s.combine(types.MeetOp, a, b, level, loc)
}

func (s *solver) combine(op types.Op, a, b types.Type, level int, loc ast.Loc) (types.Type, error) {
	s.loc = loc
	t, err := types.Combine(op, a, b, proxyCombiner{s: s, level: level})
	if err != nil {
		if m, ok := err.(*types.MismatchError); ok {
			return nil, mismatchError(loc, m.Lhs, m.Rhs)
		}
		return nil, err
	}
	return t, nil
}
