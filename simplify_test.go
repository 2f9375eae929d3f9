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
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

func tv(id int) *types.Var { return types.NewVar(types.VarId(id)) }

func union(ts ...types.Type) types.Type {
	t, err := types.JoinAll(ts, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func inter(ts ...types.Type) types.Type {
	t, err := types.MeetAll(ts, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSimplify(t *testing.T) {
	a, b, c := tv(1), tv(2), tv(3)
	cases := []struct {
		in   types.Type
		want string
	}{
		// variables occurring with a primitive type in both polarities are removed:
		{types.NewFunc(inter(a, tInt), union(a, tInt)), "int -> int"},
		// variables occurring in one polarity are removed:
		{types.NewFunc(a, union(a, b)), "'a -> 'a"},
		{types.NewFunc(inter(b, record("x", a)), a), "{x : 'a} -> 'a"},
		// variables which always occur together are merged:
		{types.NewFunc(inter(a, b), union(a, b)), "'a -> 'a"},
		{types.NewFunc(a, types.NewFunc(b, union(a, b))), "'a -> 'a -> 'a"},
		// variables standing alone are kept:
		{types.NewFunc(a, b), "'a -> 'b"},
		{types.NewFunc(a, types.NewFunc(b, a)), "'a -> 'b -> 'a"},
		{c, "'a"},
		// unused recursive binders are dropped:
		{&types.Recursive{Var: 9, Body: types.NewFunc(a, a)}, "'a -> 'a"},
		{&types.Recursive{Var: 9, Body: union(c, types.NewFunc(a, tv(9)))}, "rec 'a. 'b -> 'a"},
		{&types.Recursive{Var: 9, Body: record("next", tv(9))}, "rec 'a. {next : 'a}"},
	}
	for _, tc := range cases {
		got := types.TypeString(Simplify(tc.in))
		if got != tc.want {
			t.Fatalf("simplify %s\ngot:  %s\nwant: %s", types.TypeString(tc.in), got, tc.want)
		}
	}
}

// genOutput generates a well-formed output type: unions and intersections hold distinct
// variables and at most one type constructor.
func genOutput(r *rand.Rand, depth int, pol types.Polarity) types.Type {
	head := func() types.Type {
		switch n := r.Intn(4); {
		case n == 0 || depth == 0:
			if r.Intn(2) == 0 {
				return tInt
			}
			return tBool
		case n == 1:
			return types.NewFunc(genOutput(r, depth-1, pol.Flip()), genOutput(r, depth-1, pol))
		default:
			fields := make(map[string]types.Type)
			for _, label := range []string{"x", "y", "z"}[:r.Intn(3)+1] {
				fields[label] = genOutput(r, depth-1, pol)
			}
			return types.NewRecord(fields)
		}
	}
	var members []types.Type
	for i := r.Intn(3); i > 0; i-- {
		members = append(members, tv(r.Intn(5)))
	}
	if len(members) == 0 || r.Intn(2) == 0 {
		members = append(members, head())
	}
	if pol == types.Positive {
		return union(members...)
	}
	return inter(members...)
}

func TestSimplifyIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		in := genOutput(r, 3, types.Positive)
		once := Simplify(in)
		twice := Simplify(once)
		if !types.Equal(once, twice) {
			t.Fatalf("simplify is not idempotent for %s\nonce:  %s\ntwice: %s\n%s",
				types.TypeString(in), types.TypeString(once), types.TypeString(twice), spew.Sdump(once))
		}
		// simplification never introduces variables:
		require.Subset(t, types.FreeVars(in), types.FreeVars(once))
	}
}

// subsumes reports whether some instance of a is a subtype of b, with the variables of b
// held rigid. Both types must be output types without recursive types.
//
// Each variable of a collects the parts of b it must lie between; an instance exists if every
// lower bound of a variable is a subtype of every upper bound.
func subsumes(a, b types.Type) bool {
	s := subsumption{
		lower: make(map[types.VarId][]types.Type),
		upper: make(map[types.VarId][]types.Type),
	}
	if !s.walk(a, b, types.Positive) {
		return false
	}
	for id, lower := range s.lower {
		for _, l := range lower {
			for _, u := range s.upper[id] {
				if !rigidSubtype(l, u) {
					return false
				}
			}
		}
	}
	return true
}

type subsumption struct {
	lower, upper map[types.VarId][]types.Type
}

func members(t types.Type) []types.Type {
	switch t := t.(type) {
	case *types.Union:
		return t.Types
	case *types.Inter:
		return t.Types
	}
	return []types.Type{t}
}

func headOf(t types.Type) types.Type {
	for _, m := range members(t) {
		if types.IsConcrete(m) {
			return m
		}
	}
	return nil
}

// walk requires a <: b in positive positions and b <: a in negative positions. A type
// constructor can only be related to the type constructor of the other side.
func (s *subsumption) walk(a, b types.Type, pol types.Polarity) bool {
	hb := headOf(b)
	for _, m := range members(a) {
		if v, ok := m.(*types.Var); ok {
			if pol == types.Positive {
				s.upper[v.Id] = append(s.upper[v.Id], b)
			} else {
				s.lower[v.Id] = append(s.lower[v.Id], b)
			}
			continue
		}
		if hb == nil || !s.walkHeads(m, hb, pol) {
			return false
		}
	}
	return true
}

func (s *subsumption) walkHeads(ha, hb types.Type, pol types.Polarity) bool {
	switch ha := ha.(type) {
	case *types.Bool:
		_, ok := hb.(*types.Bool)
		return ok
	case *types.Int:
		_, ok := hb.(*types.Int)
		return ok
	case *types.Func:
		hb, ok := hb.(*types.Func)
		return ok && s.walk(ha.Domain, hb.Domain, pol.Flip()) && s.walk(ha.Range, hb.Range, pol)
	case *types.Record:
		hb, ok := hb.(*types.Record)
		if !ok {
			return false
		}
		sub, super := ha, hb
		if pol == types.Negative {
			sub, super = hb, ha
		}
		related := true
		super.Fields.Range(func(label string, _ types.Type) bool {
			if _, ok := sub.Fields.Get(label); !ok {
				related = false
				return false
			}
			fa, _ := ha.Fields.Get(label)
			fb, _ := hb.Fields.Get(label)
			related = s.walk(fa, fb, pol)
			return related
		})
		return related
	}
	return false
}

// rigidSubtype decides x <: y for types whose variables are rigid, following Whitman's
// conditions for meets on the left and joins on the right.
func rigidSubtype(x, y types.Type) bool {
	if u, ok := x.(*types.Union); ok {
		for _, m := range u.Types {
			if !rigidSubtype(m, y) {
				return false
			}
		}
		return true
	}
	if i, ok := y.(*types.Inter); ok {
		for _, m := range i.Types {
			if !rigidSubtype(x, m) {
				return false
			}
		}
		return true
	}
	_, xMeet := x.(*types.Inter)
	_, yJoin := y.(*types.Union)
	if xMeet || yJoin {
		if xMeet {
			for _, m := range members(x) {
				if rigidSubtype(m, y) {
					return true
				}
			}
		}
		if yJoin {
			for _, m := range members(y) {
				if rigidSubtype(x, m) {
					return true
				}
			}
		}
		return false
	}

	switch x := x.(type) {
	case *types.Var:
		y, ok := y.(*types.Var)
		return ok && x.Id == y.Id
	case *types.Bool:
		_, ok := y.(*types.Bool)
		return ok
	case *types.Int:
		_, ok := y.(*types.Int)
		return ok
	case *types.Func:
		y, ok := y.(*types.Func)
		return ok && rigidSubtype(y.Domain, x.Domain) && rigidSubtype(x.Range, y.Range)
	case *types.Record:
		y, ok := y.(*types.Record)
		if !ok {
			return false
		}
		related := true
		y.Fields.Range(func(label string, yt types.Type) bool {
			xt, ok := x.Fields.Get(label)
			related = ok && rigidSubtype(xt, yt)
			return related
		})
		return related
	}
	return false
}

func requireEquivalentSchemes(t *testing.T, raw, simplified types.Type) {
	t.Helper()
	if !subsumes(raw, simplified) || !subsumes(simplified, raw) {
		t.Fatalf("simplified type is not equivalent to %s\nsimplified: %s",
			types.TypeString(raw), types.TypeString(simplified))
	}
}

func TestSubsumes(t *testing.T) {
	a, b := tv(1), tv(2)
	// 'a -> 'a is an instance of 'a -> 'b, but not the other way around:
	require.True(t, subsumes(types.NewFunc(a, b), types.NewFunc(a, a)))
	require.False(t, subsumes(types.NewFunc(a, a), types.NewFunc(a, b)))
	// int -> int is an instance of 'a -> 'a:
	require.True(t, subsumes(types.NewFunc(a, a), types.NewFunc(tInt, tInt)))
	require.False(t, subsumes(types.NewFunc(tInt, tInt), types.NewFunc(a, a)))
	require.False(t, subsumes(types.NewFunc(a, a), types.NewFunc(tInt, tBool)))
	// width subtyping:
	require.True(t, subsumes(record("x", tInt, "y", tBool), record("x", tInt)))
	require.False(t, subsumes(record("x", tInt), record("x", tInt, "y", tBool)))
	require.True(t, subsumes(types.NewFunc(record("x", tInt), tInt), types.NewFunc(record("x", tInt, "y", tBool), tInt)))
	// the range may be widened by a rigid variable, but not narrowed:
	require.True(t, subsumes(types.NewFunc(a, a), types.NewFunc(a, union(a, b))))
	require.False(t, subsumes(types.NewFunc(b, union(a, b)), types.NewFunc(b, a)))
}

func TestSimplifyPreservesMeaning(t *testing.T) {
	a, b := tv(1), tv(2)
	fixed := []types.Type{
		types.NewFunc(inter(a, tInt), union(a, tInt)),
		types.NewFunc(a, union(a, b)),
		types.NewFunc(inter(b, record("x", a)), a),
		types.NewFunc(inter(a, b), union(a, b)),
		types.NewFunc(a, types.NewFunc(b, union(a, b))),
		types.NewFunc(b, types.NewFunc(a, union(a, b))),
		types.NewFunc(a, types.NewFunc(b, a)),
	}
	for _, raw := range fixed {
		requireEquivalentSchemes(t, raw, Simplify(raw))
	}

	r := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		raw := genOutput(r, 3, types.Positive)
		requireEquivalentSchemes(t, raw, Simplify(raw))
	}
}

func TestCoalesce(t *testing.T) {
	s, store := newTestSolver()
	v := store.Fresh(0)
	w := store.Fresh(0)
	require.NoError(t, s.constrain(tInt, v, ast.Loc{}))
	require.NoError(t, s.constrain(w, tBool, ast.Loc{}))

	ty, err := coalesce(store, types.NewFunc(w, v), types.Positive, ast.Loc{})
	require.NoError(t, err)
	require.Equal(t, "('a & bool) -> 'b | int", types.TypeString(ty))
	require.Equal(t, "bool -> int", types.TypeString(Simplify(ty)))

	// a cycle through a variable's bounds becomes a recursive type:
	r := store.Fresh(0)
	require.NoError(t, s.constrain(record("next", r), r, ast.Loc{}))
	ty, err = coalesce(store, r, types.Positive, ast.Loc{})
	require.NoError(t, err)
	require.Equal(t, "rec 'a. {next : 'a}", types.TypeString(Simplify(ty)))

	// lower bounds from different families cannot be joined:
	f := store.Fresh(0)
	require.NoError(t, s.constrain(types.NewFunc(tInt, tInt), f, ast.Loc{}))
	require.NoError(t, s.constrain(types.NewFunc(tBool, tInt), f, ast.Loc{}))
	_, err = coalesce(store, f, types.Positive, ast.Loc{Line: 5})
	require.ErrorIs(t, err, ErrConstructorMismatch)
}
