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

package typeutil

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polar/types"
)

// VarRecord holds the mutable state of a type-variable.
type VarRecord struct {
	Id    types.VarId
	Level int
	// Types which must be subtypes of the variable, in insertion order
	Lower []types.Type
	// Types which the variable must be a subtype of, in insertion order
	Upper []types.Type

	lowerSet *set.HashSet[boundKey, string]
	upperSet *set.HashSet[boundKey, string]
}

// boundKey identifies a bound by its canonical key, so structurally equal bounds are
// deduplicated and distinct bounds never are.
type boundKey string

func (k boundKey) Hash() string { return string(k) }

// VarStore is an arena of type-variables keyed by monotonically increasing ids.
//
// Types refer to variables by id; all updates to bounds go through the store. A store
// cannot be used concurrently.
type VarStore struct {
	vars []*VarRecord
}

func NewVarStore() *VarStore { return &VarStore{} }

// Reset discards all variables. Ids are reused after a reset.
func (s *VarStore) Reset() {
	for i := range s.vars {
		s.vars[i] = nil
	}
	s.vars = s.vars[:0]
}

// Len returns the number of variables allocated since the last reset.
func (s *VarStore) Len() int { return len(s.vars) }

// Fresh allocates an unbounded type-variable at the given binding-level.
func (s *VarStore) Fresh(level int) *types.Var {
	id := types.VarId(len(s.vars))
	s.vars = append(s.vars, &VarRecord{Id: id, Level: level})
	return types.NewVar(id)
}

// Record returns the state of the variable with the given id.
func (s *VarStore) Record(id types.VarId) *VarRecord {
	return s.vars[id]
}

// AddLower adds t to the lower bounds of the variable. AddLower returns false if a
// structurally equal bound is already present.
func (s *VarStore) AddLower(id types.VarId, t types.Type) bool {
	r := s.vars[id]
	if r.lowerSet == nil {
		r.lowerSet = set.NewHashSet[boundKey, string](4)
	}
	if !r.lowerSet.Insert(boundKey(types.Key(t))) {
		return false
	}
	r.Lower = append(r.Lower, t)
	return true
}

// AddUpper adds t to the upper bounds of the variable. AddUpper returns false if a
// structurally equal bound is already present.
func (s *VarStore) AddUpper(id types.VarId, t types.Type) bool {
	r := s.vars[id]
	if r.upperSet == nil {
		r.upperSet = set.NewHashSet[boundKey, string](4)
	}
	if !r.upperSet.Insert(boundKey(types.Key(t))) {
		return false
	}
	r.Upper = append(r.Upper, t)
	return true
}

// Bounds returns the lower bounds of the variable for positive polarity, otherwise its
// upper bounds.
func (s *VarStore) Bounds(id types.VarId, pol types.Polarity) []types.Type {
	if pol == types.Positive {
		return s.vars[id].Lower
	}
	return s.vars[id].Upper
}

// Level returns the highest binding-level of the variables occurring in t. Concrete types
// without variables have level 0.
func (s *VarStore) Level(t types.Type) int {
	switch t := t.(type) {
	case *types.Var:
		return s.vars[t.Id].Level
	case *types.Func:
		return max(s.Level(t.Domain), s.Level(t.Range))
	case *types.Record:
		level := 0
		t.Fields.Range(func(_ string, ft types.Type) bool {
			level = max(level, s.Level(ft))
			return true
		})
		return level
	}
	return 0
}

// Fork copies t, replacing each variable with a level greater than lim by a fresh variable
// at the given level. Bounds of copied variables are copied as well. Two occurrences of the
// same variable within t are replaced by the same fresh variable.
func (s *VarStore) Fork(lim, level int, t types.Type) types.Type {
	f := forker{store: s, lim: lim, level: level, fresh: make(map[types.VarId]*types.Var)}
	return f.fork(t)
}

type forker struct {
	store      *VarStore
	lim, level int
	fresh      map[types.VarId]*types.Var
}

func (f *forker) fork(t types.Type) types.Type {
	if f.store.Level(t) <= f.lim {
		return t
	}
	switch t := t.(type) {
	case *types.Var:
		if tv, ok := f.fresh[t.Id]; ok {
			return tv
		}
		tv := f.store.Fresh(f.level)
		f.fresh[t.Id] = tv
		r := f.store.Record(t.Id)
		for _, lb := range r.Lower {
			f.store.AddLower(tv.Id, f.fork(lb))
		}
		for _, ub := range r.Upper {
			f.store.AddUpper(tv.Id, f.fork(ub))
		}
		return tv

	case *types.Func:
		return types.NewFunc(f.fork(t.Domain), f.fork(t.Range))

	case *types.Record:
		return &types.Record{Fields: t.Fields.Map(func(_ string, ft types.Type) types.Type {
			return f.fork(ft)
		})}
	}
	return t
}
