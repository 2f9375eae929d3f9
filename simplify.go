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
	"slices"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/internal/typeutil"
	"github.com/wdamron/polar/types"
)

type polarVar struct {
	id  types.VarId
	pol types.Polarity
}

// coalescer converts raw types with bounded variables into output types. Positive
// occurrences of a variable are replaced by the join of the variable with its lower bounds,
// negative occurrences by the meet of the variable with its upper bounds.
//
// A coalescer caches the output of each variable which does not take part in a cycle. It may
// be reused while the bounds in its store do not change.
type coalescer struct {
	store     *typeutil.VarStore
	inProcess map[polarVar]bool
	recursive map[polarVar]*types.Var
	done      map[polarVar]types.Type
	cycles    int
}

func newCoalescer(store *typeutil.VarStore) *coalescer {
	return &coalescer{
		store:     store,
		inProcess: make(map[polarVar]bool),
		recursive: make(map[polarVar]*types.Var),
		done:      make(map[polarVar]types.Type),
	}
}

func coalesce(store *typeutil.VarStore, t types.Type, pol types.Polarity, loc ast.Loc) (types.Type, error) {
	return newCoalescer(store).output(t, pol, loc)
}

// output coalesces t. After an error the coalescer must not be reused.
func (c *coalescer) output(t types.Type, pol types.Polarity, loc ast.Loc) (types.Type, error) {
	out, err := c.coalesce(t, pol)
	if err != nil {
		if m, ok := err.(*types.MismatchError); ok {
			return nil, mismatchError(loc, m.Lhs, m.Rhs)
		}
		return nil, err
	}
	return out, nil
}

func (c *coalescer) coalesce(t types.Type, pol types.Polarity) (types.Type, error) {
	switch t := t.(type) {
	case *types.Func:
		dom, err := c.coalesce(t.Domain, pol.Flip())
		if err != nil {
			return nil, err
		}
		rng, err := c.coalesce(t.Range, pol)
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
			out, err = c.coalesce(ft, pol)
			return out
		})
		if err != nil {
			return nil, err
		}
		return &types.Record{Fields: fields}, nil

	case *types.Var:
		key := polarVar{t.Id, pol}
		if out, ok := c.done[key]; ok {
			return out, nil
		}
		if c.inProcess[key] {
			c.cycles++
			if rv, ok := c.recursive[key]; ok {
				return rv, nil
			}
			rv := c.store.Fresh(0)
			c.recursive[key] = rv
			return rv, nil
		}
		c.inProcess[key] = true
		cycles := c.cycles
		bounds := c.store.Bounds(t.Id, pol)
		members := make([]types.Type, 1, len(bounds)+1)
		members[0] = t
		for _, b := range bounds {
			cb, err := c.coalesce(b, pol)
			if err != nil {
				return nil, err
			}
			members = append(members, cb)
		}
		op := types.JoinOp
		if pol == types.Negative {
			op = types.MeetOp
		}
		out, err := types.CombineAll(op, members, nil)
		if err != nil {
			return nil, err
		}
		delete(c.inProcess, key)
		if rv, ok := c.recursive[key]; ok {
			delete(c.recursive, key)
			return &types.Recursive{Var: rv.Id, Body: out}, nil
		}
		if c.cycles == cycles {
			c.done[key] = out
		}
		return out, nil
	}
	return t, nil
}

const maxSimplifyRounds = 32

// Simplify removes redundant type-variables from an output type:
//
// Variables occurring in only one polarity are removed from unions and intersections.
// Variables which always occur together with another variable in one polarity are merged.
// Variables which occur together with the same primitive type in both polarities are removed.
// Recursive types which do not refer to their binder are unwrapped.
//
// Simplify is idempotent. Variables bound by recursive types are never removed or merged.
func Simplify(t types.Type) types.Type {
	for i := 0; i < maxSimplifyRounds; i++ {
		next := simplifyOnce(t)
		if types.Equal(next, t) {
			return next
		}
		t = next
	}
	return t
}

// An atom is a type-variable or a primitive type which may occur within a union or intersection.
type atom struct {
	id  types.VarId
	fam types.Family
}

func (a atom) isVar() bool { return a.fam == types.NoFamily }

func atomOf(t types.Type) (atom, bool) {
	switch t := t.(type) {
	case *types.Var:
		return atom{id: t.Id}, true
	case *types.Bool, *types.Int:
		return atom{fam: types.FamilyOf(t)}, true
	}
	return atom{}, false
}

func compareAtoms(a, b atom) int {
	if a.fam != b.fam {
		return int(a.fam) - int(b.fam)
	}
	return int(a.id) - int(b.id)
}

// coSet holds the atoms which occur together with a variable at each of its occurrences.
// The atoms of the first occurrence are shared with the other members of its union or
// intersection until they are narrowed.
type coSet struct {
	atoms  *set.Set[atom]
	shared bool
}

// retain removes every atom for which keep returns false.
func (c *coSet) retain(keep func(atom) bool) {
	if c.shared {
		kept := set.New[atom](c.atoms.Size())
		for _, a := range c.atoms.Slice() {
			if keep(a) {
				kept.Insert(a)
			}
		}
		c.atoms, c.shared = kept, false
		return
	}
	c.atoms.RemoveFunc(func(a atom) bool { return !keep(a) })
}

// occurrences of free variables within a type, by polarity
type occurrences struct {
	order  []types.VarId
	pols   map[types.VarId][2]bool
	co     map[polarVar]*coSet
	binder *set.Set[types.VarId]
}

func polIndex(pol types.Polarity) int {
	if pol == types.Positive {
		return 0
	}
	return 1
}

func analyzeOccurrences(t types.Type) *occurrences {
	o := &occurrences{
		pols:   make(map[types.VarId][2]bool),
		co:     make(map[polarVar]*coSet),
		binder: set.New[types.VarId](0),
	}
	o.visit(t, types.Positive)
	return o
}

// record intersects the co-occurrences of v at pol with the atoms of the current occurrence.
func (o *occurrences) record(v types.VarId, pol types.Polarity, current *set.Set[atom]) {
	if o.binder.Contains(v) {
		return
	}
	p, seen := o.pols[v]
	if !seen {
		o.order = append(o.order, v)
	}
	p[polIndex(pol)] = true
	o.pols[v] = p

	key := polarVar{v, pol}
	prev, ok := o.co[key]
	if !ok {
		o.co[key] = &coSet{atoms: current, shared: true}
		return
	}
	prev.retain(current.Contains)
}

func atomsOf(members []types.Type) *set.Set[atom] {
	atoms := set.New[atom](len(members))
	for _, m := range members {
		if a, ok := atomOf(m); ok {
			atoms.Insert(a)
		}
	}
	return atoms
}

func (o *occurrences) visit(t types.Type, pol types.Polarity) {
	switch t := t.(type) {
	case *types.Var:
		o.record(t.Id, pol, set.From([]atom{{id: t.Id}}))
	case *types.Union:
		o.visitMembers(t.Types, pol)
	case *types.Inter:
		o.visitMembers(t.Types, pol)
	case *types.Recursive:
		o.binder.Insert(t.Var)
		o.visit(t.Body, pol)
	default:
		types.Children(t, func(c types.Type, cp types.Polarity) bool {
			if cp == types.Negative {
				o.visit(c, pol.Flip())
			} else {
				o.visit(c, pol)
			}
			return true
		})
	}
}

func (o *occurrences) visitMembers(members []types.Type, pol types.Polarity) {
	var current *set.Set[atom]
	for _, m := range members {
		if v, ok := m.(*types.Var); ok {
			if current == nil {
				current = atomsOf(members)
			}
			o.record(v.Id, pol, current)
		} else {
			o.visit(m, pol)
		}
	}
}

// coOccurs returns true if a occurs together with v at every occurrence of v with the given polarity.
func (o *occurrences) coOccurs(v types.VarId, pol types.Polarity, a atom) bool {
	co, ok := o.co[polarVar{v, pol}]
	return ok && co.atoms.Contains(a)
}

func (o *occurrences) sortedCo(v types.VarId, pol types.Polarity) []atom {
	co, ok := o.co[polarVar{v, pol}]
	if !ok {
		return nil
	}
	atoms := co.atoms.Slice()
	slices.SortFunc(atoms, compareAtoms)
	return atoms
}

// A substitution entry either removes a variable (where it is not alone) or merges it
// into another variable.
type substEntry struct {
	drop bool
	to   types.VarId
}

func simplifyOnce(t types.Type) types.Type {
	o := analyzeOccurrences(t)
	subst := make(map[types.VarId]substEntry)

	for _, v := range o.order {
		if p := o.pols[v]; !(p[0] && p[1]) {
			subst[v] = substEntry{drop: true}
		}
	}

	for _, v := range o.order {
		for _, pol := range [...]types.Polarity{types.Positive, types.Negative} {
			if _, done := subst[v]; done {
				break
			}
			for _, a := range o.sortedCo(v, pol) {
				if !a.isVar() {
					if o.coOccurs(v, pol.Flip(), a) {
						subst[v] = substEntry{drop: true}
						break
					}
					continue
				}
				w := a.id
				if _, done := subst[w]; done || w == v {
					continue
				}
				if !o.coOccurs(w, pol, atom{id: v}) {
					continue
				}
				subst[w] = substEntry{to: v}
				// v now also stands for the occurrences of w in the other polarity:
				wco, wok := o.co[polarVar{w, pol.Flip()}]
				vco, vok := o.co[polarVar{v, pol.Flip()}]
				if wok && vok {
					vco.retain(func(x atom) bool { return x == (atom{id: v}) || wco.atoms.Contains(x) })
				}
			}
		}
	}

	return applySubst(t, subst)
}

func resolve(id types.VarId, subst map[types.VarId]substEntry) (types.VarId, bool) {
	for {
		e, ok := subst[id]
		if !ok {
			return id, false
		}
		if e.drop {
			return id, true
		}
		id = e.to
	}
}

func applySubst(t types.Type, subst map[types.VarId]substEntry) types.Type {
	switch t := t.(type) {
	case *types.Var:
		id, _ := resolve(t.Id, subst)
		if id == t.Id {
			return t
		}
		return types.NewVar(id)

	case *types.Func:
		return types.NewFunc(applySubst(t.Domain, subst), applySubst(t.Range, subst))

	case *types.Record:
		return &types.Record{Fields: t.Fields.Map(func(_ string, ft types.Type) types.Type {
			return applySubst(ft, subst)
		})}

	case *types.Union:
		return applyMembers(types.JoinOp, t.Types, subst)

	case *types.Inter:
		return applyMembers(types.MeetOp, t.Types, subst)

	case *types.Recursive:
		body := applySubst(t.Body, subst)
		if !slices.Contains(types.FreeVars(body), t.Var) {
			return body
		}
		return &types.Recursive{Var: t.Var, Body: body}
	}
	return t
}

func applyMembers(op types.Op, members []types.Type, subst map[types.VarId]substEntry) types.Type {
	kept := make([]types.Type, 0, len(members))
	for _, m := range members {
		if v, ok := m.(*types.Var); ok {
			id, drop := resolve(v.Id, subst)
			if drop {
				continue
			}
			kept = append(kept, types.NewVar(id))
			continue
		}
		kept = append(kept, applySubst(m, subst))
	}
	if len(kept) == 0 {
		// every member was removed; the first variable stands alone
		return applySubst(members[0], subst)
	}
	out, err := combineMembers(op, kept)
	if err != nil {
		// members which cannot be merged are kept side by side
		if op == types.JoinOp {
			return &types.Union{Types: kept}
		}
		return &types.Inter{Types: kept}
	}
	return out
}

func combineMembers(op types.Op, members []types.Type) (types.Type, error) {
	if op == types.JoinOp {
		return types.JoinAll(members, nil)
	}
	return types.MeetAll(members, nil)
}
