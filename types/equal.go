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

package types

// Equal reports whether a and b are structurally identical, including type-variable ids.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	return equivalent(a, b, nil)
}

// Equivalent reports whether a and b are equal up to a consistent renaming of type-variables.
//
// Equivalent is intended for test assertions. It is not a subtyping check: subtyping is
// asymmetric and is decided by the constraint solver.
func Equivalent(a, b Type) bool {
	r := renaming{ab: make(map[VarId]VarId), ba: make(map[VarId]VarId)}
	return equivalent(a, b, &r)
}

type renaming struct {
	ab, ba map[VarId]VarId
}

func (r *renaming) match(a, b VarId) bool {
	if r == nil {
		return a == b
	}
	ra, okA := r.ab[a]
	rb, okB := r.ba[b]
	switch {
	case !okA && !okB:
		r.ab[a], r.ba[b] = b, a
		return true
	case okA && okB:
		return ra == b && rb == a
	}
	return false
}

func equivalent(a, b Type, r *renaming) bool {
	switch a := a.(type) {
	case *Bool:
		_, ok := b.(*Bool)
		return ok

	case *Int:
		_, ok := b.(*Int)
		return ok

	case *Func:
		b, ok := b.(*Func)
		return ok && equivalent(a.Domain, b.Domain, r) && equivalent(a.Range, b.Range, r)

	case *Record:
		b, ok := b.(*Record)
		if !ok || a.Fields.Len() != b.Fields.Len() {
			return false
		}
		eq := true
		a.Fields.Range(func(label string, ta Type) bool {
			tb, ok := b.Fields.Get(label)
			eq = ok && equivalent(ta, tb, r)
			return eq
		})
		return eq

	case *Var:
		b, ok := b.(*Var)
		return ok && r.match(a.Id, b.Id)

	case *Union:
		b, ok := b.(*Union)
		return ok && equivalentMembers(a.Types, b.Types, r)

	case *Inter:
		b, ok := b.(*Inter)
		return ok && equivalentMembers(a.Types, b.Types, r)

	case *Recursive:
		b, ok := b.(*Recursive)
		return ok && r.match(a.Var, b.Var) && equivalent(a.Body, b.Body, r)
	}
	return false
}

// Members are compared positionally; normalized unions and intersections order variables
// before the concrete member.
func equivalentMembers(a, b []Type, r *renaming) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equivalent(a[i], b[i], r) {
			return false
		}
	}
	return true
}
