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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a, b := NewVar(1), NewVar(12)
	rec := func(fields map[string]Type) Type { return NewRecord(fields) }
	distinct := []Type{
		NewInt(),
		NewBool(),
		NewFunc(NewInt(), NewBool()),
		NewFunc(NewBool(), NewInt()),
		NewFunc(NewFunc(NewInt(), NewInt()), NewInt()),
		NewFunc(NewInt(), NewFunc(NewInt(), NewInt())),
		rec(nil),
		rec(map[string]Type{"ab": NewInt()}),
		rec(map[string]Type{"a": NewInt()}),
		rec(map[string]Type{"a": NewInt(), "b": NewInt()}),
		rec(map[string]Type{"a": rec(map[string]Type{"b": NewInt()})}),
		rec(map[string]Type{"a;1:b": NewInt()}),
		a,
		b,
		NewVar(11),
		NewVar(112),
		&Union{Types: []Type{a, b}},
		&Union{Types: []Type{b, a}},
		&Union{Types: []Type{a, NewInt()}},
		&Union{Types: []Type{&Union{Types: []Type{a, b}}, NewInt()}},
		&Union{Types: []Type{a, &Union{Types: []Type{b, NewInt()}}}},
		&Inter{Types: []Type{a, b}},
		&Recursive{Var: 1, Body: rec(map[string]Type{"next": a})},
		&Recursive{Var: 12, Body: rec(map[string]Type{"next": a})},
	}
	keys := make(map[string]Type, len(distinct))
	for _, ty := range distinct {
		k := Key(ty)
		if prev, dup := keys[k]; dup {
			t.Fatalf("%s and %s share key %q", TypeString(prev), TypeString(ty), k)
		}
		keys[k] = ty
	}

	// structurally equal types share a key, regardless of field insertion order:
	x := rec(map[string]Type{"x": NewInt(), "y": NewFunc(NewVar(3), NewBool())})
	y := rec(map[string]Type{"y": NewFunc(NewVar(3), NewBool()), "x": NewInt()})
	require.True(t, Equal(x, y))
	require.Equal(t, Key(x), Key(y))
	require.Equal(t, Key(&Union{Types: []Type{a, NewInt()}}), Key(&Union{Types: []Type{NewVar(1), NewInt()}}))
	require.NotEqual(t, Key(NewVar(3)), Key(NewVar(4)))
}
