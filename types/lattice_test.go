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
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// genGround generates a type without type-variables from the given family. Record fields
// always have the same family for the same label, so any two generated types from one
// family can be combined.
func genGround(r *rand.Rand, fam Family, depth int) Type {
	switch fam {
	case BoolFamily:
		return NewBool()
	case IntFamily:
		return NewInt()
	case FuncFamily:
		if depth == 0 {
			return NewFunc(NewInt(), NewBool())
		}
		return NewFunc(genGround(r, RecordFamily, depth-1), genGround(r, RecordFamily, depth-1))
	}
	fields := make(map[string]Type)
	if r.Intn(2) == 0 {
		fields["x"] = NewInt()
	}
	if r.Intn(2) == 0 {
		fields["y"] = NewBool()
	}
	if depth > 0 && r.Intn(2) == 0 {
		fields["z"] = genGround(r, RecordFamily, depth-1)
	}
	if depth > 0 && r.Intn(3) == 0 {
		fields["f"] = genGround(r, FuncFamily, depth-1)
	}
	return NewRecord(fields)
}

func mustCombine(t *testing.T, op Op, a, b Type) Type {
	t.Helper()
	out, err := Combine(op, a, b, nil)
	require.NoError(t, err, "%s %s %s", op, TypeString(a), TypeString(b))
	return out
}

func TestDistributivity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, fam := range []Family{BoolFamily, IntFamily, FuncFamily, RecordFamily} {
		for i := 0; i < 200; i++ {
			a, b, c := genGround(r, fam, 2), genGround(r, fam, 2), genGround(r, fam, 2)

			// a & (b | c) = (a & b) | (a & c)
			lhs := mustCombine(t, MeetOp, a, mustCombine(t, JoinOp, b, c))
			rhs := mustCombine(t, JoinOp, mustCombine(t, MeetOp, a, b), mustCombine(t, MeetOp, a, c))
			if !Equal(lhs, rhs) {
				t.Fatalf("%s: meet does not distribute over join for a = %s, b = %s, c = %s\nlhs: %s\nrhs: %s",
					fam, TypeString(a), TypeString(b), TypeString(c), TypeString(lhs), TypeString(rhs))
			}

			// a | (b & c) = (a | b) & (a | c)
			lhs = mustCombine(t, JoinOp, a, mustCombine(t, MeetOp, b, c))
			rhs = mustCombine(t, MeetOp, mustCombine(t, JoinOp, a, b), mustCombine(t, JoinOp, a, c))
			if !Equal(lhs, rhs) {
				t.Fatalf("%s: join does not distribute over meet for a = %s, b = %s, c = %s\nlhs: %s\nrhs: %s",
					fam, TypeString(a), TypeString(b), TypeString(c), TypeString(lhs), TypeString(rhs))
			}
		}
	}
}

func TestLatticeLaws(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, fam := range []Family{BoolFamily, IntFamily, FuncFamily, RecordFamily} {
		for i := 0; i < 100; i++ {
			a, b := genGround(r, fam, 2), genGround(r, fam, 2)
			for _, op := range []Op{MeetOp, JoinOp} {
				require.True(t, Equal(a, mustCombine(t, op, a, a)), "idempotence of %s for %s", op, TypeString(a))
				require.True(t, Equal(mustCombine(t, op, a, b), mustCombine(t, op, b, a)), "commutativity of %s", op)
				// absorption: a op (a dual b) = a
				require.True(t, Equal(a, mustCombine(t, op, a, mustCombine(t, op.Dual(), a, b))), "absorption of %s", op)
			}
		}
	}
}

func TestRecordLattice(t *testing.T) {
	xy := NewRecord(map[string]Type{"x": NewInt(), "y": NewBool()})
	xz := NewRecord(map[string]Type{"x": NewInt(), "z": NewInt()})

	require.Equal(t, "{x : int, y : bool, z : int}", TypeString(mustCombine(t, MeetOp, xy, xz)))
	require.Equal(t, "{x : int}", TypeString(mustCombine(t, JoinOp, xy, xz)))

	// the domain of a function is combined with the dual operation:
	f := NewFunc(xy, xy)
	g := NewFunc(xz, xz)
	require.Equal(t, "{x : int} -> {x : int, y : bool, z : int}", TypeString(mustCombine(t, MeetOp, f, g)))
	require.Equal(t, "{x : int, y : bool, z : int} -> {x : int}", TypeString(mustCombine(t, JoinOp, f, g)))
}

func TestCrossFamilyMismatch(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	families := []Family{BoolFamily, IntFamily, FuncFamily, RecordFamily}
	for _, fa := range families {
		for _, fb := range families {
			if fa == fb {
				continue
			}
			a, b := genGround(r, fa, 1), genGround(r, fb, 1)
			for _, op := range []Op{MeetOp, JoinOp} {
				_, err := Combine(op, a, b, nil)
				var merr *MismatchError
				require.True(t, errors.As(err, &merr), "%s %s %s", op, TypeString(a), TypeString(b))
				require.Equal(t, op, merr.Op)
			}
		}
	}

	// a mismatch within a field is also reported:
	a := NewRecord(map[string]Type{"x": NewInt()})
	b := NewRecord(map[string]Type{"x": NewBool()})
	_, err := Join(a, b, nil)
	require.Error(t, err)
	require.Equal(t, "Cannot join int with bool: int and bool", err.Error())
}

func TestPolarCombiner(t *testing.T) {
	a, b := NewVar(1), NewVar(2)

	j, err := Join(a, NewInt(), nil)
	require.NoError(t, err)
	j, err = Join(NewRecord(nil), j, nil)
	require.Error(t, err)

	j, err = Join(NewInt(), b, nil)
	require.NoError(t, err)
	j, err = Join(a, j, nil)
	require.NoError(t, err)
	require.Equal(t, "'a | 'b | int", TypeString(j))

	// variables are not repeated:
	j, err = Join(j, b, nil)
	require.NoError(t, err)
	require.Equal(t, "'a | 'b | int", TypeString(j))

	m, err := MeetAll([]Type{a, NewFunc(a, NewInt()), NewFunc(b, NewInt()), a}, nil)
	require.NoError(t, err)
	require.Equal(t, "'a & (('a | 'b) -> int)", TypeString(m))

	single, err := JoinAll([]Type{a}, nil)
	require.NoError(t, err)
	require.Same(t, a, single)

	empty, err := JoinAll(nil, nil)
	require.NoError(t, err)
	require.Nil(t, empty)
}
