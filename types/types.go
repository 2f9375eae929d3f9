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

// VarId identifies a type-variable within a variable store.
type VarId int32

// Type is the base interface for all types.
//
// Types are immutable. Type-variables refer to their bounds by id; bounds are owned by the
// variable store of the inference session which created them.
type Type interface {
	TypeName() string
}

var (
	_ Type = (*Bool)(nil)
	_ Type = (*Int)(nil)
	_ Type = (*Func)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Var)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Inter)(nil)
	_ Type = (*Recursive)(nil)
)

func (t *Bool) TypeName() string      { return "Bool" }
func (t *Int) TypeName() string       { return "Int" }
func (t *Func) TypeName() string      { return "Func" }
func (t *Record) TypeName() string    { return "Record" }
func (t *Var) TypeName() string       { return "Var" }
func (t *Union) TypeName() string     { return "Union" }
func (t *Inter) TypeName() string     { return "Inter" }
func (t *Recursive) TypeName() string { return "Recursive" }

// Boolean type: `bool`
type Bool struct{}

// Integer type: `int`
type Int struct{}

// Function type: `int -> bool`
type Func struct {
	Domain Type
	Range  Type
}

// Record type: `{x : int, y : bool}`
type Record struct {
	Fields TypeMap
}

// Type-variable: `'a`
type Var struct {
	Id VarId
}

// Join of type-variables and at most one concrete type: `'a | int`
//
// Unions are only produced by simplification and only appear in positive positions.
type Union struct {
	Types []Type
}

// Meet of type-variables and at most one concrete type: `'a & int`
//
// Intersections are only produced by simplification and only appear in negative positions.
type Inter struct {
	Types []Type
}

// Recursive type: `rec 'a. {next : 'a}`
type Recursive struct {
	Var  VarId
	Body Type
}

var (
	boolType = &Bool{}
	intType  = &Int{}
)

// NewBool returns the boolean type.
func NewBool() *Bool { return boolType }

// NewInt returns the integer type.
func NewInt() *Int { return intType }

// NewFunc creates a function type.
func NewFunc(domain, rng Type) *Func { return &Func{Domain: domain, Range: rng} }

// NewCurried creates a chain of function types: `a -> b -> ret`
func NewCurried(params []Type, ret Type) Type {
	t := ret
	for i := len(params) - 1; i >= 0; i-- {
		t = &Func{Domain: params[i], Range: t}
	}
	return t
}

// NewRecord creates a record type from a map of labels to field types.
func NewRecord(fields map[string]Type) *Record {
	b := NewTypeMapBuilder()
	for label, t := range fields {
		b.Set(label, t)
	}
	return &Record{Fields: b.Build()}
}

// NewVar creates a reference to the type-variable with the given id.
func NewVar(id VarId) *Var { return &Var{Id: id} }

// Family identifies the lattice which a concrete type belongs to.
type Family int

const (
	NoFamily Family = iota
	BoolFamily
	IntFamily
	FuncFamily
	RecordFamily
)

func (f Family) String() string {
	switch f {
	case BoolFamily:
		return "bool"
	case IntFamily:
		return "int"
	case FuncFamily:
		return "function"
	case RecordFamily:
		return "record"
	}
	return "none"
}

// FamilyOf returns the lattice family of a concrete type, or NoFamily for variables and
// composite output types.
func FamilyOf(t Type) Family {
	switch t.(type) {
	case *Bool:
		return BoolFamily
	case *Int:
		return IntFamily
	case *Func:
		return FuncFamily
	case *Record:
		return RecordFamily
	}
	return NoFamily
}

// IsConcrete returns true if t is headed by a type constructor.
func IsConcrete(t Type) bool { return FamilyOf(t) != NoFamily }

// Polarity of a position within a type. Function domains flip polarity.
type Polarity bool

const (
	Positive Polarity = true
	Negative Polarity = false
)

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity { return !p }

func (p Polarity) String() string {
	if p {
		return "+"
	}
	return "-"
}

// Children calls f for each direct sub-type of t, along with the polarity of the sub-type
// relative to t. Iteration stops if f returns false.
func Children(t Type, f func(Type, Polarity) bool) {
	switch t := t.(type) {
	case *Func:
		if f(t.Domain, Negative) {
			f(t.Range, Positive)
		}
	case *Record:
		t.Fields.Range(func(_ string, ft Type) bool {
			return f(ft, Positive)
		})
	case *Union:
		for _, m := range t.Types {
			if !f(m, Positive) {
				return
			}
		}
	case *Inter:
		for _, m := range t.Types {
			if !f(m, Positive) {
				return
			}
		}
	case *Recursive:
		f(t.Body, Positive)
	}
}

// FreeVars returns the ids of free type-variables in t, in order of first occurrence.
func FreeVars(t Type) []VarId {
	var ids []VarId
	seen := make(map[VarId]bool)
	bound := make(map[VarId]bool)
	var visit func(Type)
	visit = func(t Type) {
		switch t := t.(type) {
		case *Var:
			if !seen[t.Id] && !bound[t.Id] {
				seen[t.Id] = true
				ids = append(ids, t.Id)
			}
		case *Recursive:
			shadowed := bound[t.Var]
			bound[t.Var] = true
			visit(t.Body)
			bound[t.Var] = shadowed
		default:
			Children(t, func(c Type, _ Polarity) bool {
				visit(c)
				return true
			})
		}
	}
	visit(t)
	return ids
}
