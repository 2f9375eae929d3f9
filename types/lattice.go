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

// Op selects the lattice operation applied by Combine.
type Op int

const (
	MeetOp Op = iota
	JoinOp
)

// Dual returns the operation applied to contravariant positions.
func (op Op) Dual() Op {
	if op == MeetOp {
		return JoinOp
	}
	return MeetOp
}

func (op Op) String() string {
	if op == MeetOp {
		return "meet"
	}
	return "join"
}

// MismatchError is returned when a meet or join is applied to concrete types from
// different families. There is no implicit top or bottom shared across families.
type MismatchError struct {
	Op  Op
	Lhs Type
	Rhs Type
}

func (e *MismatchError) Error() string {
	return "Cannot " + e.Op.String() + " " + FamilyOf(e.Lhs).String() + " with " + FamilyOf(e.Rhs).String() +
		": " + TypeString(e.Lhs) + " and " + TypeString(e.Rhs)
}

// VarCombiner combines two operands when at least one of them is not headed by a type
// constructor (type-variables, unions, intersections, or recursive types).
type VarCombiner interface {
	Combine(op Op, a, b Type) (Type, error)
}

// Meet returns the greatest lower bound of a and b.
//
// If vc is nil, operands which are not concrete are combined into normalized intersections.
func Meet(a, b Type, vc VarCombiner) (Type, error) { return Combine(MeetOp, a, b, vc) }

// Join returns the least upper bound of a and b.
//
// If vc is nil, operands which are not concrete are combined into normalized unions.
func Join(a, b Type, vc VarCombiner) (Type, error) { return Combine(JoinOp, a, b, vc) }

// Combine applies a meet or join to a and b. Concrete types are combined by the lattice of
// their family; any other operand is delegated to vc.
func Combine(op Op, a, b Type, vc VarCombiner) (Type, error) {
	if vc == nil {
		vc = PolarCombiner{}
	}
	if !IsConcrete(a) || !IsConcrete(b) {
		return vc.Combine(op, a, b)
	}
	if FamilyOf(a) != FamilyOf(b) {
		return nil, &MismatchError{Op: op, Lhs: a, Rhs: b}
	}

	switch a := a.(type) {
	case *Bool, *Int:
		return a, nil

	case *Func:
		b := b.(*Func)
		// the domain is contravariant:
		dom, err := Combine(op.Dual(), a.Domain, b.Domain, vc)
		if err != nil {
			return nil, err
		}
		rng, err := Combine(op, a.Range, b.Range, vc)
		if err != nil {
			return nil, err
		}
		return &Func{Domain: dom, Range: rng}, nil

	case *Record:
		return combineRecords(op, a, b.(*Record), vc)
	}
	panic("unreachable")
}

// Absent fields are the top element of their slot: a meet keeps every label of both
// operands, and a join keeps only the labels present in both.
func combineRecords(op Op, a, b *Record, vc VarCombiner) (Type, error) {
	mb := NewTypeMapBuilder()
	var err error
	a.Fields.Range(func(label string, ta Type) bool {
		tb, ok := b.Fields.Get(label)
		if !ok {
			if op == MeetOp {
				mb.Set(label, ta)
			}
			return true
		}
		var t Type
		if t, err = Combine(op, ta, tb, vc); err != nil {
			return false
		}
		mb.Set(label, t)
		return true
	})
	if err != nil {
		return nil, err
	}
	if op == MeetOp {
		b.Fields.Range(func(label string, tb Type) bool {
			if _, ok := a.Fields.Get(label); !ok {
				mb.Set(label, tb)
			}
			return true
		})
	}
	return &Record{Fields: mb.Build()}, nil
}

// JoinAll returns the join of every type in ts. JoinAll returns nil for an empty list.
func JoinAll(ts []Type, vc VarCombiner) (Type, error) { return CombineAll(JoinOp, ts, vc) }

// MeetAll returns the meet of every type in ts. MeetAll returns nil for an empty list.
func MeetAll(ts []Type, vc VarCombiner) (Type, error) { return CombineAll(MeetOp, ts, vc) }

// CombineAll folds a meet or join over ts. With the default combiner, all operands are
// merged into a single normalized union or intersection in one pass.
func CombineAll(op Op, ts []Type, vc VarCombiner) (Type, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	if vc == nil {
		vc = PolarCombiner{}
	}
	if pc, ok := vc.(PolarCombiner); ok {
		return pc.combineAll(op, ts)
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		var err error
		if acc, err = Combine(op, acc, t, vc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// PolarCombiner combines type-variables with other types into normalized unions (for joins)
// and intersections (for meets).
//
// A normalized union contains distinct type-variables in order of first occurrence, followed
// by other non-concrete members, followed by at most one concrete type. Concrete members are
// merged with the lattice operations of their family.
type PolarCombiner struct{}

func (c PolarCombiner) Combine(op Op, a, b Type) (Type, error) {
	return c.combineAll(op, []Type{a, b})
}

func (c PolarCombiner) combineAll(op Op, ts []Type) (Type, error) {
	m := polarMembers{op: op, c: c}
	for _, t := range ts {
		if err := m.add(t); err != nil {
			return nil, err
		}
	}
	return m.build(), nil
}

type polarMembers struct {
	op           Op
	c            PolarCombiner
	vars, others []Type
	head         Type
	seen         map[VarId]bool
}

func (m *polarMembers) add(t Type) error {
	switch t := t.(type) {
	case *Var:
		if m.seen == nil {
			m.seen = make(map[VarId]bool)
		}
		if !m.seen[t.Id] {
			m.seen[t.Id] = true
			m.vars = append(m.vars, t)
		}
		return nil
	case *Union:
		if m.op == JoinOp {
			return m.addAll(t.Types)
		}
	case *Inter:
		if m.op == MeetOp {
			return m.addAll(t.Types)
		}
	}
	if !IsConcrete(t) {
		for _, o := range m.others {
			if Equal(o, t) {
				return nil
			}
		}
		m.others = append(m.others, t)
		return nil
	}
	if m.head == nil {
		m.head = t
		return nil
	}
	merged, err := Combine(m.op, m.head, t, m.c)
	if err != nil {
		return err
	}
	m.head = merged
	return nil
}

func (m *polarMembers) addAll(ts []Type) error {
	for _, t := range ts {
		if err := m.add(t); err != nil {
			return err
		}
	}
	return nil
}

func (m *polarMembers) build() Type {
	members := make([]Type, 0, len(m.vars)+len(m.others)+1)
	members = append(members, m.vars...)
	members = append(members, m.others...)
	if m.head != nil {
		members = append(members, m.head)
	}
	if len(members) == 1 {
		return members[0]
	}
	if m.op == JoinOp {
		return &Union{Types: members}
	}
	return &Inter{Types: members}
}
