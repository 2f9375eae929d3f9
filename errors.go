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
	"errors"
	"fmt"

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

// ErrorKind classifies type errors.
type ErrorKind int

const (
	// Two concrete types from different families were related or combined.
	ConstructorMismatch ErrorKind = iota + 1
	// A record was required to have a field which it lacks.
	RecordFieldMissing
	// Constraint solving exceeded its fuel or depth limit.
	RecursionLimit
	// An identifier was referenced without being bound.
	UnboundIdentifier
	// An identifier was bound more than once within a module or let-group.
	DuplicateBinding
)

var (
	ErrConstructorMismatch = errors.New("constructor mismatch")
	ErrRecordFieldMissing  = errors.New("record field missing")
	ErrRecursionLimit      = errors.New("recursion limit exceeded")
	ErrUnboundIdentifier   = errors.New("unbound identifier")
	ErrDuplicateBinding    = errors.New("duplicate binding")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ConstructorMismatch:
		return ErrConstructorMismatch
	case RecordFieldMissing:
		return ErrRecordFieldMissing
	case RecursionLimit:
		return ErrRecursionLimit
	case UnboundIdentifier:
		return ErrUnboundIdentifier
	case DuplicateBinding:
		return ErrDuplicateBinding
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// TypeError reports a failure to infer a type for an expression.
//
// Use errors.Is with the Err* sentinels to test the kind of a TypeError.
type TypeError struct {
	Kind ErrorKind
	Loc  ast.Loc
	// Related types, for constructor mismatches and missing fields
	Lhs, Rhs types.Type
	// Missing field label
	Label string
	// Unbound or duplicate identifier
	Name string
}

func (e *TypeError) Error() string {
	var msg string
	switch e.Kind {
	case ConstructorMismatch:
		msg = "cannot relate " + types.TypeString(e.Lhs) + " to " + types.TypeString(e.Rhs)
	case RecordFieldMissing:
		msg = "missing field " + e.Label + " in " + types.TypeString(e.Lhs)
	case RecursionLimit:
		msg = "constraint solving did not terminate within its limits"
	case UnboundIdentifier:
		msg = "unbound identifier " + e.Name
	case DuplicateBinding:
		msg = "duplicate binding for " + e.Name
	default:
		msg = e.Kind.String()
	}
	return e.Loc.String() + ": " + msg
}

func (e *TypeError) Unwrap() error { return e.Kind.sentinel() }

func mismatchError(loc ast.Loc, lhs, rhs types.Type) *TypeError {
	return &TypeError{Kind: ConstructorMismatch, Loc: loc, Lhs: lhs, Rhs: rhs}
}
