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

	"github.com/wdamron/polar/ast"
	"github.com/wdamron/polar/types"
)

// Result contains the types inferred for a module.
type Result struct {
	// Name of the module
	Module string
	// Top-level bindings, in order of definition
	Bindings []Binding
	// Types of all sub-expressions within successfully checked definitions
	Types map[ast.Expr]types.Type
	// Type errors, in the order they were found
	Errors []*TypeError
}

// Binding is the principal type of a top-level definition.
type Binding struct {
	Name string
	Loc  ast.Loc
	// Type is nil if the definition failed to type-check.
	Type types.Type
	// Failed is set if the definition or one of its dependencies failed to type-check.
	Failed bool
}

// Lookup the type of a top-level binding. Lookup returns nil if the binding does not exist or
// failed to type-check.
func (r *Result) Lookup(name string) types.Type {
	for _, b := range r.Bindings {
		if b.Name == name {
			return b.Type
		}
	}
	return nil
}

// Err returns all type errors joined into a single error, or nil if checking succeeded.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// Declare adds each successfully checked binding to env.
func (r *Result) Declare(env *TypeEnv) {
	for _, b := range r.Bindings {
		if b.Type != nil {
			env.Declare(b.Name, b.Type)
		}
	}
}
