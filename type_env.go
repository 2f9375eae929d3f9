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
	"github.com/wdamron/polar/types"
)

// TypeEnv is a type-environment containing mappings from identifiers to declared types.
//
// Declared types are closed output types: every type-variable within a declared type is
// generic, and is replaced by a fresh type-variable each time the identifier is used.
//
// A type-environment may be shared across threads for inference, as long as no declarations
// are added concurrently. To extend a shared environment, create a new type-environment which
// inherits from the shared environment.
type TypeEnv struct {
	// Predeclared types in the parent of the current type-environment
	Parent *TypeEnv
	// Mappings from identifiers to declared types in the current type-environment
	Types map[string]types.Type
}

// Create a type-environment. The new environment will inherit bindings from the parent, if the parent is not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	return &TypeEnv{
		Parent: parent,
		Types:  make(map[string]types.Type),
	}
}

// Declare a type for an identifier within the type environment.
func (e *TypeEnv) Declare(name string, t types.Type) { e.Types[name] = t }

// Remove the declared type for an identifier within the type environment. Parent environment(s) will not be affected,
// and the identifier's type will still be visible if declared in a parent environment.
func (e *TypeEnv) Remove(name string) { delete(e.Types, name) }

// Lookup the type for an identifier in the environment or its parent environment(s).
func (e *TypeEnv) Lookup(name string) types.Type {
	if e == nil {
		return nil
	}
	if t, ok := e.Types[name]; ok {
		return t
	}
	return e.Parent.Lookup(name)
}
