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

// polar provides type inference with subtyping for a small functional language with
// booleans, integers, functions and records.
//
// The type-system is based on Stephen Dolan's algebraic subtyping, following the approach of
// Lionel Parreaux's Simple-sub. Subtyping constraints are solved by propagating bounds onto
// type-variables; inferred types are coalesced into unions and intersections of type-variables
// and type constructors, then simplified.
//
//
// Supported Features:
//
//   * Principal types with unions and intersections, without annotations
//   * Width subtyping for records
//   * Let-polymorphism with level-based generalization
//   * Mutually-recursive functions within grouped let bindings and module definitions
//   * Recursive types
//   * Declared parameter and return types
//   * Parallel checking of independent modules
//
//
// Links:
//
// Algebraic Subtyping (Dolan, 2017): https://www.cs.tufts.edu/~nr/cs257/archive/stephen-dolan/thesis.pdf
//
// The Simple Essence of Algebraic Subtyping (Parreaux, 2020): https://dl.acm.org/doi/10.1145/3409006
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
package polar
