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

package ast

import (
	"strconv"
	"strings"

	"github.com/wdamron/polar/types"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

// simple is set for positions which bind tighter than a binary operator.
func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case *Bool:
		sb.WriteString(strconv.FormatBool(et.Value))

	case *Int:
		sb.WriteString(strconv.FormatInt(et.Value, 10))

	case *Var:
		sb.WriteString(et.Name)

	case *Call:
		exprString(sb, true, et.Func)
		sb.WriteByte('(')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, arg)
		}
		sb.WriteByte(')')

	case *Func:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("fn (")
		for i, p := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.Type != nil {
				sb.WriteString(" : ")
				sb.WriteString(types.TypeString(p.Type))
			}
		}
		sb.WriteByte(')')
		if et.Return != nil {
			sb.WriteString(" : ")
			sb.WriteString(types.TypeString(et.Return))
		}
		sb.WriteString(" -> ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *Let:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		sb.WriteString(et.Var)
		sb.WriteString(" = ")
		exprString(sb, false, et.Value)
		sb.WriteString(" in ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *LetGroup:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		for i, v := range et.Vars {
			if i > 0 {
				sb.WriteString(" and ")
			}
			sb.WriteString(v.Var)
			sb.WriteString(" = ")
			exprString(sb, false, v.Value)
		}
		sb.WriteString(" in ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *If:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if ")
		exprString(sb, false, et.Cond)
		sb.WriteString(" then ")
		exprString(sb, false, et.Then)
		sb.WriteString(" else ")
		exprString(sb, false, et.Else)
		if simple {
			sb.WriteByte(')')
		}

	case *BinaryOp:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Left)
		sb.WriteByte(' ')
		sb.WriteString(et.Op.String())
		sb.WriteByte(' ')
		exprString(sb, true, et.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *UnaryOp:
		sb.WriteString(et.Op.String())
		exprString(sb, true, et.Operand)

	case *Record:
		sb.WriteByte('{')
		for i, f := range et.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Label)
			sb.WriteString(" = ")
			exprString(sb, false, f.Value)
		}
		sb.WriteByte('}')

	case *Select:
		exprString(sb, true, et.Record)
		sb.WriteByte('.')
		sb.WriteString(et.Label)
	}
}

// ModuleString returns a string representation of a module, with one definition per line.
func ModuleString(m *Module) string {
	var sb strings.Builder
	for _, def := range m.Defs {
		sb.WriteString("def ")
		sb.WriteString(def.Name)
		sb.WriteString(" = ")
		exprString(&sb, false, def.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}
