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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{idNames: make(map[VarId]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.idNames {
		delete(p.idNames, k)
	}
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type.
//
// Type-variables are named in order of first occurrence: 'a, 'b, ..., 'z, 'a1, ...
func TypeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

type typePrinter struct {
	idNames map[VarId]string
	sb      strings.Builder
}

var _names [128]string

func init() {
	for i := range _names {
		_names[i] = varName(uint(i))
	}
}

func varName(i uint) string {
	if i >= 26 {
		return "'" + string(rune('a'+i%26)) + strconv.Itoa(int(i/26))
	}
	return "'" + string(rune('a'+i))
}

func getVarName(i uint) string {
	if i < uint(len(_names)) {
		return _names[i]
	}
	return varName(i)
}

func (p *typePrinter) name(id VarId) string {
	if name, ok := p.idNames[id]; ok {
		return name
	}
	name := getVarName(uint(len(p.idNames)))
	p.idNames[id] = name
	return name
}

// simple is set for positions which bind tighter than an arrow.
func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case *Bool:
		p.sb.WriteString("bool")

	case *Int:
		p.sb.WriteString("int")

	case *Var:
		p.sb.WriteString(p.name(t.Id))

	case *Func:
		if simple {
			p.sb.WriteByte('(')
		}
		typeString(p, true, t.Domain)
		p.sb.WriteString(" -> ")
		typeString(p, false, t.Range)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Record:
		p.sb.WriteByte('{')
		i := 0
		t.Fields.Range(func(label string, ft Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(label)
			p.sb.WriteString(" : ")
			typeString(p, false, ft)
			i++
			return true
		})
		p.sb.WriteByte('}')

	case *Union:
		membersString(p, simple, " | ", t.Types)

	case *Inter:
		membersString(p, simple, " & ", t.Types)

	case *Recursive:
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteString("rec ")
		p.sb.WriteString(p.name(t.Var))
		p.sb.WriteString(". ")
		typeString(p, false, t.Body)
		if simple {
			p.sb.WriteByte(')')
		}

	case nil:
		p.sb.WriteString("<nil>")
	}
}

func membersString(p *typePrinter, simple bool, sep string, members []Type) {
	if simple {
		p.sb.WriteByte('(')
	}
	for i, m := range members {
		if i > 0 {
			p.sb.WriteString(sep)
		}
		typeString(p, true, m)
	}
	if simple {
		p.sb.WriteByte(')')
	}
}
