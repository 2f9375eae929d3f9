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
)

// Key returns a canonical encoding of t. Two types have the same key if and only if they are
// structurally equal, including type-variable ids.
func Key(t Type) string {
	var sb strings.Builder
	writeKey(&sb, t)
	return sb.String()
}

func writeKey(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case *Bool:
		sb.WriteByte('B')
	case *Int:
		sb.WriteByte('I')
	case *Func:
		sb.WriteByte('F')
		writeKey(sb, t.Domain)
		writeKey(sb, t.Range)
	case *Record:
		sb.WriteByte('R')
		sb.WriteString(strconv.Itoa(t.Fields.Len()))
		t.Fields.Range(func(label string, ft Type) bool {
			// labels are length-prefixed:
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(len(label)))
			sb.WriteByte(':')
			sb.WriteString(label)
			writeKey(sb, ft)
			return true
		})
	case *Var:
		sb.WriteByte('V')
		sb.WriteString(strconv.Itoa(int(t.Id)))
		sb.WriteByte('.')
	case *Union:
		writeMemberKeys(sb, 'U', t.Types)
	case *Inter:
		writeMemberKeys(sb, 'N', t.Types)
	case *Recursive:
		sb.WriteByte('M')
		sb.WriteString(strconv.Itoa(int(t.Var)))
		sb.WriteByte('.')
		writeKey(sb, t.Body)
	case nil:
		sb.WriteByte('_')
	}
}

func writeMemberKeys(sb *strings.Builder, tag byte, members []Type) {
	sb.WriteByte(tag)
	sb.WriteString(strconv.Itoa(len(members)))
	for _, m := range members {
		sb.WriteByte(';')
		writeKey(sb, m)
	}
}
