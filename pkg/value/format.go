package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/pvalue/pkg/types"
)

// String renders v, e.g. "(x = 1, y = true)", "[1, 2]" or "{1 -> 10}".
// Maps list their entries in insertion order.
func (v *Value) String() string {
	return v.Format(nil)
}

// Format renders v like String, passing every leaf through decorate.
// Leaves are primitives and foreign values; null payloads are reported
// as KindNull. A nil decorate leaves the text unchanged.
func (v *Value) Format(decorate func(kind Kind, text string) string) string {
	f := formatter{decorate: decorate}
	f.format(v)
	return f.sb.String()
}

type formatter struct {
	sb       strings.Builder
	decorate func(Kind, string) string
}

func (f *formatter) leaf(kind Kind, text string) {
	if f.decorate != nil {
		text = f.decorate(kind, text)
	}
	f.sb.WriteString(text)
}

func (f *formatter) format(v *Value) {
	sb := &f.sb
	if v == nil {
		sb.WriteString("<nil>")
		return
	}

	switch v.kind {
	case kindFreed:
		sb.WriteString("<freed>")
	case KindNull:
		f.leaf(KindNull, "null")
	case KindBool:
		f.leaf(KindBool, strconv.FormatBool(v.bits != 0))
	case KindInt:
		f.leaf(KindInt, strconv.FormatInt(int64(int32(v.bits)), 10))
	case KindEvent, KindMachine, KindModel:
		if v.bits == NullSentinel {
			f.leaf(KindNull, "null")
			return
		}
		f.leaf(v.kind, fmt.Sprintf("%s(%d)", v.kind, v.bits))
	case KindForeign:
		if v.frgn == nil {
			f.leaf(KindForeign, fmt.Sprintf("foreign %s(null)", foreignTag(v)))
			return
		}
		f.leaf(KindForeign, fmt.Sprintf("foreign %s(%v)", foreignTag(v), v.frgn))
	case KindTuple:
		var names []types.Field
		if nt, ok := v.typ.(*types.NamedTupleType); ok {
			names = nt.Fields
		}
		sb.WriteByte('(')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			if names != nil {
				sb.WriteString(names[i].Name)
				sb.WriteString(" = ")
			}
			f.format(e)
		}
		sb.WriteByte(')')
	case KindSeq:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			f.format(e)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for n := v.m.first; n != nil; n = n.insertNext {
			if n != v.m.first {
				sb.WriteString(", ")
			}
			f.format(n.key)
			sb.WriteString(" -> ")
			f.format(n.value)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString(v.kind.String())
	}
}
