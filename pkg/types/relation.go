package types

// Equal reports whether two type expressions are structurally identical.
// Field names of named tuples take part in the comparison.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}

	switch at := a.(type) {
	case *PrimitiveType:
		return true
	case *ForeignType:
		return at.Tag == b.(*ForeignType).Tag
	case *TupleType:
		bt := b.(*TupleType)
		if len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !Equal(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	case *NamedTupleType:
		bt := b.(*NamedTupleType)
		if len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i := range at.Fields {
			if at.Fields[i].Name != bt.Fields[i].Name || !Equal(at.Fields[i].Type, bt.Fields[i].Type) {
				return false
			}
		}
		return true
	case *SeqType:
		return Equal(at.Elem, b.(*SeqType).Elem)
	case *MapType:
		bt := b.(*MapType)
		return Equal(at.Key, bt.Key) && Equal(at.Value, bt.Value)
	}
	return false
}

// IsSubtype reports whether every value of sub is also a value of super.
//
// any is the top type; null is below event, machine and model.
// Containers are covariant in their inner types.
func IsSubtype(sub, super Type) bool {
	if super.Kind() == KindAny {
		return true
	}
	if sub.Kind() == KindNull {
		switch super.Kind() {
		case KindNull, KindEvent, KindMachine, KindModel:
			return true
		}
		return false
	}
	if sub.Kind() != super.Kind() {
		return false
	}

	switch st := sub.(type) {
	case *PrimitiveType:
		return true
	case *ForeignType:
		return st.Tag == super.(*ForeignType).Tag
	case *TupleType:
		pt := super.(*TupleType)
		if len(st.Elems) != len(pt.Elems) {
			return false
		}
		for i := range st.Elems {
			if !IsSubtype(st.Elems[i], pt.Elems[i]) {
				return false
			}
		}
		return true
	case *NamedTupleType:
		pt := super.(*NamedTupleType)
		if len(st.Fields) != len(pt.Fields) {
			return false
		}
		for i := range st.Fields {
			if st.Fields[i].Name != pt.Fields[i].Name || !IsSubtype(st.Fields[i].Type, pt.Fields[i].Type) {
				return false
			}
		}
		return true
	case *SeqType:
		return IsSubtype(st.Elem, super.(*SeqType).Elem)
	case *MapType:
		pt := super.(*MapType)
		return IsSubtype(st.Key, pt.Key) && IsSubtype(st.Value, pt.Value)
	}
	return false
}
