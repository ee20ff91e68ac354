package types

import (
	"fmt"
	"strings"
)

// Kind discriminates type expressions.
type Kind uint8

const (
	KindAny Kind = iota
	KindNull
	KindBool
	KindEvent
	KindInt
	KindMachine
	KindModel
	KindForeign
	KindTuple
	KindNamedTuple
	KindSeq
	KindMap
)

var kindNames = [...]string{
	KindAny:        "any",
	KindNull:       "null",
	KindBool:       "bool",
	KindEvent:      "event",
	KindInt:        "int",
	KindMachine:    "machine",
	KindModel:      "model",
	KindForeign:    "foreign",
	KindTuple:      "tuple",
	KindNamedTuple: "named tuple",
	KindSeq:        "seq",
	KindMap:        "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsPrimitive reports whether k has no inner types.
func (k Kind) IsPrimitive() bool {
	return k <= KindModel
}

// Type is a structural type expression.
// Implementations are immutable, so a Type may be shared freely between values.
type Type interface {
	// Name returns the textual notation of the type (e.g., "int", "seq[bool]").
	// Parse(t.Name()) yields a type equal to t.
	Name() string
	// Kind returns the discriminator of the expression.
	Kind() Kind
}

// --- Built-in Type Implementations ---

// PrimitiveType covers any, null, bool, event, int, machine and model.
type PrimitiveType struct {
	kind Kind
}

func (t *PrimitiveType) Name() string { return t.kind.String() }
func (t *PrimitiveType) Kind() Kind   { return t.kind }

// ForeignType is an opaque type identified by a tag registered with the foreign registry.
type ForeignType struct {
	Tag string
}

func (t *ForeignType) Name() string { return "foreign " + t.Tag }
func (t *ForeignType) Kind() Kind   { return KindForeign }

// TupleType is a fixed-arity, unnamed product type.
type TupleType struct {
	Elems []Type
}

func (t *TupleType) Kind() Kind { return KindTuple }

func (t *TupleType) Name() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Name()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Field is one labelled element of a named tuple.
type Field struct {
	Name string
	Type Type
}

// NamedTupleType is a tuple whose elements carry names.
type NamedTupleType struct {
	Fields []Field
}

func (t *NamedTupleType) Kind() Kind { return KindNamedTuple }

func (t *NamedTupleType) Name() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.Name()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FieldIndex resolves a field name to its position.
func (t *NamedTupleType) FieldIndex(name string) (int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// SeqType is a variable-length sequence of Elem.
type SeqType struct {
	Elem Type
}

func (t *SeqType) Name() string { return "seq[" + t.Elem.Name() + "]" }
func (t *SeqType) Kind() Kind   { return KindSeq }

// MapType associates keys of type Key with values of type Value.
type MapType struct {
	Key   Type
	Value Type
}

func (t *MapType) Name() string { return "map[" + t.Key.Name() + ", " + t.Value.Name() + "]" }
func (t *MapType) Kind() Kind   { return KindMap }

// --- Factory Functions ---

var (
	anyType     = &PrimitiveType{kind: KindAny}
	nullType    = &PrimitiveType{kind: KindNull}
	boolType    = &PrimitiveType{kind: KindBool}
	eventType   = &PrimitiveType{kind: KindEvent}
	intType     = &PrimitiveType{kind: KindInt}
	machineType = &PrimitiveType{kind: KindMachine}
	modelType   = &PrimitiveType{kind: KindModel}
)

// Any matches every value.
func Any() Type { return anyType }

// Null is the type of the null value.
func Null() Type { return nullType }

// Bool creates the boolean type.
func Bool() Type { return boolType }

// Event creates the event-identifier type.
func Event() Type { return eventType }

// Int creates the signed 32-bit integer type.
func Int() Type { return intType }

// Machine creates the machine-handle type.
func Machine() Type { return machineType }

// Model creates the model-handle type.
func Model() Type { return modelType }

// Foreign creates a foreign type for the given registry tag.
func Foreign(tag string) Type { return &ForeignType{Tag: tag} }

// Tuple creates an unnamed tuple type. It panics on an empty element list.
func Tuple(elems ...Type) Type {
	if len(elems) == 0 {
		panic("types: tuple needs at least one element")
	}
	return &TupleType{Elems: append([]Type(nil), elems...)}
}

// NamedTuple creates a named tuple type. It panics on an empty field list
// or a duplicated field name.
func NamedTuple(fields ...Field) Type {
	if len(fields) == 0 {
		panic("types: named tuple needs at least one field")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			panic(fmt.Sprintf("types: duplicate field %q", f.Name))
		}
		seen[f.Name] = true
	}
	return &NamedTupleType{Fields: append([]Field(nil), fields...)}
}

// Seq creates a sequence type.
func Seq(elem Type) Type { return &SeqType{Elem: elem} }

// Map creates a map type.
func Map(key, value Type) Type { return &MapType{Key: key, Value: value} }

// Elements returns the element types of a tuple or named tuple, and nil otherwise.
func Elements(t Type) []Type {
	switch tt := t.(type) {
	case *TupleType:
		return tt.Elems
	case *NamedTupleType:
		elems := make([]Type, len(tt.Fields))
		for i, f := range tt.Fields {
			elems[i] = f.Type
		}
		return elems
	}
	return nil
}
