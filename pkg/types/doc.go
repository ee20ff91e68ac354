// Package types provides the type expressions that value shapes are checked against.
//
// It defines the primitive types (any, null, bool, event, int, machine, model),
// foreign types identified by a registry tag, and the structural types tuple,
// named tuple, sequence and map. Types are immutable and may be shared.
//
// Basic usage:
//
//	point := types.NamedTuple(
//	    types.Field{Name: "x", Type: types.Int()},
//	    types.Field{Name: "y", Type: types.Int()},
//	)
//	table := types.Map(types.Int(), point)
//
// Types can also be parsed from their textual notation:
//
//	t, err := types.Parse("map[int, (x: int, y: int)]")
//
// Aliases declared in configuration are resolved through an Env:
//
//	env, err := types.ParseEnv(map[string]string{
//	    "Point": "(x: int, y: int)",
//	    "Path":  "seq[Point]",
//	})
//	path, err := types.ParseWith("Path", env)
//
// The package answers the questions the value core asks of a type system:
// structural equality (Equal), subtyping (IsSubtype) and field lookup
// (NamedTupleType.FieldIndex). It has no dependencies beyond the standard library.
package types
