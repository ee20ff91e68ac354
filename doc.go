/*
Package pvalue is the value core of a runtime for communicating state machines.

It provides typed, heap-accounted values (primitives, foreign payloads,
tuples, sequences and insertion-ordered maps) with deep clone, structural
equality and hashing, type inhabitation, checked casts and default values.

# Packages

  - types: the type oracle, its textual notation and subtyping.
  - registry: callbacks for foreign payload types.
  - value: the value model and its Heap.
  - observability: a Prometheus collector over heap statistics.

# Usage

A Runtime wires a heap to its configuration, logger and registry:

	rt, err := pvalue.New(pvalue.WithConfigFile("pvalue.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	m, err := rt.Default("map[int, int]")
	if err != nil {
		log.Fatal(err)
	}
	defer rt.Heap.FreeValue(m)

Every value handed out by the heap is owned by the caller and must be
released with Heap.FreeValue.
*/
package pvalue
