package pvalue_test

import (
	"fmt"
	"log"

	"github.com/aretw0/pvalue"
	"github.com/aretw0/pvalue/internal/logging"
)

// ExampleNew builds a map, fills it and reads the keys back in insertion order.
func ExampleNew() {
	rt, err := pvalue.New(pvalue.WithLogger(logging.NewNop()))
	if err != nil {
		log.Fatal(err)
	}
	h := rt.Heap

	m, err := rt.Default("map[int, int]")
	if err != nil {
		log.Fatal(err)
	}
	defer h.FreeValue(m)

	for _, kv := range [][2]int32{{3, 30}, {1, 10}, {2, 20}} {
		k, _ := h.MkIntValue(kv[0])
		v, _ := h.MkIntValue(kv[1])
		// Ownership of k and v moves into the map.
		if err := h.MapUpdateEx(m, k, v, false); err != nil {
			log.Fatal(err)
		}
	}

	keys, err := h.MapGetKeys(m)
	if err != nil {
		log.Fatal(err)
	}
	defer h.FreeValue(keys)

	fmt.Println(m)
	fmt.Println(keys)
	// Output:
	// {3 -> 30, 1 -> 10, 2 -> 20}
	// [3, 1, 2]
}
