package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/pvalue"
	"github.com/aretw0/pvalue/pkg/types"
	"github.com/aretw0/pvalue/pkg/value"
)

// StressOptions configures an insert/remove workload on a map.
type StressOptions struct {
	Type   string // a map type with int keys
	Keys   int
	Rounds int
}

// StressResult summarizes a finished workload.
type StressResult struct {
	Rounds   int
	Inserts  int
	Removes  int
	Capacity int // bucket count at the largest size
	Elapsed  time.Duration
	Stats    value.Stats
}

// Stress fills a map with Keys entries, removes the even keys, checks that
// the odd ones kept their insertion order, then empties the map; Rounds times.
// The map is released before returning, also on error.
func Stress(ctx context.Context, rt *pvalue.Runtime, opts StressOptions) (StressResult, error) {
	t, err := rt.ParseType(opts.Type)
	if err != nil {
		return StressResult{}, err
	}
	mt, ok := t.(*types.MapType)
	if !ok || mt.Key.Kind() != types.KindInt {
		return StressResult{}, fmt.Errorf("stress needs a map with int keys, got %s", t.Name())
	}
	if opts.Keys <= 0 || opts.Rounds <= 0 {
		return StressResult{}, fmt.Errorf("keys and rounds must be positive")
	}

	h := rt.Heap
	m, err := h.MkDefaultValue(mt)
	if err != nil {
		return StressResult{}, err
	}
	defer h.FreeValue(m)

	res := StressResult{}
	start := time.Now()
	for round := 0; round < opts.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := fill(ctx, h, m, mt.Value, opts.Keys); err != nil {
			return res, fmt.Errorf("round %d: %w", round, err)
		}
		res.Inserts += opts.Keys
		res.Capacity = max(res.Capacity, value.MapCapacity(m))

		n, err := drain(h, m, opts.Keys, 0)
		res.Removes += n
		if err == nil {
			err = checkOdd(h, m, opts.Keys)
		}
		if err != nil {
			return res, fmt.Errorf("round %d: %w", round, err)
		}
		n, err = drain(h, m, opts.Keys, 1)
		res.Removes += n
		if err != nil {
			return res, fmt.Errorf("round %d: %w", round, err)
		}

		res.Rounds++
		rt.Logger.Info("stress round finished",
			"round", round, "capacity", value.MapCapacity(m), "live_cells", h.Stats().LiveCells)
	}
	res.Elapsed = time.Since(start)
	res.Stats = h.Stats()
	return res, nil
}

func fill(ctx context.Context, h *value.Heap, m *value.Value, vt types.Type, keys int) error {
	for i := 0; i < keys; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		k, err := h.MkIntValue(int32(i))
		if err != nil {
			return err
		}
		v, err := h.MkDefaultValue(vt)
		if err != nil {
			h.FreeValue(k)
			return err
		}
		if err := h.MapUpdateEx(m, k, v, false); err != nil {
			h.FreeValue(k)
			h.FreeValue(v)
			return err
		}
	}
	return nil
}

// drain removes the keys in [0, keys) with the given parity.
func drain(h *value.Heap, m *value.Value, keys, parity int) (int, error) {
	n := 0
	for i := parity; i < keys; i += 2 {
		k, err := h.MkIntValue(int32(i))
		if err != nil {
			return n, err
		}
		h.MapRemove(m, k)
		h.FreeValue(k)
		n++
	}
	return n, nil
}

func checkOdd(h *value.Heap, m *value.Value, keys int) error {
	seq, err := h.MapGetKeys(m)
	if err != nil {
		return err
	}
	defer h.FreeValue(seq)

	if got, want := value.SeqSizeOf(seq), keys/2; got != want {
		return fmt.Errorf("expected %d keys after removal, got %d", want, got)
	}
	for i := 0; i < value.SeqSizeOf(seq); i++ {
		k, err := h.SeqGet(seq, i)
		if err != nil {
			return err
		}
		got := value.PrimGetInt(k)
		h.FreeValue(k)
		if want := int32(2*i + 1); got != want {
			return fmt.Errorf("key %d out of order: got %d, want %d", i, got, want)
		}
	}
	return nil
}
