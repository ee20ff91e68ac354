package cli

import (
	"fmt"
	"strings"

	"github.com/aretw0/pvalue"
	"github.com/aretw0/pvalue/pkg/value"
)

// CheckReport records how the default value of a type behaves under the
// core operations.
type CheckReport struct {
	Type        string
	Default     string
	Inhabits    bool
	CloneEqual  bool
	HashAgrees  bool
	Hash        uint32
	Cells       int64 // cells held by the default value
	LeakedCells int64 // cells still live after freeing everything
	Stats       value.Stats
}

// OK reports whether every property held.
func (r CheckReport) OK() bool {
	return r.Inhabits && r.CloneEqual && r.HashAgrees && r.LeakedCells == 0
}

// Check builds the default value of typ and exercises clone, equality,
// hashing, inhabitation and free on it.
func Check(rt *pvalue.Runtime, typ string) (CheckReport, error) {
	t, err := rt.ParseType(typ)
	if err != nil {
		return CheckReport{}, err
	}

	h := rt.Heap
	before := h.Stats()

	v, err := h.MkDefaultValue(t)
	if err != nil {
		return CheckReport{}, fmt.Errorf("default of %s: %w", t.Name(), err)
	}
	held := h.Stats().LiveCells - before.LiveCells

	c, err := h.CloneValue(v)
	if err != nil {
		h.FreeValue(v)
		return CheckReport{}, fmt.Errorf("clone of %s: %w", t.Name(), err)
	}

	report := CheckReport{
		Type:       t.Name(),
		Default:    v.String(),
		Inhabits:   value.InhabitsType(v, t),
		CloneEqual: h.IsEqualValue(v, c),
		HashAgrees: h.GetHashCodeValue(v) == h.GetHashCodeValue(c),
		Hash:       h.GetHashCodeValue(v),
		Cells:      held,
	}

	h.FreeValue(c)
	h.FreeValue(v)

	report.Stats = h.Stats()
	report.LeakedCells = report.Stats.LiveCells - before.LiveCells
	rt.Logger.Debug("type checked", "type", report.Type, "ok", report.OK())
	return report, nil
}

// Markdown renders the report for the terminal renderer.
func (r CheckReport) Markdown() string {
	mark := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "**no**"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# `%s`\n\n", r.Type)
	fmt.Fprintf(&sb, "Default value: `%s`\n\n", r.Default)
	sb.WriteString("| Property | Result |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Default inhabits type | %s |\n", mark(r.Inhabits))
	fmt.Fprintf(&sb, "| Clone is equal | %s |\n", mark(r.CloneEqual))
	fmt.Fprintf(&sb, "| Clone hash agrees | %s |\n", mark(r.HashAgrees))
	fmt.Fprintf(&sb, "| Cells released | %s |\n", mark(r.LeakedCells == 0))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Hash `%#08x`, %d cells, %d allocations, %d frees.\n",
		r.Hash, r.Cells, r.Stats.Allocations, r.Stats.Frees)
	return sb.String()
}
