package value

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when an operation would exceed the heap's cell budget.
// The operation leaves every value it was given in its pre-call state.
var ErrOutOfMemory = errors.New("heap budget exhausted")

// ContractError describes a caller bug: an out-of-range index, a kind mismatch,
// a missing map key on a failing getter, an ill-typed store or an illegal cast.
// Operations panic with a *ContractError instead of returning it.
type ContractError struct {
	Op     string // Operation that detected the violation
	Reason string // Human-readable description
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("value: %s: contract violation: %s", e.Op, e.Reason)
}

func violate(op, format string, args ...any) {
	panic(&ContractError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

func mustLive(op string, v *Value) {
	if v == nil {
		violate(op, "nil value")
	}
	if v.kind == kindFreed {
		violate(op, "use of freed value")
	}
}

func mustKind(op string, v *Value, want Kind) {
	mustLive(op, v)
	if v.kind != want {
		violate(op, "expected %s value, got %s", want, v.kind)
	}
}

func checkIndex(op string, index, limit int) {
	if index < 0 || index >= limit {
		violate(op, "index %d out of range [0, %d)", index, limit)
	}
}
