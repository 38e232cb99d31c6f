package dataflow

import (
	"encoding"
	"fmt"
)

// =============================================================================
// Order
// =============================================================================

// Order selects the block visiting order of one solver sweep.
// It affects the number of sweeps, never the fixpoint.
type Order int

const (
	orderInvalid Order = iota
	// OrderReverse visits blocks from last to first in program order.
	OrderReverse
	// OrderProgram visits blocks in program order.
	OrderProgram
	// OrderPostorder visits blocks in depth-first postorder from the entry;
	// unreachable blocks come last.
	OrderPostorder
)

var orderNames = map[Order]string{
	OrderReverse:   "reverse",
	OrderProgram:   "program",
	OrderPostorder: "postorder",
}

var (
	_ encoding.TextMarshaler   = Order(0)
	_ encoding.TextUnmarshaler = (*Order)(nil)
)

func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("order-invalid(%d)", int(o))
}

// MarshalText for writing configs and flag defaults.
func (o Order) MarshalText() ([]byte, error) {
	s, ok := orderNames[o]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Order(%d)", int(o))
	}
	return []byte(s), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (o *Order) UnmarshalText(b []byte) error {
	for k, v := range orderNames {
		if v == string(b) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown sweep order %q", b)
}

// Valid reports whether o is a known order.
func (o Order) Valid() bool {
	_, ok := orderNames[o]
	return ok
}

// =============================================================================
// Policy
// =============================================================================

// Policy selects how instructions are classified into UEVAR and KILL.
type Policy int

const (
	policyInvalid Policy = iota

	// PolicyClassic applies separate rules per instruction kind:
	//   - arithmetic operand loads are kill-checked
	//   - store sources and comparison operand loads are not
	//   - every store kills its target
	PolicyClassic

	// PolicyUniform treats every load of a slot as a use, kill-checked, and
	// every store as a kill. This is the textbook definition.
	PolicyUniform
)

var policyNames = map[Policy]string{
	PolicyClassic: "classic",
	PolicyUniform: "uniform",
}

var (
	_ encoding.TextMarshaler   = Policy(0)
	_ encoding.TextUnmarshaler = (*Policy)(nil)
)

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("policy-invalid(%d)", int(p))
}

// MarshalText for writing configs and flag defaults.
func (p Policy) MarshalText() ([]byte, error) {
	s, ok := policyNames[p]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Policy(%d)", int(p))
	}
	return []byte(s), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (p *Policy) UnmarshalText(b []byte) error {
	for k, v := range policyNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown classification policy %q", b)
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	_, ok := policyNames[p]
	return ok
}
