package ir

import "fmt"

// Op is the kind discriminator of an instruction.
type Op int

const (
	OpOther Op = iota
	OpAlloc
	OpLoad
	OpStore
	OpAdd
	OpSub
	OpMul
	OpUDiv
	OpSDiv
	OpBinary // any binary operator that is neither arithmetic nor comparison
	OpCmp
	OpCall
	OpPhi
	OpJump
	OpBranch
	OpReturn
)

var opNames = map[Op]string{
	OpOther:  "other",
	OpAlloc:  "alloc",
	OpLoad:   "load",
	OpStore:  "store",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpUDiv:   "udiv",
	OpSDiv:   "sdiv",
	OpBinary: "binary",
	OpCmp:    "cmp",
	OpCall:   "call",
	OpPhi:    "phi",
	OpJump:   "jump",
	OpBranch: "br",
	OpReturn: "ret",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// IsArith reports whether op is one of the tracked binary arithmetic
// operations: add, sub, mul, udiv, sdiv.
func (op Op) IsArith() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpUDiv, OpSDiv:
		return true
	}
	return false
}

// IsTerminator reports whether op ends a block.
func (op Op) IsTerminator() bool {
	switch op {
	case OpJump, OpBranch, OpReturn:
		return true
	}
	return false
}
