package cpu

import (
	"errors"
	"fmt"
)

// ErrStackUnderflow signals a subroutine return with an empty call stack.
var ErrStackUnderflow = errors.New("return with empty call stack")

// OpcodeError signals an instruction bit-pattern outside the recognized set.
// It indicates a malformed ROM or an interpreter gap, never a host failure.
type OpcodeError struct {
	Opcode uint16
}

func (e OpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%04X", e.Opcode)
}
