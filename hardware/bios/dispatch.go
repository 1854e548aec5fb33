package bios

import (
	"fmt"
	"slices"

	"github.com/jetsetilly/test86/hardware/cpu"
)

// UnhandledInterrupt is returned by Service for an interrupt number with no
// installed handler. the caller decides whether to fault the guest or carry
// on - nothing in the BIOS state will have changed
var UnhandledInterrupt = fmt.Errorf("unhandled interrupt")

type handler struct {
	desc    string
	service func(regs *cpu.Registers) error
}

// the set of interrupt numbers with installed handlers is fixed for the
// lifetime of the session. dispatch is a simple table lookup
func (b *BIOS) installHandlers() {
	b.handlers = map[uint8]handler{
		0x08: {"timer tick", b.int08},
		0x10: {"video services", b.int10},
		0x11: {"equipment check", b.int11},
		0x12: {"memory size", b.int12},
		0x13: {"disk services", b.int13},
		0x14: {"serial port services", b.int14},
		0x16: {"keyboard services", b.int16},
		0x17: {"parallel port services", b.int17},
		0x1a: {"clock services", b.int1a},
		0x1c: {"user timer hook", b.int1c},
	}
}

// Service resolves and invokes the handler for the interrupt number. the
// handler's effect is expressed as BDA/memory mutation and changes to the
// register state passed in.
//
// Calling Service outside of a session is a programming error and fails with
// InvalidState
func (b *BIOS) Service(intr uint8, regs *cpu.Registers) error {
	if b.state != ready {
		return fmt.Errorf("bios: service %02x: %w", intr, InvalidState)
	}
	h, ok := b.handlers[intr]
	if !ok {
		return fmt.Errorf("%w: %02x", UnhandledInterrupt, intr)
	}
	return h.service(regs)
}

// Describe returns the one-line description of an installed service
func (b *BIOS) Describe(intr uint8) (string, bool) {
	h, ok := b.handlers[intr]
	return h.desc, ok
}

// Vectors returns the installed interrupt numbers in ascending order
func (b *BIOS) Vectors() []uint8 {
	var v []uint8
	for intr := range b.handlers {
		v = append(v, intr)
	}
	slices.Sort(v)
	return v
}
