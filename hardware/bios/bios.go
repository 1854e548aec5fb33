// Package bios implements the BIOS support layer of the virtual DOS machine:
// the BIOS data area, the ROM region at the top of the address space, the
// interrupt vector table and the services reached through it.
//
// The package does not interpret machine code. The CPU emulation calls
// Service() whenever the guest arrives at one of the installed vectors and
// the effect of the service is expressed entirely as BDA/memory mutation and
// register writeback.
package bios

import (
	"fmt"
	"io"

	"github.com/jetsetilly/test86/hardware/memory"
	"github.com/jetsetilly/test86/hardware/memory/bda"
	"github.com/jetsetilly/test86/hardware/memory/rom"
	"github.com/jetsetilly/test86/logger"
)

// the segment the interrupt vectors point into
const biosSegment = 0xf000

// offset into the BIOS segment of the stub for interrupt n. each stub is a
// single IRET placed well clear of the reset entry point at fff0
func stubOffset(intr uint8) uint16 {
	return 0xfe00 + uint16(intr)
}

// AlreadyInitialised is returned by Initialise if a session is already in
// progress. the existing session is left untouched
var AlreadyInitialised = fmt.Errorf("already initialised")

// InvalidState is returned when a service or host event arrives outside of a
// BIOS session. it indicates a programming error in the caller
var InvalidState = fmt.Errorf("no BIOS session in progress")

type state int

const (
	uninitialised state = iota
	initialising
	ready
	shuttingDown
)

type BIOS struct {
	mem    *memory.Memory
	attach memory.AttachBIOS

	// the BDA and ROM are created by Initialise() and released by Cleanup().
	// both are nil outside of a session
	BDA *bda.BDA
	ROM *rom.ROM

	// console handles are owned by the host environment. the BIOS only ever
	// references them and never closes them
	consoleInput  io.Reader
	consoleOutput io.Writer

	handlers map[uint8]handler

	state state

	// everything acquired during Initialise() pushes a release function onto
	// the unwind list. Cleanup() runs the list in reverse, which means a
	// partial initialisation is always released correctly
	unwind []func()
}

func Create(mem *memory.Memory, attach memory.AttachBIOS) *BIOS {
	return &BIOS{
		mem:    mem,
		attach: attach,
	}
}

// Initialise starts a BIOS session: the BDA is allocated and given its
// power-on values, the ROM region is mapped (loading the named image file if
// one is given), the interrupt vectors are installed and the console handles
// are recorded for the console facing services.
//
// A second call without an intervening Cleanup() fails with
// AlreadyInitialised. A failure part way through releases whatever had been
// acquired and leaves the BIOS ready for another Initialise()
func (b *BIOS) Initialise(imagePath string, consoleInput io.Reader, consoleOutput io.Writer) error {
	if b.state != uninitialised {
		return fmt.Errorf("bios: %w", AlreadyInitialised)
	}
	b.state = initialising

	fail := func(err error) error {
		b.Cleanup()
		return err
	}

	b.BDA = bda.Create()
	b.unwind = append(b.unwind, func() {
		b.BDA = nil
	})

	r, err := rom.Create(imagePath)
	if err != nil {
		return fail(fmt.Errorf("bios: %w", err))
	}
	b.ROM = r
	b.unwind = append(b.unwind, func() {
		b.ROM = nil
	})

	b.attach(b.BDA, b.ROM)
	b.unwind = append(b.unwind, func() {
		b.attach(nil, nil)
	})

	b.consoleInput = consoleInput
	b.consoleOutput = consoleOutput
	b.unwind = append(b.unwind, func() {
		b.consoleInput = nil
		b.consoleOutput = nil
	})

	b.installHandlers()
	b.unwind = append(b.unwind, func() {
		b.handlers = nil
	})

	// with no image the region is empty so the built-in stubs provide the
	// vector targets. an image is expected to carry its own entry points
	if imagePath == "" {
		err = b.installStubs()
		if err != nil {
			return fail(fmt.Errorf("bios: %w", err))
		}
	}

	err = b.installVectors()
	if err != nil {
		return fail(fmt.Errorf("bios: %w", err))
	}
	b.unwind = append(b.unwind, func() {
		b.clearVectors()
	})

	b.state = ready
	logger.Logf(logger.Allow, "bios", "initialised: %s", b.ROM.Status())

	return nil
}

// Cleanup ends the BIOS session, releasing everything Initialise() acquired.
// it never fails outwardly and is safe to call however far Initialise()
// progressed. calling it with no session in progress does nothing
func (b *BIOS) Cleanup() {
	if b.state == uninitialised {
		return
	}
	b.state = shuttingDown

	for i := len(b.unwind) - 1; i >= 0; i-- {
		b.unwind[i]()
	}
	b.unwind = b.unwind[:0]

	b.state = uninitialised
	logger.Log(logger.Allow, "bios", "cleanup complete")
}

// place an IRET stub for every installed service into the ROM region
func (b *BIOS) installStubs() error {
	const iret = 0xcf

	for intr := range b.handlers {
		idx := memory.Pointer(biosSegment, stubOffset(intr)) - rom.Origin
		err := b.ROM.Patch(idx, iret)
		if err != nil {
			return err
		}
	}

	// the reset entry point jumps to itself. there is nothing useful for the
	// guest to run until a program is placed in memory
	//
	// jmp short $-2
	return b.ROM.Patch(memory.Pointer(biosSegment, 0xfff0)-rom.Origin, 0xeb, 0xfe)
}

// write the vector for every installed service into the interrupt vector
// table at the bottom of memory
func (b *BIOS) installVectors() error {
	for intr := range b.handlers {
		err := b.mem.WriteWord(uint32(intr)*4, stubOffset(intr))
		if err != nil {
			return err
		}
		err = b.mem.WriteWord(uint32(intr)*4+2, biosSegment)
		if err != nil {
			return err
		}
	}
	return nil
}

// zero the vectors that were installed. errors during cleanup are logged
// rather than returned
func (b *BIOS) clearVectors() {
	for intr := range b.handlers {
		err := b.mem.WriteWord(uint32(intr)*4, 0)
		if err == nil {
			err = b.mem.WriteWord(uint32(intr)*4+2, 0)
		}
		if err != nil {
			logger.Log(logger.Allow, "bios", err)
		}
	}
}

// Tick records one timer event in the BDA. it is called at 18.2Hz by
// whatever is driving the machine and is safe to call concurrently with an
// in-progress service
func (b *BIOS) Tick() error {
	if b.state != ready {
		return fmt.Errorf("bios: tick: %w", InvalidState)
	}
	b.BDA.IncrementTick()
	return nil
}

// PressKey places a character/scancode pair in the keyboard buffer. it is the
// entry point for keystrokes arriving from the host console
func (b *BIOS) PressKey(char uint8, scan uint8) error {
	if b.state != ready {
		return fmt.Errorf("bios: press key: %w", InvalidState)
	}
	return b.BDA.InsertKey(uint16(scan)<<8 | uint16(char))
}

func (b *BIOS) Status() string {
	switch b.state {
	case ready:
		return b.ROM.Status()
	case uninitialised:
		return "no BIOS session"
	}
	return "BIOS session in transition"
}
