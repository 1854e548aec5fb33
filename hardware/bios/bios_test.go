package bios_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/test86/hardware/bios"
	"github.com/jetsetilly/test86/hardware/cpu"
	"github.com/jetsetilly/test86/hardware/memory"
	"github.com/jetsetilly/test86/hardware/memory/bda"
	"github.com/jetsetilly/test86/hardware/memory/rom"
	"github.com/jetsetilly/test86/test"
)

type context struct{}

func (ctx *context) Rand8Bit() uint8 {
	return 0
}

func create() (*memory.Memory, *bios.BIOS) {
	mem, attach := memory.Create(&context{})
	return mem, bios.Create(mem, attach)
}

func TestLifecycle(t *testing.T) {
	mem, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)

	// a second initialise fails and the first session is untouched
	b.BDA.IncrementTick()
	err = b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, errors.Is(err, bios.AlreadyInitialised))
	test.ExpectEquality(t, b.BDA.TickCount(), 1)

	b.Cleanup()

	// cleanup releases everything: the BDA range is unmapped again and a
	// second cleanup is harmless
	_, err = mem.Read(bda.Origin)
	test.ExpectFailure(t, err)
	b.Cleanup()

	// a fresh session starts with a zeroed BDA
	err = b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b.BDA.TickCount(), 0)
	b.Cleanup()
}

func TestOversizeImage(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "toobig.bin")
	err := os.WriteFile(pth, make([]byte, rom.Size+1), 0644)
	test.ExpectSuccess(t, err)

	mem, b := create()
	var out bytes.Buffer

	err = b.Initialise(pth, strings.NewReader(""), &out)
	test.ExpectFailure(t, err)

	// the failed initialise must leave no partial mapping behind
	_, err = mem.Read(rom.Origin)
	test.ExpectFailure(t, err)

	// and a subsequent initialise succeeds
	err = b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	b.Cleanup()
}

func TestServiceOutsideSession(t *testing.T) {
	_, b := create()

	var regs cpu.Registers
	err := b.Service(0x10, &regs)
	test.ExpectSuccess(t, errors.Is(err, bios.InvalidState))

	err = b.Tick()
	test.ExpectSuccess(t, errors.Is(err, bios.InvalidState))
}

func TestUnhandledInterrupt(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	before := b.BDA.String()

	var regs cpu.Registers
	err = b.Service(0x21, &regs)
	test.ExpectSuccess(t, errors.Is(err, bios.UnhandledInterrupt))

	// an unhandled interrupt must not have touched the BDA
	test.ExpectEquality(t, b.BDA.String(), before)
}

func TestVectors(t *testing.T) {
	mem, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)

	// every installed service has a vector pointing into the BIOS segment
	// and an IRET stub at the vector target
	for _, intr := range b.Vectors() {
		off, err := mem.ReadWord(uint32(intr) * 4)
		test.ExpectSuccess(t, err)
		seg, err := mem.ReadWord(uint32(intr)*4 + 2)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, seg, 0xf000)

		v, err := mem.Read(memory.Pointer(seg, off))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, 0xcf)
	}

	// cleanup clears the vectors
	b.Cleanup()
	w, err := mem.ReadWord(0x10 * 4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, 0x0000)
}

func TestClockServices(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	// one timer event is exactly one tick
	test.ExpectSuccess(t, b.Tick())
	test.ExpectSuccess(t, b.Tick())
	test.ExpectSuccess(t, b.Tick())

	var regs cpu.Registers
	regs.SetAH(0x00)
	test.ExpectSuccess(t, b.Service(0x1a, &regs))
	test.ExpectEquality(t, regs.CX, 0x0000)
	test.ExpectEquality(t, regs.DX, 0x0003)
	test.ExpectEquality(t, regs.AL(), 0x00)

	// set the counter then read it back
	regs = cpu.Registers{}
	regs.SetAH(0x01)
	regs.CX = 0x0018
	regs.DX = 0x00af
	test.ExpectSuccess(t, b.Service(0x1a, &regs))
	test.ExpectEquality(t, b.BDA.TickCount(), 0x001800af)

	// the timer interrupt advances the counter too
	regs = cpu.Registers{}
	test.ExpectSuccess(t, b.Service(0x08, &regs))
	test.ExpectEquality(t, b.BDA.TickCount(), 0)

	// that last tick was the day boundary
	regs = cpu.Registers{}
	regs.SetAH(0x00)
	test.ExpectSuccess(t, b.Service(0x1a, &regs))
	test.ExpectEquality(t, regs.AL(), 0x01)
}

func TestKeyboardServices(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	// empty buffer reports through the zero flag
	var regs cpu.Registers
	regs.SetAH(0x01)
	test.ExpectSuccess(t, b.Service(0x16, &regs))
	test.ExpectSuccess(t, regs.Zero())

	test.ExpectSuccess(t, b.PressKey('h', 0x23))

	regs = cpu.Registers{}
	regs.SetAH(0x00)
	test.ExpectSuccess(t, b.Service(0x16, &regs))
	test.ExpectFailure(t, regs.Zero())
	test.ExpectEquality(t, regs.AL(), 'h')
	test.ExpectEquality(t, regs.AH(), 0x23)
}

func TestTeletype(t *testing.T) {
	mem, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	for _, c := range []byte("hi") {
		var regs cpu.Registers
		regs.SetAH(0x0e)
		regs.SetAL(c)
		test.ExpectSuccess(t, b.Service(0x10, &regs))
	}

	// characters reach the console handle, the video memory and the cursor
	test.ExpectEquality(t, out.String(), "hi")

	v, err := mem.Read(0xb8000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 'h')
	v, err = mem.Read(0xb8002)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 'i')

	col, row := b.BDA.Cursor(0)
	test.ExpectEquality(t, col, 2)
	test.ExpectEquality(t, row, 0)
}

func TestScrollBeyondTextMemory(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	// the text memory holds four pages but the BDA can name eight
	var regs cpu.Registers
	regs.SetAH(0x05)
	regs.SetAL(4)
	test.ExpectSuccess(t, b.Service(0x10, &regs))

	// blanking a window on a page with no backing memory must report the
	// failure rather than silently do nothing
	regs = cpu.Registers{}
	regs.SetAH(0x06)
	regs.SetBH(0x07)
	regs.SetDH(24)
	regs.SetDL(79)
	err = b.Service(0x10, &regs)
	test.ExpectFailure(t, err)
}

func TestEquipmentServices(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	var regs cpu.Registers
	test.ExpectSuccess(t, b.Service(0x11, &regs))
	test.ExpectEquality(t, regs.AX, b.BDA.EquipmentList())

	regs = cpu.Registers{}
	test.ExpectSuccess(t, b.Service(0x12, &regs))
	test.ExpectEquality(t, regs.AX, 640)
}

func TestDiskServices(t *testing.T) {
	_, b := create()
	var out bytes.Buffer

	err := b.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer b.Cleanup()

	// a transfer request with no disk attached fails with a timeout which is
	// recorded in the BDA
	var regs cpu.Registers
	regs.SetAH(0x02)
	test.ExpectSuccess(t, b.Service(0x13, &regs))
	test.ExpectSuccess(t, regs.Carry())
	test.ExpectEquality(t, regs.AH(), 0x80)
	test.ExpectEquality(t, b.BDA.DisketteStatus(), 0x80)

	// read status returns and clears the status byte
	regs = cpu.Registers{}
	regs.SetAH(0x01)
	test.ExpectSuccess(t, b.Service(0x13, &regs))
	test.ExpectFailure(t, regs.Carry())
	test.ExpectEquality(t, regs.AL(), 0x80)
	test.ExpectEquality(t, b.BDA.DisketteStatus(), 0x00)

	// reset clears everything
	regs = cpu.Registers{}
	regs.SetAH(0x00)
	test.ExpectSuccess(t, b.Service(0x13, &regs))
	test.ExpectFailure(t, regs.Carry())
}
