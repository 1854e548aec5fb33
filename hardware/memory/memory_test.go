package memory_test

import (
	"testing"

	"github.com/jetsetilly/test86/hardware/memory"
	"github.com/jetsetilly/test86/hardware/memory/bda"
	"github.com/jetsetilly/test86/hardware/memory/rom"
	"github.com/jetsetilly/test86/test"
)

type context struct{}

func (ctx *context) Rand8Bit() uint8 {
	return 0
}

func TestPointer(t *testing.T) {
	test.ExpectEquality(t, memory.Pointer(0x0040, 0x0000), 0x00400)
	test.ExpectEquality(t, memory.Pointer(0xf000, 0xfff0), 0xffff0)

	// addresses wrap at the top of the 1MB address space
	test.ExpectEquality(t, memory.Pointer(0xffff, 0x0010), 0x00000)
}

func TestUnattachedBIOS(t *testing.T) {
	mem, _ := memory.Create(&context{})

	// the interrupt vector table and conventional RAM are always mapped
	test.ExpectSuccess(t, mem.Write(0x00000, 0xff))
	test.ExpectSuccess(t, mem.Write(0x90000, 0xff))

	// the BDA and ROM ranges are unmapped without a BIOS session
	_, err := mem.Read(bda.Origin)
	test.ExpectFailure(t, err)
	_, err = mem.Read(rom.Origin)
	test.ExpectFailure(t, err)
	err = mem.Write(bda.Origin, 0xff)
	test.ExpectFailure(t, err)
}

func TestAttachedBIOS(t *testing.T) {
	mem, attach := memory.Create(&context{})

	b := bda.Create()
	r, err := rom.Create("")
	test.ExpectSuccess(t, err)
	attach(b, r)

	// reads of the BDA range hit the BDA record
	v, err := mem.Read(bda.Origin + bda.VideoMode)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x03)

	// guest writes to the ROM region are discarded
	test.ExpectSuccess(t, mem.Write(rom.Origin, 0xff))
	v, err = mem.Read(rom.Origin)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x00)

	// detaching unmaps again
	attach(nil, nil)
	_, err = mem.Read(bda.Origin)
	test.ExpectFailure(t, err)
}

func TestVRAMMirror(t *testing.T) {
	mem, _ := memory.Create(&context{})

	test.ExpectSuccess(t, mem.Write(0xb8000, 0x41))

	// the 16k of text memory is mirrored through the 32k window
	v, err := mem.Read(0xbc000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x41)
}

func TestWords(t *testing.T) {
	mem, _ := memory.Create(&context{})

	test.ExpectSuccess(t, mem.WriteWord(0x1000, 0x1234))

	v, err := mem.Read(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x34)
	v, err = mem.Read(0x1001)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x12)

	w, err := mem.ReadWord(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, 0x1234)
}
