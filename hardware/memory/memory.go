package memory

import (
	"fmt"

	"github.com/jetsetilly/test86/hardware/memory/ram"
)

type Memory struct {
	// conventional RAM, including the interrupt vector table at the bottom
	RAM *ram.RAM

	// CGA text video memory
	VRAM *ram.RAM

	// the BDA and ROM areas are owned by the BIOS and are attached only for
	// the lifetime of a BIOS session. a nil area means the address range is
	// unmapped and accesses fail
	BDA Area
	ROM Area

	Last Area
}

type Context interface {
	ram.Context
}

// sizes of the RAM backed areas
const (
	conventionalSize = 0xa0000
	vramSize         = 0x4000
)

// origins of the fixed areas. the BDA bounds belong to the bda package but
// they are repeated here as part of the address map
const (
	OriginVRAM = 0xb8000
	OriginBDA  = 0x00400
	MemtopBDA  = 0x00532
	OriginROM  = 0xe0000
)

func Create(ctx Context) (*Memory, AttachBIOS) {
	mem := &Memory{
		RAM:  ram.Create(ctx, "ram", conventionalSize),
		VRAM: ram.Create(ctx, "vram", vramSize),
	}
	return mem, func(bda Area, rom Area) {
		mem.BDA = bda
		mem.ROM = rom
	}
}

func (mem *Memory) Reset(random bool) {
	mem.RAM.Reset(random)
	mem.VRAM.Reset(false)
}

// AttachBIOS is returned by the Create() function and is called by the BIOS
// to place the BDA and ROM areas into the address space. calling it with nil
// areas unmaps them again
type AttachBIOS func(bda Area, rom Area)

type Area interface {
	// read and write both take an index value. this is an address in the area
	// but with the area origin removed. in other words, the area doesn't need
	// to know about it's location in memory, only the relative placement of
	// addresses within the area
	Read(idx uint32) (uint8, error)
	Write(idx uint32, data uint8) error
	Label() string
}

// Pointer converts a real mode segment:offset pair to a physical address.
// addresses wrap at the top of the 1MB address space
func Pointer(segment uint16, offset uint16) uint32 {
	return (uint32(segment)*0x10 + uint32(offset)) & 0xfffff
}

// MapAddress returns the memory "area" and index into the area corresponding
// to the physical address.
//
// It is possible for a nil Area to be returned. In which case, the index
// value will be zero. In particular the BDA and ROM ranges are unmapped
// whenever no BIOS session is active.
func (mem *Memory) MapAddress(address uint32, read bool) (uint32, Area) {
	// map of the real mode address space:
	//
	// 00000 to 003FF	interrupt vector table
	// 00400 to 00532	BIOS data area
	// 00533 to 9FFFF	conventional RAM (640k)
	// A0000 to B7FFF	EGA/VGA graphics memory. not emulated
	// B8000 to BFFFF	CGA text memory (16k, mirrored)
	// C0000 to DFFFF	adapter ROM space. not emulated
	// E0000 to FFFFF	BIOS ROM region
	//
	// the interrupt vector table is plain RAM. guest software is free to
	// hook vectors by writing to it directly

	address &= 0xfffff

	if address < OriginBDA {
		// interrupt vector table
		return address, mem.RAM
	}

	if address <= MemtopBDA {
		// BDA. unmapped unless a BIOS session is active
		if mem.BDA == nil {
			return 0, nil
		}
		return address - OriginBDA, mem.BDA
	}

	if address < conventionalSize {
		// conventional RAM
		return address, mem.RAM
	}

	if address >= OriginVRAM && address < OriginVRAM+0x8000 {
		// CGA text memory. the 16k is mirrored through the 32k window
		return (address - OriginVRAM) % vramSize, mem.VRAM
	}

	if address >= OriginROM {
		// ROM region. unmapped unless a BIOS session is active
		if mem.ROM == nil {
			return 0, nil
		}
		return address - OriginROM, mem.ROM
	}

	return 0, nil
}

func (mem *Memory) Read(address uint32) (uint8, error) {
	idx, area := mem.MapAddress(address, true)
	if area == nil {
		return 0, fmt.Errorf("read unmapped address: %05x", address)
	}
	v, err := area.Read(idx)
	if err != nil {
		return 0, fmt.Errorf("read %05x: %w", address, err)
	}
	return v, nil
}

func (mem *Memory) Write(address uint32, data uint8) error {
	idx, area := mem.MapAddress(address, false)
	if area == nil {
		return fmt.Errorf("write unmapped address: %05x", address)
	}
	mem.Last = area
	err := area.Write(idx, data)
	if err != nil {
		return fmt.Errorf("write %05x: %w", address, err)
	}
	return nil
}

// ReadWord reads a little-endian word
func (mem *Memory) ReadWord(address uint32) (uint16, error) {
	lo, err := mem.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord writes a little-endian word
func (mem *Memory) WriteWord(address uint32, data uint16) error {
	err := mem.Write(address, uint8(data))
	if err != nil {
		return err
	}
	return mem.Write(address+1, uint8(data>>8))
}
