// Package cpu defines the real-mode register file shared between the BIOS
// services and whatever is driving the machine. The instruction emulation
// itself lives elsewhere - the BIOS layer only ever sees a Registers value
// alongside an interrupt number.
package cpu

import (
	"fmt"
	"strings"
)

type Registers struct {
	AX uint16
	BX uint16
	CX uint16
	DX uint16

	SI uint16
	DI uint16
	BP uint16
	SP uint16
	IP uint16

	CS uint16
	DS uint16
	ES uint16
	SS uint16

	Flags uint16
}

// flag bits in the FLAGS register
const (
	FlagCarry     = 0x0001
	FlagZero      = 0x0040
	FlagSign      = 0x0080
	FlagInterrupt = 0x0200
)

func hi(v uint16) uint8 {
	return uint8(v >> 8)
}

func lo(v uint16) uint8 {
	return uint8(v)
}

func setHi(v *uint16, d uint8) {
	*v = (*v & 0x00ff) | (uint16(d) << 8)
}

func setLo(v *uint16, d uint8) {
	*v = (*v & 0xff00) | uint16(d)
}

func (r *Registers) AH() uint8      { return hi(r.AX) }
func (r *Registers) AL() uint8      { return lo(r.AX) }
func (r *Registers) BH() uint8      { return hi(r.BX) }
func (r *Registers) BL() uint8      { return lo(r.BX) }
func (r *Registers) CH() uint8      { return hi(r.CX) }
func (r *Registers) CL() uint8      { return lo(r.CX) }
func (r *Registers) DH() uint8      { return hi(r.DX) }
func (r *Registers) DL() uint8      { return lo(r.DX) }
func (r *Registers) SetAH(d uint8)  { setHi(&r.AX, d) }
func (r *Registers) SetAL(d uint8)  { setLo(&r.AX, d) }
func (r *Registers) SetBH(d uint8)  { setHi(&r.BX, d) }
func (r *Registers) SetBL(d uint8)  { setLo(&r.BX, d) }
func (r *Registers) SetCH(d uint8)  { setHi(&r.CX, d) }
func (r *Registers) SetCL(d uint8)  { setLo(&r.CX, d) }
func (r *Registers) SetDH(d uint8)  { setHi(&r.DX, d) }
func (r *Registers) SetDL(d uint8)  { setLo(&r.DX, d) }

func (r *Registers) Carry() bool {
	return r.Flags&FlagCarry == FlagCarry
}

func (r *Registers) SetCarry(on bool) {
	if on {
		r.Flags |= FlagCarry
	} else {
		r.Flags &^= FlagCarry
	}
}

func (r *Registers) Zero() bool {
	return r.Flags&FlagZero == FlagZero
}

func (r *Registers) SetZero(on bool) {
	if on {
		r.Flags |= FlagZero
	} else {
		r.Flags &^= FlagZero
	}
}

func (r *Registers) Reset() {
	*r = Registers{}

	// real mode reset values. CS:IP points at the top of the ROM region and
	// interrupts are enabled
	r.CS = 0xf000
	r.IP = 0xfff0
	r.Flags = FlagInterrupt
}

func (r *Registers) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("AX=%04x BX=%04x CX=%04x DX=%04x\n", r.AX, r.BX, r.CX, r.DX))
	s.WriteString(fmt.Sprintf("SI=%04x DI=%04x BP=%04x SP=%04x IP=%04x\n", r.SI, r.DI, r.BP, r.SP, r.IP))
	s.WriteString(fmt.Sprintf("CS=%04x DS=%04x ES=%04x SS=%04x FL=%04x", r.CS, r.DS, r.ES, r.SS, r.Flags))
	return s.String()
}
