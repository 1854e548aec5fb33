package bios

import (
	"fmt"
	"time"

	"github.com/jetsetilly/test86/hardware/cpu"
)

// INT 08: the hardware timer interrupt. the tick counter in the BDA advances
// and the user timer hook is chained, exactly as the real handler does
func (b *BIOS) int08(regs *cpu.Registers) error {
	b.BDA.IncrementTick()
	return b.int1c(regs)
}

// INT 1C: the user timer hook. nothing to do - guest software that wants a
// per-tick callback replaces the vector in the IVT
func (b *BIOS) int1c(_ *cpu.Registers) error {
	return nil
}

func toBCD(v int) uint8 {
	return uint8(v/10)<<4 | uint8(v%10)
}

// INT 1A: clock services. tick counter services work on the BDA; the RTC
// services read the host clock
func (b *BIOS) int1a(regs *cpu.Registers) error {
	switch regs.AH() {
	case 0x00:
		// read tick counter. AL reports whether midnight has passed since
		// the last read
		ticks, midnight := b.BDA.ReadTicks()
		regs.CX = uint16(ticks >> 16)
		regs.DX = uint16(ticks)
		if midnight {
			regs.SetAL(1)
		} else {
			regs.SetAL(0)
		}

	case 0x01:
		// set tick counter
		b.BDA.SetTicks(uint32(regs.CX)<<16 | uint32(regs.DX))

	case 0x02:
		// read real time clock
		now := time.Now()
		regs.SetCH(toBCD(now.Hour()))
		regs.SetCL(toBCD(now.Minute()))
		regs.SetDH(toBCD(now.Second()))
		regs.SetDL(0)
		regs.SetCarry(false)

	case 0x04:
		// read real time clock date
		now := time.Now()
		regs.SetCH(toBCD(now.Year() / 100))
		regs.SetCL(toBCD(now.Year() % 100))
		regs.SetDH(toBCD(int(now.Month())))
		regs.SetDL(toBCD(now.Day()))
		regs.SetCarry(false)

	default:
		return fmt.Errorf("int 1a: unhandled clock service %02x", regs.AH())
	}

	return nil
}
