package bios

import (
	"fmt"

	"github.com/jetsetilly/test86/hardware/cpu"
)

// INT 16: keyboard services, working over the ring buffer in the BDA
func (b *BIOS) int16(regs *cpu.Registers) error {
	switch regs.AH() {
	case 0x00:
		// read key. the real service blocks until a key arrives, which is
		// meaningless here - instead the zero flag reports an empty buffer
		// and the vector stub (or whatever else issued the interrupt)
		// retries. the flag is surplus to the real register contract for
		// this service so nothing is lost
		key, ok := b.BDA.RemoveKey()
		if !ok {
			regs.SetZero(true)
			return nil
		}
		regs.SetZero(false)
		regs.AX = key

	case 0x01:
		// peek key. zero flag set means the buffer is empty
		key, ok := b.BDA.PeekKey()
		if !ok {
			regs.SetZero(true)
			return nil
		}
		regs.SetZero(false)
		regs.AX = key

	case 0x02:
		// shift flags
		regs.SetAL(uint8(b.BDA.ShiftFlags()))

	default:
		return fmt.Errorf("int 16: unhandled keyboard service %02x", regs.AH())
	}

	return nil
}
