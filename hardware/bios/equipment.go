package bios

import (
	"fmt"

	"github.com/jetsetilly/test86/hardware/cpu"
)

// INT 11: equipment check
func (b *BIOS) int11(regs *cpu.Registers) error {
	regs.AX = b.BDA.EquipmentList()
	return nil
}

// INT 12: conventional memory size in kilobytes
func (b *BIOS) int12(regs *cpu.Registers) error {
	regs.AX = b.BDA.MemorySize()
	return nil
}

// serial line status bits returned in AH
const (
	serialTimeout = 0x80
)

// INT 14: serial port services. the port tables in the BDA are maintained but
// there is no UART emulation behind them, so every operation reports a
// timeout - the same result as addressing a port with no hardware fitted
func (b *BIOS) int14(regs *cpu.Registers) error {
	switch regs.AH() {
	case 0x00, 0x03:
		// initialise / status
		regs.SetAH(serialTimeout)
		regs.SetAL(0x00)
	default:
		return fmt.Errorf("int 14: unhandled serial service %02x", regs.AH())
	}
	return nil
}

// printer status bits returned in AH
const (
	printerTimeout  = 0x01
	printerSelected = 0x10
)

// INT 17: parallel port services. as with the serial services there is no
// device behind the BDA port table. output requests time out
func (b *BIOS) int17(regs *cpu.Registers) error {
	switch regs.AH() {
	case 0x00:
		// print character
		regs.SetAH(printerTimeout)
	case 0x01, 0x02:
		// initialise / status
		regs.SetAH(printerSelected)
	default:
		return fmt.Errorf("int 17: unhandled printer service %02x", regs.AH())
	}
	return nil
}
