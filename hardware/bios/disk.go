package bios

import (
	"github.com/jetsetilly/test86/hardware/cpu"
	"github.com/jetsetilly/test86/logger"
)

// disk status codes recorded in the BDA
const (
	diskStatusOK      = 0x00
	diskStatusBadCmd  = 0x01
	diskStatusTimeout = 0x80
)

// INT 13: disk services. the BIOS layer only manages the status bytes in the
// BDA - sector level I/O belongs to the disk controller emulation, which is
// not part of this layer. with no controller attached every transfer request
// fails with a timeout, which is what a real machine with no drives does
func (b *BIOS) int13(regs *cpu.Registers) error {
	// bit 7 of DL selects fixed disk over diskette. the two device classes
	// have separate status bytes
	fixed := regs.DL()&0x80 == 0x80

	status := func(v uint8) {
		if fixed {
			b.BDA.SetDiskStatus(v)
		} else {
			b.BDA.SetDisketteStatus(v)
		}
		regs.SetAH(v)
		regs.SetCarry(v != diskStatusOK)
	}

	switch regs.AH() {
	case 0x00:
		// reset disk system
		status(diskStatusOK)

	case 0x01:
		// read status of last operation. the status byte is cleared by the
		// read
		var v uint8
		if fixed {
			v = b.BDA.DiskStatus()
			b.BDA.SetDiskStatus(diskStatusOK)
		} else {
			v = b.BDA.DisketteStatus()
			b.BDA.SetDisketteStatus(diskStatusOK)
		}
		regs.SetAL(v)
		regs.SetAH(diskStatusOK)
		regs.SetCarry(false)

	case 0x02, 0x03, 0x04:
		// read/write/verify sectors. no controller attached
		logger.Logf(logger.Allow, "disk", "transfer request (service %02x) with no disk attached", regs.AH())
		status(diskStatusTimeout)

	default:
		status(diskStatusBadCmd)
	}

	return nil
}
