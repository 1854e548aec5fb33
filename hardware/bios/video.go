package bios

import (
	"fmt"

	"github.com/jetsetilly/test86/hardware/cpu"
	"github.com/jetsetilly/test86/logger"
)

// size of one text video page, matching the video page size field given to
// the BDA on reset
const pageSize = 0x1000

// the attribute used when scrolling reveals a blank line: grey on black
const blankAttr = 0x07

// INT 10: video services. cursor and mode state live in the BDA, character
// data in the text video memory. teletype output additionally echoes to the
// console output handle
func (b *BIOS) int10(regs *cpu.Registers) error {
	switch regs.AH() {
	case 0x00:
		// set video mode. bit 7 asks for video memory to be preserved
		mode := regs.AL() & 0x7f
		b.BDA.SetVideoMode(mode)
		for page := uint8(0); page < 8; page++ {
			b.BDA.SetCursor(page, 0, 0)
		}
		b.BDA.SetActivePage(0)
		if regs.AL()&0x80 == 0x00 {
			b.mem.VRAM.Fill(0, b.mem.VRAM.Size(), 0x20, blankAttr)
		}
		if mode != 0x03 {
			// only 80x25 colour text is emulated but a mode change is not
			// worth failing the guest over
			logger.Logf(logger.Allow, "video", "mode %02x requested but only mode 03 is emulated", mode)
		}

	case 0x02:
		// set cursor position
		b.BDA.SetCursor(regs.BH(), regs.DL(), regs.DH())

	case 0x03:
		// get cursor position and shape
		col, row := b.BDA.Cursor(regs.BH())
		regs.SetDL(col)
		regs.SetDH(row)
		start, end := b.BDA.CursorShape()
		regs.SetCH(start)
		regs.SetCL(end)

	case 0x05:
		// select active page
		b.BDA.SetActivePage(regs.AL())

	case 0x06:
		// scroll window up. zero lines means blank the window
		return b.scrollUp(b.BDA.ActivePage(), int(regs.AL()), regs.BH(),
			int(regs.CH()), int(regs.CL()), int(regs.DH()), int(regs.DL()))

	case 0x0e:
		// teletype output
		return b.teletype(regs.AL())

	case 0x0f:
		// get current video mode
		regs.SetAL(b.BDA.VideoMode())
		regs.SetAH(uint8(b.BDA.Columns()))
		regs.SetBH(b.BDA.ActivePage())

	default:
		return fmt.Errorf("int 10: unhandled video service %02x", regs.AH())
	}

	return nil
}

// write one character at the cursor of the active page, advancing the cursor
// and scrolling as required. CR, LF, BS and BEL act as movement/control
// rather than printable characters, as they do for the real teletype service
func (b *BIOS) teletype(char uint8) error {
	page := b.BDA.ActivePage()
	col, row := b.BDA.Cursor(page)
	cols := uint8(b.BDA.Columns())
	rows := b.BDA.Rows()

	echo := true

	switch char {
	case 0x07:
		// BEL. nothing on screen but the console gets the byte
	case 0x08:
		// BS
		if col > 0 {
			col--
		}
	case 0x0a:
		// LF
		row++
	case 0x0d:
		// CR
		col = 0
	default:
		idx := uint32(page)*pageSize + (uint32(row)*uint32(cols)+uint32(col))*2
		err := b.mem.VRAM.Write(idx, char)
		if err != nil {
			return fmt.Errorf("int 10: %w", err)
		}
		col++
		if col >= cols {
			col = 0
			row++
		}
		echo = char >= 0x20 && char <= 0x7e
	}

	if row >= rows {
		row = rows - 1
		err := b.scrollUp(page, 1, blankAttr, 0, 0, int(rows)-1, int(cols)-1)
		if err != nil {
			return err
		}
	}

	b.BDA.SetCursor(page, col, row)

	if b.consoleOutput != nil && (echo || char == 0x07 || char == 0x08 || char == 0x0a || char == 0x0d) {
		_, err := b.consoleOutput.Write([]byte{char})
		if err != nil {
			// the console echo is a host side convenience. a lost byte is
			// not a guest visible failure
			logger.Log(logger.Allow, "video", err)
		}
	}

	return nil
}

// scroll the window bounded by (top,left) and (bottom,right) up by the number
// of lines. revealed lines are blanked with the attribute. zero lines blanks
// the entire window
func (b *BIOS) scrollUp(page uint8, lines int, attr uint8, top int, left int, bottom int, right int) error {
	cols := int(b.BDA.Columns())
	rows := int(b.BDA.Rows())

	bottom = min(bottom, rows-1)
	right = min(right, cols-1)
	if top > bottom || left > right {
		return nil
	}
	if lines <= 0 || lines > bottom-top {
		lines = bottom - top + 1
	}

	base := uint32(page) * pageSize

	cell := func(row int, col int) uint32 {
		return base + uint32(row*cols+col)*2
	}

	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			ch := uint8(0x20)
			at := attr

			if row+lines <= bottom {
				var err error
				ch, err = b.mem.VRAM.Read(cell(row+lines, col))
				if err != nil {
					return fmt.Errorf("int 10: %w", err)
				}
				at, err = b.mem.VRAM.Read(cell(row+lines, col) + 1)
				if err != nil {
					return fmt.Errorf("int 10: %w", err)
				}
			}

			err := b.mem.VRAM.Write(cell(row, col), ch)
			if err != nil {
				return fmt.Errorf("int 10: %w", err)
			}
			err = b.mem.VRAM.Write(cell(row, col)+1, at)
			if err != nil {
				return fmt.Errorf("int 10: %w", err)
			}
		}
	}

	return nil
}
