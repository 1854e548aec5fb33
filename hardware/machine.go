package hardware

import (
	"github.com/jetsetilly/test86/hardware/bios"
	"github.com/jetsetilly/test86/hardware/cpu"
	"github.com/jetsetilly/test86/hardware/memory"
	"github.com/jetsetilly/test86/ui"
)

type Machine struct {
	Regs *cpu.Registers
	Mem  *memory.Memory
	BIOS *bios.BIOS

	u   *ui.UI
	lim *limiter
}

type Context interface {
	memory.Context
}

func Create(ctx Context, u *ui.UI) Machine {
	var m Machine
	m.Regs = &cpu.Registers{}

	mem, attach := memory.Create(ctx)
	m.Mem = mem
	m.BIOS = bios.Create(mem, attach)

	m.u = u
	m.lim = newLimiter()

	m.Reset(true)
	return m
}

func (m *Machine) Reset(random bool) {
	m.Mem.Reset(random)
	m.Regs.Reset()
}

// Tick processes one timer event: the BDA tick counter advances, pending host
// keystrokes are moved into the keyboard buffer and the text page snapshot is
// sent to the GUI
func (m *Machine) Tick() error {
	err := m.BIOS.Tick()
	if err != nil {
		return err
	}

	m.handleInput()

	err = m.echoKeys()
	if err != nil {
		return err
	}

	m.renderScreen()
	return nil
}

// Run ticks the machine at the timer interrupt rate until the stop channel
// says otherwise. the hook function is called after every tick
func (m *Machine) Run(stop chan bool, hook func() error) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		m.lim.Wait()

		err := m.Tick()
		if err != nil {
			return err
		}

		err = hook()
		if err != nil {
			return err
		}
	}
}

// move buffered keystrokes through the keyboard and video services. with the
// instruction emulation being driven from elsewhere this is what keeps the
// dispatch path honest when the machine is run on its own
func (m *Machine) echoKeys() error {
	for {
		var regs cpu.Registers

		regs.SetAH(0x01)
		err := m.BIOS.Service(0x16, &regs)
		if err != nil {
			return err
		}
		if regs.Zero() {
			return nil
		}

		regs.SetAH(0x00)
		err = m.BIOS.Service(0x16, &regs)
		if err != nil {
			return err
		}
		char := regs.AL()

		// keys with no character translation (arrows and the like) have
		// nothing for the teletype service to print
		if char == 0x00 {
			continue
		}

		regs = cpu.Registers{}
		regs.SetAH(0x0e)
		regs.SetAL(char)
		err = m.BIOS.Service(0x10, &regs)
		if err != nil {
			return err
		}

		// carriage return from the terminal needs the matching line feed
		if char == 0x0d {
			regs = cpu.Registers{}
			regs.SetAH(0x0e)
			regs.SetAL(0x0a)
			err = m.BIOS.Service(0x10, &regs)
			if err != nil {
				return err
			}
		}
	}
}

// snapshot the active text page and send it to the GUI. the send never blocks
func (m *Machine) renderScreen() {
	cols := int(m.BIOS.BDA.Columns())
	rows := int(m.BIOS.BDA.Rows())
	page := m.BIOS.BDA.ActivePage()

	scr := &ui.Screen{
		Cols:  cols,
		Rows:  rows,
		Chars: make([]uint8, cols*rows),
		Attrs: make([]uint8, cols*rows),
	}
	scr.CursorCol, scr.CursorRow = m.BIOS.BDA.Cursor(page)

	base := uint32(page) * 0x1000
	for i := 0; i < cols*rows; i++ {
		ch, err := m.Mem.VRAM.Read(base + uint32(i)*2)
		if err != nil {
			return
		}
		at, err := m.Mem.VRAM.Read(base + uint32(i)*2 + 1)
		if err != nil {
			return
		}
		scr.Chars[i] = ch
		scr.Attrs[i] = at
	}

	select {
	case m.u.SetScreen <- scr:
	default:
	}
}
