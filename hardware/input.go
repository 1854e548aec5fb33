package hardware

import (
	"github.com/jetsetilly/test86/logger"
)

func (m *Machine) handleInput() {
	var drained bool
	for !drained {
		select {
		default:
			drained = true
		case inp := <-m.u.UserInput:
			err := m.BIOS.PressKey(inp.Char, inp.Scan)
			if err != nil {
				// a full buffer means the key is dropped. that is all a real
				// keyboard controller can do too, although it beeps about it
				logger.Log(logger.Allow, "keyboard", err)
			}
		}
	}
}
