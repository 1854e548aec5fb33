package hardware_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/test86/hardware"
	"github.com/jetsetilly/test86/test"
	"github.com/jetsetilly/test86/ui"
)

type context struct{}

func (ctx *context) Rand8Bit() uint8 {
	return 0
}

func TestTick(t *testing.T) {
	u := ui.NewUI()
	m := hardware.Create(&context{}, u)

	var out bytes.Buffer
	err := m.BIOS.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer m.BIOS.Cleanup()

	// a tick advances the counter by exactly one and produces a screen
	// snapshot for the GUI
	err = m.Tick()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m.BIOS.BDA.TickCount(), 1)

	select {
	case scr := <-u.SetScreen:
		test.ExpectEquality(t, scr.Cols, 80)
		test.ExpectEquality(t, scr.Rows, 25)
	default:
		t.Errorf("no screen snapshot after tick")
	}
}

func TestKeyEcho(t *testing.T) {
	u := ui.NewUI()
	m := hardware.Create(&context{}, u)

	var out bytes.Buffer
	err := m.BIOS.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer m.BIOS.Cleanup()

	// a keystroke arriving through the UI channel is buffered on the next
	// tick and echoed through the keyboard and video services
	u.UserInput <- ui.FromChar('x')

	err = m.Tick()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, out.String(), "x")

	col, row := m.BIOS.BDA.Cursor(0)
	test.ExpectEquality(t, col, 1)
	test.ExpectEquality(t, row, 0)
}

func TestScancodeOnlyKeys(t *testing.T) {
	u := ui.NewUI()
	m := hardware.Create(&context{}, u)

	var out bytes.Buffer
	err := m.BIOS.Initialise("", strings.NewReader(""), &out)
	test.ExpectSuccess(t, err)
	defer m.BIOS.Cleanup()

	// a key with no character translation (cursor up) is consumed but
	// nothing is printed and the cursor does not move
	u.UserInput <- ui.Input{Char: 0x00, Scan: 0x48}

	err = m.Tick()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, out.String(), "")

	col, row := m.BIOS.BDA.Cursor(0)
	test.ExpectEquality(t, col, 0)
	test.ExpectEquality(t, row, 0)

	// the buffer is empty again. the key was removed, not left to spin
	_, ok := m.BIOS.BDA.PeekKey()
	test.ExpectFailure(t, ok)
}
