package debugger

import (
	"os"

	"golang.org/x/term"
)

// place the controlling terminal into raw mode so that keystrokes reach the
// machine one byte at a time, without line buffering or local echo. the
// returned function restores the terminal.
//
// a nil restore function and a nil error means stdin is not a terminal, which
// is fine - input is simply forwarded as it arrives
func rawMode() (func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	return func() {
		term.Restore(fd, old)
	}, nil
}
