package debugger

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/jetsetilly/test86/hardware"
	"github.com/jetsetilly/test86/logger"
	"github.com/jetsetilly/test86/ui"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	ctx context

	guiQuit chan bool
	sig     chan os.Signal
	input   chan input

	u *ui.UI

	machine hardware.Machine

	// while the machine is running, bytes from stdin are forwarded to the
	// keyboard buffer rather than collected into command lines
	running atomic.Bool

	// the BIOS image file given on the command line. used on every reset
	biosImage string

	// printing styles
	styles styles
}

func (m *debugger) reset() {
	m.ctx.Reset()
	m.machine.BIOS.Cleanup()
	m.machine.Reset(true)

	err := m.machine.BIOS.Initialise(m.biosImage, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Println(m.styles.err.Render(err.Error()))
		return
	}

	fmt.Println(m.styles.debugger.Render(
		fmt.Sprintf("machine reset: %s", m.machine.BIOS.Status()),
	))
}

// the main command loop. returns when the debugger is quit or the GUI has
// gone away
func (m *debugger) loop() {
	for {
		select {
		case <-m.guiQuit:
			return
		case <-m.sig:
			return
		case inp := <-m.input:
			if inp.err != nil {
				return
			}
			if m.commands(strings.Fields(inp.s)) {
				return
			}
		}
	}
}

const programName = "test86"

func Launch(guiQuit chan bool, u *ui.UI, args []string) error {
	var biosImage string
	var profile bool
	var echoLog bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.StringVar(&biosImage, "bios", "", "BIOS ROM image to load into the ROM region")
	flgs.BoolVar(&profile, "profile", false, "create CPU profile for emulator")
	flgs.BoolVar(&echoLog, "log", false, "echo log entries to stderr as they arrive")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}

	if len(flgs.Args()) > 0 {
		return fmt.Errorf("too many arguments to debugger")
	}

	if echoLog {
		logger.SetEcho(os.Stderr, false)
	}

	m := &debugger{
		guiQuit: guiQuit,
		sig:     make(chan os.Signal, 1),
		input:   make(chan input, 1),
		u:       u,
		styles:  newStyles(),
	}
	m.ctx.Reset()
	m.biosImage = biosImage
	m.machine = hardware.Create(&m.ctx, u)

	signal.Notify(m.sig, syscall.SIGINT)

	go func() {
		r := bufio.NewReader(os.Stdin)
		b := make([]byte, 256)
		for {
			n, err := r.Read(b)

			if m.running.Load() {
				// the terminal is in raw mode while the machine is running.
				// forward each byte as a keystroke, reserving ctrl-] as the
				// way back to the command loop
				for _, c := range b[:n] {
					if c == 0x1d {
						m.sig <- syscall.SIGINT
					} else {
						m.forwardKey(c)
					}
				}
				if err != nil {
					m.sig <- syscall.SIGINT
				}
				continue
			}

			select {
			case m.input <- input{
				s:   strings.TrimSpace(string(b[:n])),
				err: err,
			}:
			default:
			}
		}
	}()

	m.reset()

	if profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err)
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	m.loop()
	m.machine.BIOS.Cleanup()

	return nil
}

// translate a raw terminal byte and place it in the keyboard buffer
func (m *debugger) forwardKey(c uint8) {
	// the DEL byte sent by most terminals for the backspace key
	if c == 0x7f {
		c = 0x08
	}

	select {
	case m.u.UserInput <- ui.FromChar(c):
	default:
	}
}
