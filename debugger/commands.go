package debugger

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/test86/hardware/memory"
	"github.com/jetsetilly/test86/logger"
	"github.com/jetsetilly/test86/ui"
)

// returns true if debugger is to quit
func (m *debugger) commands(cmd []string) bool {
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "R", "RUN":
		return m.run()

	case "T", "TICK":
		n := 1
		if len(cmd) == 2 {
			var err error
			n, err = strconv.Atoi(cmd[1])
			if err != nil {
				fmt.Println(m.styles.err.Render(
					fmt.Sprintf("cannot use TICK %s", cmd[1]),
				))
				break // switch
			}
		}
		for i := 0; i < n; i++ {
			err := m.machine.Tick()
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // for loop
			}
		}
		fmt.Println(m.styles.mem.Render(
			fmt.Sprintf("tick counter: %d", m.machine.BIOS.BDA.TickCount()),
		))

	case "INT":
		if len(cmd) < 2 {
			fmt.Println(m.styles.err.Render(
				"INT requires an interrupt number",
			))
			break // switch
		}
		m.interrupt(cmd[1:])

	case "REGS":
		fmt.Println(m.styles.regs.Render(
			m.machine.Regs.String(),
		))

	case "BDA":
		if m.machine.BIOS.BDA == nil {
			fmt.Println(m.styles.err.Render("no BIOS session"))
			break // switch
		}
		fmt.Println(m.styles.mem.Render(
			m.machine.BIOS.BDA.String(),
		))

	case "ROM":
		fmt.Println(m.styles.mem.Render(
			m.machine.BIOS.Status(),
		))

	case "MEM":
		if len(cmd) < 2 {
			fmt.Println(m.styles.err.Render(
				"MEM requires an address (physical or segment:offset)",
			))
			break // switch
		}
		m.peek(cmd[1])

	case "KEY":
		if len(cmd) < 2 {
			fmt.Println(m.styles.err.Render(
				"KEY requires the characters to type",
			))
			break // switch
		}
		for _, c := range []byte(strings.Join(cmd[1:], " ")) {
			inp := ui.FromChar(c)
			err := m.machine.BIOS.PressKey(inp.Char, inp.Scan)
			if err != nil {
				fmt.Println(m.styles.err.Render(err.Error()))
				break // for loop
			}
		}

	case "VECTORS":
		m.vectors()

	case "INIT":
		image := m.biosImage
		if len(cmd) == 2 {
			image = cmd[1]
		}
		err := m.machine.BIOS.Initialise(image, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Println(m.styles.err.Render(err.Error()))
		} else {
			fmt.Println(m.styles.debugger.Render(m.machine.BIOS.Status()))
		}

	case "CLEANUP":
		m.machine.BIOS.Cleanup()
		fmt.Println(m.styles.debugger.Render(m.machine.BIOS.Status()))

	case "RESET":
		m.reset()

	case "LOG":
		logger.Tail(os.Stdout, -1)

	case "QUIT":
		return true

	default:
		fmt.Println(m.styles.err.Render(
			fmt.Sprintf("unrecognised command: %s", strings.Join(cmd, " ")),
		))
	}

	return false
}

// dispatch an interrupt from the command line. the first argument is the
// interrupt number, the remaining arguments are register assignments of the
// form AX=1234
func (m *debugger) interrupt(args []string) {
	intr, err := strconv.ParseUint(args[0], 16, 8)
	if err != nil {
		fmt.Println(m.styles.err.Render(
			fmt.Sprintf("cannot use INT %s", args[0]),
		))
		return
	}

	regs := m.machine.Regs
	for _, a := range args[1:] {
		reg, val, ok := strings.Cut(strings.ToUpper(a), "=")
		if !ok {
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("register assignment must be of the form AX=1234: %s", a),
			))
			return
		}
		v, err := strconv.ParseUint(val, 16, 16)
		if err != nil {
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("cannot assign %s to %s", val, reg),
			))
			return
		}
		switch reg {
		case "AX":
			regs.AX = uint16(v)
		case "BX":
			regs.BX = uint16(v)
		case "CX":
			regs.CX = uint16(v)
		case "DX":
			regs.DX = uint16(v)
		case "SI":
			regs.SI = uint16(v)
		case "DI":
			regs.DI = uint16(v)
		default:
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("unrecognised register: %s", reg),
			))
			return
		}
	}

	err = m.machine.BIOS.Service(uint8(intr), regs)
	if err != nil {
		fmt.Println(m.styles.err.Render(err.Error()))
		return
	}

	fmt.Println(m.styles.regs.Render(
		regs.String(),
	))
}

// parse an address written either as a physical value or as segment:offset
func parseAddress(s string) (uint32, error) {
	if seg, off, ok := strings.Cut(s, ":"); ok {
		sv, err := strconv.ParseUint(seg, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("cannot parse segment: %s", seg)
		}
		ov, err := strconv.ParseUint(off, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("cannot parse offset: %s", off)
		}
		return memory.Pointer(uint16(sv), uint16(ov)), nil
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot parse address: %s", s)
	}
	return uint32(v) & 0xfffff, nil
}

// print 64 bytes of memory starting at the address
func (m *debugger) peek(arg string) {
	address, err := parseAddress(arg)
	if err != nil {
		fmt.Println(m.styles.err.Render(err.Error()))
		return
	}

	var s strings.Builder
	for i := 0; i < 4; i++ {
		s.WriteString(fmt.Sprintf("%05x : ", address+uint32(i*16)))
		for j := 0; j < 16; j++ {
			v, err := m.machine.Mem.Read(address + uint32(i*16+j))
			if err != nil {
				s.WriteString("?? ")
				continue
			}
			s.WriteString(fmt.Sprintf("%02x ", v))
		}
		s.WriteString("\n")
	}
	fmt.Println(m.styles.mem.Render(strings.TrimSuffix(s.String(), "\n")))
}

// print the installed interrupt vectors as the guest sees them
func (m *debugger) vectors() {
	var s strings.Builder
	for _, intr := range m.machine.BIOS.Vectors() {
		off, err := m.machine.Mem.ReadWord(uint32(intr) * 4)
		if err != nil {
			continue
		}
		seg, err := m.machine.Mem.ReadWord(uint32(intr)*4 + 2)
		if err != nil {
			continue
		}
		desc, _ := m.machine.BIOS.Describe(intr)
		s.WriteString(fmt.Sprintf("INT %02x -> %04x:%04x  %s\n", intr, seg, off, desc))
	}
	if s.Len() == 0 {
		fmt.Println(m.styles.err.Render("no vectors installed"))
		return
	}
	fmt.Println(m.styles.video.Render(strings.TrimSuffix(s.String(), "\n")))
}

// returns true if debugger is to quit
func (m *debugger) run() bool {
	fmt.Println(m.styles.debugger.Render("machine running: ctrl-] to halt"))

	restore, err := rawMode()
	if err != nil {
		logger.Log(logger.Allow, "terminal", err)
	}
	m.running.Store(true)

	select {
	case m.u.State <- ui.Running:
	default:
	}

	stop := make(chan bool, 1)
	result := make(chan error, 1)
	go func() {
		result <- m.machine.Run(stop, func() error {
			return nil
		})
	}()

	var quit bool
	var runErr error

	select {
	case <-m.sig:
		stop <- true
		runErr = <-result
	case runErr = <-result:
	case <-m.guiQuit:
		stop <- true
		<-result
		quit = true
	}

	m.running.Store(false)
	if restore != nil {
		restore()
	}

	select {
	case m.u.State <- ui.Halted:
	default:
	}

	fmt.Println()
	if runErr != nil {
		fmt.Println(m.styles.err.Render(runErr.Error()))
	}
	fmt.Println(m.styles.debugger.Render("machine halted"))

	return quit
}
