package hardware

import (
	"time"

	"github.com/jetsetilly/test86/hardware/clocks"
)

type limiter struct {
	tick  *time.Ticker
	nudge chan bool

	// the payload function for the Wait() method
	wait func()
}

func newLimiter() *limiter {
	l := &limiter{
		nudge: make(chan bool, 1),
	}

	// the ideal tick rate of the machine. one wait per timer interrupt
	hz := float64(clocks.TickHz)
	l.tick = time.NewTicker(time.Duration(float64(time.Second) / hz))

	l.wait = func() {
		select {
		case <-l.tick.C:
		case <-l.nudge:
		}
	}

	return l
}

func (l *limiter) Wait() {
	l.wait()
}

func (l *limiter) Nudge() {
	select {
	case l.nudge <- true:
	default:
	}
}
