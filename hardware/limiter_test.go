package hardware

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	l := newLimiter()
	defer l.tick.Stop()

	// a nudge releases a pending wait without a ticker event
	l.Nudge()

	done := make(chan bool)
	go func() {
		l.Wait()
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Errorf("wait did not release after a nudge")
	}
}
