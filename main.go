package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/test86/debugger"
	"github.com/jetsetilly/test86/gui"
	"github.com/jetsetilly/test86/ui"
)

func main() {
	// the GUI and the debugger run as peers, each telling the other to end
	// when it finishes. the end channels are buffered so that a goroutine
	// whose peer has already gone does not block on the notification
	endGui := make(chan bool, 1)
	endDebugger := make(chan bool, 1)

	// the result channels are buffered for the same reason. the two
	// goroutines can end in either order
	resultGui := make(chan error, 1)
	resultDebugger := make(chan error, 1)

	u := ui.NewUI()

	go func() {
		resultGui <- gui.Launch(endGui, u)
		endDebugger <- true
	}()

	go func() {
		resultDebugger <- debugger.Launch(endDebugger, u, os.Args[1:])
		endGui <- true
	}()

	if err := <-resultGui; err != nil {
		fmt.Printf("*** %s\n", err)
	}
	if err := <-resultDebugger; err != nil {
		fmt.Printf("*** %s\n", err)
	}
}
