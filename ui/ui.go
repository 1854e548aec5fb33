// Package ui defines the channels over which the machine, the debugger and
// the GUI communicate.
package ui

type UI struct {
	SetScreen chan *Screen
	UserInput chan Input
	State     chan State
}

func NewUI() *UI {
	return &UI{
		SetScreen: make(chan *Screen, 1),
		UserInput: make(chan Input, 16),
		State:     make(chan State, 1),
	}
}

type State int

const (
	Halted State = iota
	Running
)
