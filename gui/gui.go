// Package gui is the front door for GUI implementations. There is currently
// one implementation, built on ebiten, which shows the active text page of
// the machine and feeds typed keys back to it.
package gui

import (
	"github.com/jetsetilly/test86/gui/ebiten"
	"github.com/jetsetilly/test86/ui"
)

func Launch(endGui chan bool, u *ui.UI) error {
	return ebiten.Launch(endGui, u)
}
