package ebiten

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jetsetilly/test86/logger"
	"github.com/jetsetilly/test86/ui"
	"github.com/jetsetilly/test86/version"
)

// cell dimensions of the debug font used to draw the text page
const (
	cellWidth  = 6
	cellHeight = 16
	margin     = 8
)

type windowGeometry struct {
	x, y int
	w, h int
}

func (g windowGeometry) valid() bool {
	return g.x >= 0 && g.y >= 0 && g.w > 0 && g.h > 0
}

type guiEbiten struct {
	u      *ui.UI
	endGui chan bool

	scr   *ui.Screen
	state ui.State

	// a simple counter used to blink the cursor
	cursorFrame int
}

func (eg *guiEbiten) Update() error {
	// deal with quit condition
	select {
	case <-eg.endGui:
		var geom windowGeometry
		geom.x, geom.y = ebiten.WindowPosition()
		geom.w, geom.h = ebiten.WindowSize()
		err := onWindowClose(geom)
		if err != nil {
			logger.Log(logger.Allow, "gui", err.Error())
		}
		return ebiten.Termination
	default:
	}

	eg.inputKeyboard()

	select {
	case scr := <-eg.u.SetScreen:
		eg.scr = scr
	case state := <-eg.u.State:
		eg.state = state
	default:
	}

	eg.cursorFrame++
	return nil
}

func (eg *guiEbiten) Draw(screen *ebiten.Image) {
	if eg.scr == nil {
		return
	}

	var s strings.Builder
	for row := 0; row < eg.scr.Rows; row++ {
		s.Reset()
		for col := 0; col < eg.scr.Cols; col++ {
			// the debug font has no glyphs outside of printable ASCII
			ch := eg.scr.Chars[row*eg.scr.Cols+col]
			if ch < 0x20 || ch > 0x7e {
				ch = 0x20
			}
			s.WriteByte(ch)
		}
		ebitenutil.DebugPrintAt(screen, s.String(), margin, margin+row*cellHeight)
	}

	// blinking cursor on the half second
	if eg.state == ui.Running && eg.cursorFrame%60 < 30 {
		ebitenutil.DebugPrintAt(screen, "_",
			margin+int(eg.scr.CursorCol)*cellWidth,
			margin+int(eg.scr.CursorRow)*cellHeight)
	}
}

func (eg *guiEbiten) Layout(width, height int) (int, int) {
	if eg.scr != nil {
		return eg.scr.Cols*cellWidth + margin*2, eg.scr.Rows*cellHeight + margin*2
	}
	return width, height
}

func Launch(endGui chan bool, u *ui.UI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(80*cellWidth+margin*2, 25*cellHeight+margin*2)

	err := onWindowOpen()
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
	}

	return ebiten.RunGame(&guiEbiten{
		u:      u,
		endGui: endGui,
	})
}
