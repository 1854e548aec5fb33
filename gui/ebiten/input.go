package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jetsetilly/test86/ui"
)

// keys that carry no typed character but are still meaningful to the guest
var specialKeys = map[ebiten.Key]ui.Input{
	ebiten.KeyEnter:      {Char: 0x0d, Scan: 0x1c},
	ebiten.KeyBackspace:  {Char: 0x08, Scan: 0x0e},
	ebiten.KeyTab:        {Char: 0x09, Scan: 0x0f},
	ebiten.KeyEscape:     {Char: 0x1b, Scan: 0x01},
	ebiten.KeyArrowUp:    {Char: 0x00, Scan: 0x48},
	ebiten.KeyArrowLeft:  {Char: 0x00, Scan: 0x4b},
	ebiten.KeyArrowRight: {Char: 0x00, Scan: 0x4d},
	ebiten.KeyArrowDown:  {Char: 0x00, Scan: 0x50},
}

func (eg *guiEbiten) send(inp ui.Input) {
	select {
	case eg.u.UserInput <- inp:
	default:
	}
}

func (eg *guiEbiten) inputKeyboard() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || r > 0x7e {
			continue
		}
		eg.send(ui.FromChar(uint8(r)))
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if inp, ok := specialKeys[k]; ok {
			eg.send(inp)
		}
	}
}
