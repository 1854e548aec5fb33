package ui

// Input is a single keystroke from the host: the translated character (zero
// for keys with no character) and the PC scancode
type Input struct {
	Char uint8
	Scan uint8
}

// PC scancodes for typed characters. keys not in the table are sent with a
// zero scancode, which is fine for software that only looks at the character
var scancodes = map[uint8]uint8{
	'1': 0x02, '2': 0x03, '3': 0x04, '4': 0x05, '5': 0x06,
	'6': 0x07, '7': 0x08, '8': 0x09, '9': 0x0a, '0': 0x0b,
	'-': 0x0c, '=': 0x0d,
	'q': 0x10, 'w': 0x11, 'e': 0x12, 'r': 0x13, 't': 0x14,
	'y': 0x15, 'u': 0x16, 'i': 0x17, 'o': 0x18, 'p': 0x19,
	'a': 0x1e, 's': 0x1f, 'd': 0x20, 'f': 0x21, 'g': 0x22,
	'h': 0x23, 'j': 0x24, 'k': 0x25, 'l': 0x26, ';': 0x27,
	'z': 0x2c, 'x': 0x2d, 'c': 0x2e, 'v': 0x2f, 'b': 0x30,
	'n': 0x31, 'm': 0x32, ',': 0x33, '.': 0x34, '/': 0x35,
	' ': 0x39,
	0x0d: 0x1c, 0x08: 0x0e, 0x09: 0x0f, 0x1b: 0x01,
}

// FromChar builds an Input for a typed character. uppercase letters share the
// scancode of their lowercase key
func FromChar(c uint8) Input {
	scan, ok := scancodes[c]
	if !ok && c >= 'A' && c <= 'Z' {
		scan = scancodes[c+0x20]
	}
	return Input{Char: c, Scan: scan}
}
