package ui

// Screen is a snapshot of the active text page, sent from the machine to the
// GUI after each timer tick
type Screen struct {
	Cols int
	Rows int

	// character and attribute bytes, row major, Cols*Rows of each
	Chars []uint8
	Attrs []uint8

	CursorCol uint8
	CursorRow uint8
}
