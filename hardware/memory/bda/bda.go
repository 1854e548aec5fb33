// Package bda implements the BIOS data area: the fixed-layout record at
// physical address 0x400 (segment 0x40) that DOS-era software reads directly.
// The byte offsets in this package are an external contract and must not be
// changed.
//
// See: https://stanislavs.org/helppc/bios_data_area.html
// and: http://www.bioscentral.com/misc/bda.htm
// for more information.
package bda

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/test86/hardware/clocks"
)

// the segment at which the BDA is addressed by real mode software, and the
// equivalent physical origin and size of the area
const (
	Segment = 0x40
	Origin  = 0x400
	Size    = 0x133
)

// field offsets into the BDA. the historically fixed layout of the original
// IBM PC BIOS
const (
	SerialPorts           = 0x00 // 4 words
	ParallelPorts         = 0x08 // 3 words
	EbdaSegment           = 0x0e
	EquipmentList         = 0x10
	MemorySize            = 0x13
	KeybdShiftFlags       = 0x17
	AlternateKeypad       = 0x19
	KeybdBufferHead       = 0x1a
	KeybdBufferTail       = 0x1c
	KeybdBuffer           = 0x1e // 16 words
	DriveRecalibrate      = 0x3e
	DriveMotorStatus      = 0x3f
	MotorShutdownCounter  = 0x40
	LastDisketteOperation = 0x41
	VideoMode             = 0x49
	ScreenColumns         = 0x4a
	VideoPageSize         = 0x4c
	VideoPageOffset       = 0x4e
	CursorPositions       = 0x50 // 8 words, one per video page
	CursorEndLine         = 0x60
	CursorStartLine       = 0x61
	VideoPage             = 0x62
	CrtBasePort           = 0x63
	CrtModeControl        = 0x65
	CrtColorPaletteMask   = 0x66
	TickCounter           = 0x6c // dword
	MidnightPassed        = 0x70
	BreakFlag             = 0x71
	SoftReset             = 0x72
	LastDiskOperation     = 0x74
	NumDisks              = 0x75
	LptTimeOut            = 0x78 // 1 byte per parallel port
	ComTimeOut            = 0x7c // 1 byte per serial port
	KeybdBufferStart      = 0x80
	KeybdBufferEnd        = 0x82
	ScreenRows            = 0x84
	CharacterHeight       = 0x85
)

// the number of video pages with a cursor position in the BDA
const NumPages = 8

// the keyboard buffer is a ring of 16 words. the head and tail fields hold
// offsets relative to the BDA segment, as they do on real hardware, meaning
// the valid range for both is KeybdBuffer up to (but not including) bufferEnd
const (
	bufferWords = 16
	bufferEnd   = KeybdBuffer + bufferWords*2
)

// BufferFull is returned when a key is inserted into a full keyboard buffer.
// The unread contents of the buffer are never overwritten
var BufferFull = fmt.Errorf("keyboard buffer is full")

// layout describes every field in the BDA, including the reserved areas. it
// exists only so that the layout can be validated on startup - the fields
// must be contiguous, non-overlapping and total exactly Size bytes
var layout = []struct {
	offset int
	width  int
	name   string
}{
	{0x00, 8, "serial port base addresses"},
	{0x08, 6, "parallel port base addresses"},
	{0x0e, 2, "extended BDA segment"},
	{0x10, 2, "equipment list"},
	{0x12, 1, "reserved"},
	{0x13, 2, "memory size"},
	{0x15, 2, "reserved"},
	{0x17, 2, "keyboard shift flags"},
	{0x19, 1, "alternate keypad entry"},
	{0x1a, 2, "keyboard buffer head"},
	{0x1c, 2, "keyboard buffer tail"},
	{0x1e, 32, "keyboard buffer"},
	{0x3e, 1, "drive recalibrate status"},
	{0x3f, 1, "drive motor status"},
	{0x40, 1, "motor shutdown counter"},
	{0x41, 1, "last diskette operation"},
	{0x42, 7, "reserved"},
	{0x49, 1, "video mode"},
	{0x4a, 2, "screen columns"},
	{0x4c, 2, "video page size"},
	{0x4e, 2, "video page offset"},
	{0x50, 16, "cursor positions"},
	{0x60, 1, "cursor end line"},
	{0x61, 1, "cursor start line"},
	{0x62, 1, "active video page"},
	{0x63, 2, "CRT base port"},
	{0x65, 1, "CRT mode control"},
	{0x66, 1, "CRT palette mask"},
	{0x67, 5, "cassette data"},
	{0x6c, 4, "tick counter"},
	{0x70, 1, "midnight flag"},
	{0x71, 1, "break flag"},
	{0x72, 2, "soft reset flag"},
	{0x74, 1, "last disk operation"},
	{0x75, 1, "number of fixed disks"},
	{0x76, 1, "drive control byte"},
	{0x77, 1, "disk port offset"},
	{0x78, 4, "parallel port timeouts"},
	{0x7c, 4, "serial port timeouts"},
	{0x80, 2, "keyboard buffer start"},
	{0x82, 2, "keyboard buffer end"},
	{0x84, 1, "screen rows"},
	{0x85, 2, "character height"},
	{0x87, 2, "EGA flags"},
	{0x89, 2, "VGA flags"},
	{0x8b, 29, "reserved"},
	{0xa8, 4, "EGA pointer"},
	{0xac, 135, "reserved"},
}

func init() {
	// the layout is a byte-exact contract. check it once on startup
	off := 0
	for _, f := range layout {
		if f.offset != off {
			panic(fmt.Sprintf("BDA layout broken at %s: offset %#02x but expected %#02x", f.name, f.offset, off))
		}
		off += f.width
	}
	if off != Size {
		panic(fmt.Sprintf("BDA layout size is %#02x but must be %#02x", off, Size))
	}
}

type BDA struct {
	// the BDA is mutated by BIOS services on the emulation goroutine and by
	// host events (timer ticks, keystrokes) arriving from elsewhere. a single
	// mutex over the whole record is enough given its size
	crit sync.Mutex

	data [Size]uint8
}

func Create() *BDA {
	b := &BDA{}
	b.Reset()
	return b
}

// Reset returns every field to its power-on value
func (b *BDA) Reset() {
	b.crit.Lock()
	defer b.crit.Unlock()

	clear(b.data[:])

	// equipment: initial video mode is 80x25 colour. no diskette drives, no
	// FPU, no serial or parallel hardware behind the port tables
	b.write16(EquipmentList, 0x0020)

	// conventional memory in kilobytes
	b.write16(MemorySize, 640)

	// keyboard buffer is empty when head equals tail
	b.write16(KeybdBufferHead, KeybdBuffer)
	b.write16(KeybdBufferTail, KeybdBuffer)
	b.write16(KeybdBufferStart, KeybdBuffer)
	b.write16(KeybdBufferEnd, bufferEnd)

	// 80x25 colour text
	b.data[VideoMode] = 0x03
	b.write16(ScreenColumns, 80)
	b.write16(VideoPageSize, 0x1000)
	b.data[ScreenRows] = 25 - 1
	b.write16(CharacterHeight, 8)
	b.write16(CrtBasePort, 0x3d4)
	b.data[CursorStartLine] = 0x06
	b.data[CursorEndLine] = 0x07

	// conventional device timeouts
	for i := 0; i < 4; i++ {
		b.data[LptTimeOut+i] = 0x14
		b.data[ComTimeOut+i] = 0x01
	}
}

// 16 and 32 bit fields are little-endian, as the guest sees them. callers
// must hold the crit mutex
func (b *BDA) read16(offset int) uint16 {
	return uint16(b.data[offset]) | uint16(b.data[offset+1])<<8
}

func (b *BDA) write16(offset int, v uint16) {
	b.data[offset] = uint8(v)
	b.data[offset+1] = uint8(v >> 8)
}

func (b *BDA) read32(offset int) uint32 {
	return uint32(b.read16(offset)) | uint32(b.read16(offset+2))<<16
}

func (b *BDA) write32(offset int, v uint32) {
	b.write16(offset, uint16(v))
	b.write16(offset+2, uint16(v>>16))
}

func (b *BDA) EquipmentList() uint16 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.read16(EquipmentList)
}

func (b *BDA) MemorySize() uint16 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.read16(MemorySize)
}

func (b *BDA) ShiftFlags() uint16 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.read16(KeybdShiftFlags)
}

func (b *BDA) SetShiftFlags(v uint16) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.write16(KeybdShiftFlags, v)
}

// the head and tail fields live in guest-writable memory and cannot be
// trusted as array indices. a pointer outside the ring, or a misaligned one,
// resets the buffer to empty - the keys are lost but nothing worse happens,
// which is how the original keyboard handler degrades. callers must hold the
// crit mutex
func (b *BDA) bufferPointers() (uint16, uint16) {
	head := b.read16(KeybdBufferHead)
	tail := b.read16(KeybdBufferTail)

	valid := func(v uint16) bool {
		return v >= KeybdBuffer && v < bufferEnd && v%2 == 0
	}

	if !valid(head) || !valid(tail) {
		head = KeybdBuffer
		tail = KeybdBuffer
		b.write16(KeybdBufferHead, head)
		b.write16(KeybdBufferTail, tail)
	}

	return head, tail
}

// InsertKey adds a scancode/character pair to the keyboard buffer. the
// buffer is a ring: inserting into a full buffer fails with BufferFull rather
// than overwrite keys that haven't been read yet
func (b *BDA) InsertKey(key uint16) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	head, tail := b.bufferPointers()

	next := tail + 2
	if next >= bufferEnd {
		next = KeybdBuffer
	}
	if next == head {
		return BufferFull
	}

	b.write16(int(tail), key)
	b.write16(KeybdBufferTail, next)
	return nil
}

// RemoveKey takes the oldest key from the keyboard buffer. returns false if
// the buffer is empty
func (b *BDA) RemoveKey() (uint16, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()

	head, tail := b.bufferPointers()
	if head == tail {
		return 0, false
	}

	key := b.read16(int(head))
	head += 2
	if head >= bufferEnd {
		head = KeybdBuffer
	}
	b.write16(KeybdBufferHead, head)
	return key, true
}

// PeekKey returns the oldest key in the keyboard buffer without removing it
func (b *BDA) PeekKey() (uint16, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()

	head, tail := b.bufferPointers()
	if head == tail {
		return 0, false
	}
	return b.read16(int(head)), true
}

// IncrementTick advances the tick counter by one. at 24 hours worth of ticks
// the counter resets to zero and the midnight flag is raised. the counter
// never overflows into the adjacent fields
func (b *BDA) IncrementTick() {
	b.crit.Lock()
	defer b.crit.Unlock()

	t := b.read32(TickCounter) + 1
	if t >= clocks.TicksPerDay {
		t = 0
		b.data[MidnightPassed] = 1
	}
	b.write32(TickCounter, t)
}

// TickCount returns the current value of the tick counter
func (b *BDA) TickCount() uint32 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.read32(TickCounter)
}

// ReadTicks returns the tick counter and the midnight flag. the midnight flag
// is cleared by the read, as it is by the INT 1A service on real hardware
func (b *BDA) ReadTicks() (uint32, bool) {
	b.crit.Lock()
	defer b.crit.Unlock()

	midnight := b.data[MidnightPassed] != 0
	b.data[MidnightPassed] = 0
	return b.read32(TickCounter), midnight
}

// SetTicks sets the tick counter and clears the midnight flag
func (b *BDA) SetTicks(t uint32) {
	b.crit.Lock()
	defer b.crit.Unlock()

	b.write32(TickCounter, t)
	b.data[MidnightPassed] = 0
}

// Cursor returns the column and row of the cursor on the given video page
func (b *BDA) Cursor(page uint8) (uint8, uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()

	v := b.read16(CursorPositions + int(page%NumPages)*2)
	return uint8(v), uint8(v >> 8)
}

func (b *BDA) SetCursor(page uint8, col uint8, row uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.write16(CursorPositions+int(page%NumPages)*2, uint16(row)<<8|uint16(col))
}

// CursorShape returns the start and end scanlines of the cursor
func (b *BDA) CursorShape() (uint8, uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[CursorStartLine], b.data[CursorEndLine]
}

func (b *BDA) VideoMode() uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[VideoMode]
}

func (b *BDA) SetVideoMode(mode uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.data[VideoMode] = mode
}

func (b *BDA) Columns() uint16 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.read16(ScreenColumns)
}

// Rows returns the number of text rows. the BDA stores rows-1
func (b *BDA) Rows() uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[ScreenRows] + 1
}

func (b *BDA) ActivePage() uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[VideoPage]
}

func (b *BDA) SetActivePage(page uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.data[VideoPage] = page % NumPages
}

func (b *BDA) DisketteStatus() uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[LastDisketteOperation]
}

func (b *BDA) SetDisketteStatus(v uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.data[LastDisketteOperation] = v
}

func (b *BDA) DiskStatus() uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.data[LastDiskOperation]
}

func (b *BDA) SetDiskStatus(v uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.data[LastDiskOperation] = v
}

func (b *BDA) Label() string {
	return "BDA"
}

// Read implements the memory area interface. real mode software addresses the
// BDA directly at segment 0x40
func (b *BDA) Read(idx uint32) (uint8, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	if idx >= Size {
		return 0, fmt.Errorf("BDA address out of range")
	}
	return b.data[idx], nil
}

// Write implements the memory area interface. the BDA is ordinary RAM to the
// guest and writes are honoured
func (b *BDA) Write(idx uint32, data uint8) error {
	b.crit.Lock()
	defer b.crit.Unlock()

	if idx >= Size {
		return fmt.Errorf("BDA address out of range")
	}
	b.data[idx] = data
	return nil
}

func (b *BDA) String() string {
	b.crit.Lock()
	defer b.crit.Unlock()

	var s strings.Builder
	for i := 0; i <= (Size-1)/16; i++ {
		j := i * 16
		k := min(j+16, Size)
		s.WriteString(fmt.Sprintf("%04x : % 02x\n", j+Origin, b.data[j:k]))
	}
	return strings.TrimSuffix(s.String(), "\n")
}
