package bda_test

import (
	"testing"

	"github.com/jetsetilly/test86/hardware/clocks"
	"github.com/jetsetilly/test86/hardware/memory/bda"
	"github.com/jetsetilly/test86/test"
)

func TestLayout(t *testing.T) {
	// the record size and the field offsets are an external contract
	test.ExpectEquality(t, bda.Size, 0x133)
	test.ExpectEquality(t, bda.Origin, bda.Segment<<4)

	test.ExpectEquality(t, bda.EquipmentList, 0x10)
	test.ExpectEquality(t, bda.KeybdBufferHead, 0x1a)
	test.ExpectEquality(t, bda.KeybdBuffer, 0x1e)
	test.ExpectEquality(t, bda.VideoMode, 0x49)
	test.ExpectEquality(t, bda.CursorPositions, 0x50)
	test.ExpectEquality(t, bda.TickCounter, 0x6c)
	test.ExpectEquality(t, bda.MidnightPassed, 0x70)
	test.ExpectEquality(t, bda.KeybdBufferStart, 0x80)
}

func TestDefaults(t *testing.T) {
	b := bda.Create()
	test.ExpectEquality(t, b.MemorySize(), 640)
	test.ExpectEquality(t, b.VideoMode(), 0x03)
	test.ExpectEquality(t, b.Columns(), 80)
	test.ExpectEquality(t, b.Rows(), 25)
	test.ExpectEquality(t, b.TickCount(), 0)

	// the buffer bound fields must agree with the head/tail starting values
	v, err := b.Read(bda.KeybdBufferStart)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, bda.KeybdBuffer)
}

func TestKeyboardBuffer(t *testing.T) {
	b := bda.Create()

	// empty buffer
	_, ok := b.RemoveKey()
	test.ExpectFailure(t, ok)
	_, ok = b.PeekKey()
	test.ExpectFailure(t, ok)

	// a 16 word ring holds 15 unread keys
	for i := 0; i < 15; i++ {
		test.ExpectSuccess(t, b.InsertKey(uint16(i)+1))
	}
	err := b.InsertKey(0xffff)
	test.ExpectEquality(t, err, bda.BufferFull)

	// the refused insert must not have overwritten anything and removal
	// order is insertion order
	for i := 0; i < 15; i++ {
		key, ok := b.RemoveKey()
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, key, uint16(i)+1)
	}
	_, ok = b.RemoveKey()
	test.ExpectFailure(t, ok)
}

func TestKeyboardBufferWrap(t *testing.T) {
	b := bda.Create()

	// cycle the ring several times over to exercise the wrap of the head and
	// tail offsets
	for i := 0; i < 100; i++ {
		test.ExpectSuccess(t, b.InsertKey(uint16(i)))
		key, ok := b.RemoveKey()
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, key, uint16(i))
	}

	_, ok := b.RemoveKey()
	test.ExpectFailure(t, ok)
}

func TestKeyboardBufferCorruption(t *testing.T) {
	b := bda.Create()
	test.ExpectSuccess(t, b.InsertKey(0x1c0d))

	// the head and tail fields are ordinary guest-writable memory. an out of
	// range pointer must reset the buffer to empty, never index outside the
	// record
	test.ExpectSuccess(t, b.Write(bda.KeybdBufferHead, 0x32))
	test.ExpectSuccess(t, b.Write(bda.KeybdBufferHead+1, 0x01))

	_, ok := b.RemoveKey()
	test.ExpectFailure(t, ok)

	// the buffer is usable again after the reset
	test.ExpectSuccess(t, b.InsertKey(0x1e61))
	key, ok := b.RemoveKey()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, key, 0x1e61)

	// a misaligned tail is just as invalid
	test.ExpectSuccess(t, b.Write(bda.KeybdBufferTail, 0x1f))
	_, ok = b.PeekKey()
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, b.InsertKey(0x1e61))
	_, ok = b.PeekKey()
	test.ExpectSuccess(t, ok)
}

func TestTickRollover(t *testing.T) {
	b := bda.Create()

	b.IncrementTick()
	test.ExpectEquality(t, b.TickCount(), 1)

	// one tick short of midnight
	b.SetTicks(clocks.TicksPerDay - 1)
	b.IncrementTick()

	ticks, midnight := b.ReadTicks()
	test.ExpectEquality(t, ticks, 0)
	test.ExpectSuccess(t, midnight)

	// the midnight flag is cleared by the read
	_, midnight = b.ReadTicks()
	test.ExpectFailure(t, midnight)
}

func TestCursor(t *testing.T) {
	b := bda.Create()

	b.SetCursor(0, 10, 5)
	b.SetCursor(1, 20, 6)

	col, row := b.Cursor(0)
	test.ExpectEquality(t, col, 10)
	test.ExpectEquality(t, row, 5)

	col, row = b.Cursor(1)
	test.ExpectEquality(t, col, 20)
	test.ExpectEquality(t, row, 6)

	// cursor positions are guest visible words at offset 0x50
	lo, err := b.Read(bda.CursorPositions)
	test.ExpectSuccess(t, err)
	hi, err := b.Read(bda.CursorPositions + 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, lo, 10)
	test.ExpectEquality(t, hi, 5)
}

func TestAreaBounds(t *testing.T) {
	b := bda.Create()

	_, err := b.Read(bda.Size)
	test.ExpectFailure(t, err)
	err = b.Write(bda.Size, 0xff)
	test.ExpectFailure(t, err)

	test.ExpectSuccess(t, b.Write(bda.Size-1, 0xab))
	v, err := b.Read(bda.Size - 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xab)
}
