package ram

import (
	"fmt"
	"strings"
)

type RAM struct {
	ctx   Context
	label string
	data  []uint8
}

type Context interface {
	Rand8Bit() uint8
}

func Create(ctx Context, label string, size int) *RAM {
	return &RAM{
		ctx:   ctx,
		label: label,
		data:  make([]uint8, size),
	}
}

func (r *RAM) Reset(random bool) {
	if random {
		for i := range len(r.data) {
			r.data[i] = r.ctx.Rand8Bit()
		}
	} else {
		clear(r.data)
	}
}

// Fill the range [idx, idx+ct) with the repeating two byte pattern. Used to
// clear text video memory to a character/attribute pair
func (r *RAM) Fill(idx uint32, ct int, a uint8, b uint8) {
	for i := 0; i < ct; i += 2 {
		j := int(idx) + i
		if j+1 >= len(r.data) {
			return
		}
		r.data[j] = a
		r.data[j+1] = b
	}
}

func (r *RAM) Size() int {
	return len(r.data)
}

func (r *RAM) String() string {
	var s strings.Builder
	for i := 0; i <= (len(r.data)-1)/16; i++ {
		j := i * 16
		s.WriteString(fmt.Sprintf("%04x : % 02x\n", j, r.data[j:j+16]))
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (r *RAM) Label() string {
	return r.label
}

func (r *RAM) Read(idx uint32) (uint8, error) {
	if int(idx) >= len(r.data) {
		return 0, fmt.Errorf("%s address out of range", r.label)
	}
	return r.data[idx], nil
}

func (r *RAM) Write(idx uint32, data uint8) error {
	if int(idx) >= len(r.data) {
		return fmt.Errorf("%s address out of range", r.label)
	}
	r.data[idx] = data
	return nil
}
