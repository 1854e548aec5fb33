// Package rom implements the BIOS ROM region: the top 128k of the real mode
// address space, reserved for BIOS code and read-only data.
package rom

import (
	"fmt"
	"os"
	"path/filepath"
)

// the ROM region occupies a fixed range at the top of the 1MB real mode
// address space. the bounds never change after mapping
const (
	Origin = 0xe0000
	Memtop = 0xfffff
	Size   = Memtop - Origin + 1
)

type ROM struct {
	data []uint8

	// the name of the image file the region was loaded from. empty if the
	// region was zero-filled
	image string
}

// Create reserves the ROM region, loading the named image file at the region
// base if a name is given. an image larger than the region is an error and no
// region is returned. with no image the region is zero-filled and is expected
// to be populated with the built-in interrupt stubs
func Create(imagePath string) (*ROM, error) {
	r := &ROM{
		data: make([]uint8, Size),
	}

	if imagePath != "" {
		d, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("rom: %w", err)
		}
		if len(d) > Size {
			return nil, fmt.Errorf("rom: image %s is too large: %d bytes but region is %d", filepath.Base(imagePath), len(d), Size)
		}
		copy(r.data, d)
		r.image = filepath.Base(imagePath)
	}

	return r, nil
}

// Patch writes data into the region from the host side. guest writes never
// reach the region but the BIOS itself needs to place its interrupt stubs
func (r *ROM) Patch(idx uint32, data ...uint8) error {
	if int(idx)+len(data) > Size {
		return fmt.Errorf("rom: patch out of range: %#05x", idx)
	}
	copy(r.data[idx:], data)
	return nil
}

func (r *ROM) Label() string {
	return "ROM"
}

func (r *ROM) Status() string {
	if r.image == "" {
		return fmt.Sprintf("%dk ROM at %#05x (built-in stubs)", Size/1024, Origin)
	}
	return fmt.Sprintf("%dk ROM at %#05x (image %s)", Size/1024, Origin, r.image)
}

func (r *ROM) Read(idx uint32) (uint8, error) {
	// check that the mapping process hasn't given us an index that is an
	// impossible address for the ROM. this shouldn't ever happen
	if int(idx) >= Size {
		return 0, fmt.Errorf("rom address out of range")
	}
	return r.data[idx], nil
}

// Write implements the memory area interface. guest writes into the ROM
// region are discarded without error. this mirrors how the address decoding
// of the original hardware simply never routes a write strobe to the ROM
func (r *ROM) Write(_ uint32, data uint8) error {
	return nil
}
