package rom_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/test86/hardware/memory/rom"
	"github.com/jetsetilly/test86/test"
)

func TestNoImage(t *testing.T) {
	r, err := rom.Create("")
	test.ExpectSuccess(t, err)

	v, err := r.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x00)

	_, err = r.Read(rom.Size)
	test.ExpectFailure(t, err)
}

func TestImage(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "bios.bin")
	err := os.WriteFile(pth, []byte{0xde, 0xad, 0xbe, 0xef}, 0644)
	test.ExpectSuccess(t, err)

	r, err := rom.Create(pth)
	test.ExpectSuccess(t, err)

	// image is loaded verbatim at the region base
	v, err := r.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xde)
	v, err = r.Read(3)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xef)
}

func TestOversizeImage(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "toobig.bin")
	err := os.WriteFile(pth, make([]byte, rom.Size+1), 0644)
	test.ExpectSuccess(t, err)

	_, err = rom.Create(pth)
	test.ExpectFailure(t, err)
}

func TestMissingImage(t *testing.T) {
	_, err := rom.Create(filepath.Join(t.TempDir(), "no-such-file"))
	test.ExpectFailure(t, err)
}

func TestWriteProtect(t *testing.T) {
	r, err := rom.Create("")
	test.ExpectSuccess(t, err)

	// guest writes are discarded without error
	test.ExpectSuccess(t, r.Write(0, 0xff))
	v, err := r.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x00)

	// host side patching does land
	test.ExpectSuccess(t, r.Patch(0, 0xcf))
	v, err = r.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xcf)

	_, err = r.Read(rom.Size)
	test.ExpectFailure(t, err)
}
