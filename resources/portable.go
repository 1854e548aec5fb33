package resources

import (
	"os"
	"path/filepath"
)

// the directory used for resources when the portable.txt file is present
const portablePath = "Test86_UserData"

// checkPortable returns true if an empty file named portable.txt is in the
// same directory as the program binary
func checkPortable() bool {
	ex, err := os.Executable()
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(filepath.Dir(ex), "portable.txt"))
	return err == nil
}
