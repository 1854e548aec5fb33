package resources

import (
	"fmt"
	"os"
)

// Read returns the contents of the named resource file. a file that does not
// exist yet is not an error - the empty string is returned instead
func Read(filename string) (string, error) {
	pth, err := JoinPath(filename)
	if err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	b, err := os.ReadFile(pth)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("resources: %w", err)
	}

	return string(b), nil
}

// Write replaces the contents of the named resource file
func Write(filename string, content string) error {
	pth, err := JoinPath(filename)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	err = os.WriteFile(pth, []byte(content), 0600)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	return nil
}
