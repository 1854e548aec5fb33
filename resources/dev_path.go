//go:build !release
// +build !release

package resources

const configDir = ".test86"

func resourcePath() (string, error) {
	return configDir, nil
}
