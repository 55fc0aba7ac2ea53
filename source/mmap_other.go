//go:build !unix

package source

import (
	"io"
	"os"
)

// mapFile reads the whole file; memory mapping is only used on unix.
func mapFile(f *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(f)
	return data, nil, err
}
