//go:build unix

package source

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps a regular file read-only. Other file types (pipes, character
// devices) cannot be mapped and are read into memory instead.
func mapFile(f *os.File) ([]byte, func() error, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if !fi.Mode().IsRegular() {
		data, err := io.ReadAll(f)
		return data, nil, err
	}

	size := fi.Size()
	if size == 0 {
		return nil, nil, nil
	}
	if size != int64(int(size)) {
		return nil, nil, fmt.Errorf("file too large to map: %d bytes", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	// the strategies read the mapping front to back
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return data, func() error { return unix.Munmap(data) }, nil
}
