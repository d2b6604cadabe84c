//go:build !windows

package storage

import (
	"errors"
	"syscall"
)

func statDisk(path string) (total, free uint64, err error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	return st.Blocks * uint64(st.Bsize), st.Bavail * uint64(st.Bsize), nil
}

// isDiskFullError reports whether err carries ENOSPC.
func isDiskFullError(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
