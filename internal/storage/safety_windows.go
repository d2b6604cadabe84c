//go:build windows

package storage

import (
	"errors"
	"syscall"
	"unsafe"
)

var (
	kernel32            = syscall.NewLazyDLL("kernel32.dll")
	getDiskFreeSpaceExW = kernel32.NewProc("GetDiskFreeSpaceExW")
)

// errorDiskFull is ERROR_DISK_FULL.
const errorDiskFull = syscall.Errno(112)

func statDisk(path string) (total, free uint64, err error) {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0, err
	}
	var avail, totalFree uint64
	ret, _, callErr := getDiskFreeSpaceExW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&avail)),
		uintptr(unsafe.Pointer(&total)),
		uintptr(unsafe.Pointer(&totalFree)),
	)
	if ret == 0 {
		return 0, 0, callErr
	}
	return total, avail, nil
}

// isDiskFullError reports whether err carries ERROR_DISK_FULL.
func isDiskFullError(err error) bool {
	return errors.Is(err, errorDiskFull)
}
