package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/lifeledger/internal/errors"
)

const (
	// MinFreeSpace is the minimum free space required before writing a file (10MB).
	MinFreeSpace = 10 * 1024 * 1024
	// MinFreeSpaceWarning is the threshold for warning about low disk space (50MB).
	MinFreeSpaceWarning = 50 * 1024 * 1024
)

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// GetDiskSpace returns disk space information for the filesystem holding
// path, or its nearest existing ancestor.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	path = existingAncestor(path)
	total, free, err := statDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space: %w", err)
	}
	return &DiskSpaceInfo{
		Path:       path,
		TotalBytes: total,
		FreeBytes:  free,
		UsedBytes:  total - free,
	}, nil
}

func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// CheckDiskSpace returns ErrDiskFull when free space at path is below
// MinFreeSpace. An unknown amount of free space is not an error.
func CheckDiskSpace(path string) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}
	if info.FreeBytes < MinFreeSpace {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d MB free, need at least %d MB",
				info.FreeBytes/(1024*1024), MinFreeSpace/(1024*1024)),
			errors.ErrDiskFull,
		)
	}
	return nil
}

// DiskSpaceWarning returns a warning message when disk space is low, or "".
func DiskSpaceWarning(path string) string {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= MinFreeSpaceWarning {
		return ""
	}
	return fmt.Sprintf("Warning: Low disk space (%d MB free)", info.FreeBytes/(1024*1024))
}

// SafeWrite writes data to path atomically: it checks free space, writes and
// syncs a temp file in the same directory, then renames it over path. Missing
// parent directories are created.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return writeErr("create directory", err)
	}
	if err := CheckDiskSpace(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".lifeledger-*.tmp")
	if err != nil {
		return writeErr("create temp file", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return writeErr("write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return writeErr("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return writeErr("close", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return writeErr("chmod", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return writeErr("rename", err)
	}

	committed = true
	return nil
}

func writeErr(op string, err error) error {
	if isDiskFullError(err) {
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	}
	if os.IsPermission(err) {
		return errors.NewSystemErrorWithOp(op, "permission denied", errors.ErrPermissionDenied)
	}
	return errors.NewSystemErrorWithOp(op, "failed to write file", err)
}
