//go:build windows

package system

import "golang.org/x/sys/windows"

// FreeSpace returns the free disk space in bytes for the filesystem
// containing path.
func FreeSpace(path string) (uint64, error) {
	var free, total, totalFree uint64
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return 0, err
	}
	return free, nil
}
