//go:build !windows

package system

import "golang.org/x/sys/unix"

// FreeSpace returns the free disk space in bytes for the filesystem
// containing path.
func FreeSpace(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}
