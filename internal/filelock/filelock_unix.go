//go:build !windows

package filelock

import (
	"os"

	"golang.org/x/sys/unix"
)

func lockFile(f *os.File) error {
	return flockRetryINTR(f, unix.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return flockRetryINTR(f, unix.LOCK_UN)
}

// flockRetryINTR calls flock(2), retrying when a signal interrupts the
// blocking acquire.
func flockRetryINTR(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if err != unix.EINTR {
			return err
		}
	}
}
