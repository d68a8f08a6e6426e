//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// One byte at offset zero stands in for the whole file; byte-range
// granularity is irrelevant for a single advisory lock.
const lockRange = 1

const lockRetryInterval = time.Millisecond

// lockFile polls with LOCKFILE_FAIL_IMMEDIATELY instead of issuing a
// blocking LockFileEx, which would pin the OS thread and can starve the
// Go scheduler.
func lockFile(f *os.File) error {
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	for {
		err := windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, lockRange, 0, new(windows.Overlapped))
		if err == nil {
			return nil
		}
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		// Another handle holds the lock; yield and retry.
		time.Sleep(lockRetryInterval)
	}
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, lockRange, 0, new(windows.Overlapped))
}
