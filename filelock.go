// filelock.go: Exclusive advisory locking for Hestia stores
//
// Every store operation holds an exclusive flock for its full
// load-mutate-save cycle, so concurrent calls against the same path
// (from any process) serialize instead of racing. The lock lives on a
// sidecar <path>.lock file rather than the data file itself: mutations
// replace the data file by rename, which would silently detach a lock
// held on the old inode.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"os"
	"syscall"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// fileLock holds an exclusive flock on a sidecar lock file.
type fileLock struct {
	file *os.File
	path string
}

// acquireFileLock takes an exclusive lock on path, polling with
// non-blocking attempts until the bounded wait expires. No retries
// happen beyond the wait window; expiry surfaces as ErrCodeLockTimeout
// and the caller may retry.
func acquireFileLock(path string, timeout, retry time.Duration) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644) // #nosec G304 -- lock path derives from the caller's store path
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeStorageError, "failed to open lock file").
			WithContext("path", path)
	}

	deadline := timecache.CachedTimeNano() + timeout.Nanoseconds()
	for {
		err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return &fileLock{file: f, path: path}, nil
		}
		if err != syscall.EWOULDBLOCK && err != syscall.EAGAIN {
			closeQuietly(f)
			return nil, errors.Wrap(err, ErrCodeStorageError, "failed to lock store file").
				WithContext("path", path)
		}
		if timecache.CachedTimeNano() >= deadline {
			closeQuietly(f)
			return nil, errors.New(ErrCodeLockTimeout, "timed out waiting for exclusive store lock").
				WithContext("path", path).
				WithContext("timeout", timeout.String())
		}
		time.Sleep(retry)
	}
}

// release drops the lock and closes the lock file. The sidecar file is
// left in place so concurrent acquirers never race its creation.
func (l *fileLock) release() {
	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	closeQuietly(l.file)
}

func closeQuietly(f *os.File) {
	_ = f.Close()
}
