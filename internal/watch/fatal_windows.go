// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 error codes that indicate the ReadDirectoryChangesW-based watcher
// cannot recover.
const (
	// ERROR_TOO_MANY_OPEN_FILES (4): handle limit exceeded.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): the watched directory was deleted or its
	// handle was otherwise invalidated.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): the notification buffer cannot be
	// allocated.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// isFatalFsnotifyError reports whether an fsnotify error leaves the watch
// session unrecoverable on Windows.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
