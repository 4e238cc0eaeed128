// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"syscall"
)

// isFatalFsnotifyError reports whether an fsnotify error leaves the watch
// session unrecoverable. On Unix these are the inotify/kqueue resource
// exhaustion errors: ENOSPC (inotify watch limit), EMFILE (per-process file
// descriptor limit), and ENFILE (system-wide file descriptor limit).
// Anything else is logged and the session continues.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, syscall.ENOSPC) ||
		errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE)
}
