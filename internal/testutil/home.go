// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// homeVar is the variable os.UserHomeDir reads on this platform.
func homeVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

// SetHomeDir points the user's home directory at dir and returns a
// function restoring the previous value. The default configuration
// directory is derived from it.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, homeVar(), dir)
}
