// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{name: "temp dir", dir: t.TempDir()},
		{name: "empty", dir: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := os.Getenv(homeVar())

			restore := SetHomeDir(t, tt.dir)
			if got := os.Getenv(homeVar()); got != tt.dir {
				t.Errorf("%s = %q, want %q", homeVar(), got, tt.dir)
			}

			restore()
			if got := os.Getenv(homeVar()); got != original {
				t.Errorf("after restore %s = %q, want %q", homeVar(), got, original)
			}
		})
	}
}

func TestSetHomeDir_Cleanup(t *testing.T) {
	dir := t.TempDir()
	original := os.Getenv(homeVar())

	t.Run("subtest", func(t *testing.T) {
		t.Cleanup(SetHomeDir(t, dir))
		if got := os.Getenv(homeVar()); got != dir {
			t.Errorf("%s = %q, want %q", homeVar(), got, dir)
		}
	})

	if got := os.Getenv(homeVar()); got != original {
		t.Errorf("after subtest %s = %q, want %q", homeVar(), got, original)
	}
}
