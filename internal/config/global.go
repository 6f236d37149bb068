// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform configuration directory when set.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir. Tests use it where the
// home directory cannot be redirected through the environment.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears any configuration directory override.
func Reset() {
	configDirOverride = ""
}
