// SPDX-License-Identifier: MPL-2.0

// Package source holds byte-offset spans and the registry of loaded source
// texts used to render diagnostics.
package source
