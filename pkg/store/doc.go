// SPDX-License-Identifier: MPL-2.0

// Package store holds the modules loaded during a session.
//
// A Cache is populated by a loader and read afterwards by validation and
// generators. It is not safe for concurrent mutation: one writer owns the
// cache while loading, and readers may only run once loading has finished.
package store
