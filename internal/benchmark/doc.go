// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the hot paths of loading a model:
//   - parsing module text into the model
//   - resolving and loading imported modules from disk
//   - validating modules against the store
//   - printing modules in canonical form
//   - decoding the CUE configuration file
//
// They double as the workload for PGO profiles:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
