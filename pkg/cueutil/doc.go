// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes documents that are validated by an embedded CUE
// schema. The sdml catalog (sdml-catalog.json) and the user configuration
// (config.cue) are both read through it.
//
// Decoding is a three-step flow:
//
//  1. Compile the embedded schema
//  2. Compile the document (CUE or JSON) and unify it with the schema
//  3. Validate and decode into a Go struct
//
// # Usage
//
//	//go:embed catalog_schema.cue
//	var catalogSchema []byte
//
//	result, err := cueutil.ParseAndDecode[catalogFile](
//	    catalogSchema,
//	    data,
//	    "#Catalog",
//	    cueutil.WithFilename("sdml-catalog.json"),
//	)
package cueutil
