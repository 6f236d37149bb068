// SPDX-License-Identifier: MPL-2.0

// Package load finds, reads and parses SDML modules and places them in a
// module store.
//
// A Resolver maps a module name to a file. FSResolver consults an optional
// sdml-catalog.json catalog first and then searches, in order, the
// directory of the importing file, the entries of SDML_PATH, any
// configured directories and the working directory for name.sdm,
// name/name.sdm, name.sdml and name/name.sdml.
//
// FSLoader drives the resolver, the grammar and the tree walker. Loading is
// idempotent per store and, when recursive, follows imports depth first in
// declaration order. Import cycles are broken by skipping modules that are
// already stored or still being loaded.
//
// A store must not be shared by concurrent loads.
package load
