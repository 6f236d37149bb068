// SPDX-License-Identifier: MPL-2.0

// Package stdlib builds the library modules that every store can be seeded
// with: the RDF, RDFS, OWL, XSD, SKOS and Dublin Core vocabularies plus the
// sdml vocabulary that the builtin simple types map onto.
//
// Library modules are constructed in memory, so their nodes carry no spans
// and their File is source.NoFile.
package stdlib
