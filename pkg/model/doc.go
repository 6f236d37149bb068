// SPDX-License-Identifier: MPL-2.0

// Package model defines the abstract model of an SDML module: identifiers,
// imports, definitions, members, annotations, constraints and values.
//
// Polymorphic parts of the model are closed interfaces (Definition,
// MemberShape, Annotation, Value, ConstraintSentence, Term) implemented only
// by the types in this package. Consumers switch on the concrete type.
//
// References between definitions are kept by name and resolved lazily
// against a module store; an unresolved reference is legal here and only
// becomes an error during validation.
package model
