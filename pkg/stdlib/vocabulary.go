// SPDX-License-Identifier: MPL-2.0

package stdlib

// Library module names.
const (
	RDF     = "rdf"
	RDFS    = "rdfs"
	OWL     = "owl"
	XSD     = "xsd"
	SKOS    = "skos"
	DC      = "dc"
	DCTerms = "dcterms"
	SDML    = "sdml"
)

type (
	// vocabulary describes one library module. Every term becomes an rdf
	// definition typed by an rdf:type annotation.
	vocabulary struct {
		name        string
		uri         string
		imports     []string
		classes     []string
		datatypes   []string
		properties  []string
		individuals []individual
		// equivalents maps datatype names to an owl:equivalentClass target.
		equivalents map[string][2]string
	}

	individual struct {
		name   string
		typeOf [2]string
	}
)

// vocabularies lists the library modules in insertion order.
var vocabularies = []vocabulary{
	{
		name:      RDF,
		uri:       "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		imports:   []string{RDFS},
		classes:   []string{"Alt", "Bag", "CompoundLiteral", "List", "Property", "Seq", "Statement"},
		datatypes: []string{"HTML", "JSON", "PlainLiteral", "XMLLiteral", "langString"},
		properties: []string{
			"direction", "first", "language", "object", "predicate", "rest", "subject", "type", "value",
		},
		individuals: []individual{{name: "nil", typeOf: [2]string{RDF, "List"}}},
	},
	{
		name:       RDFS,
		uri:        "http://www.w3.org/2000/01/rdf-schema#",
		imports:    []string{RDF},
		classes:    []string{"Class", "Container", "ContainerMembershipProperty", "Datatype", "Literal", "Resource"},
		properties: []string{"comment", "domain", "isDefinedBy", "label", "member", "range", "seeAlso", "subClassOf", "subPropertyOf"},
	},
	{
		name:    OWL,
		uri:     "http://www.w3.org/2002/07/owl#",
		imports: []string{RDF, RDFS, XSD},
		classes: []string{
			"AllDifferent", "AllDisjointClasses", "AllDisjointProperties", "Annotation",
			"AnnotationProperty", "AsymmetricProperty", "Axiom", "Class", "DataRange",
			"DatatypeProperty", "DeprecatedClass", "DeprecatedProperty", "FunctionalProperty",
			"InverseFunctionalProperty", "IrreflexiveProperty", "NamedIndividual",
			"NegativePropertyAssertion", "Nothing", "ObjectProperty", "Ontology", "OntologyProperty",
			"ReflexiveProperty", "Restriction", "SymmetricProperty", "Thing", "TransitiveProperty",
		},
		datatypes: []string{"rational", "real"},
		properties: []string{
			"allValuesFrom", "annotatedProperty", "annotatedSource", "annotatedTarget",
			"assertionProperty", "backwardCompatibleWith", "bottomDataProperty", "bottomObjectProperty",
			"cardinality", "complementOf", "datatypeComplementOf", "deprecated", "differentFrom",
			"disjointUnionOf", "disjointWith", "distinctMembers", "equivalentClass", "equivalentProperty",
			"hasKey", "hasSelf", "hasValue", "imports", "incompatibleWith", "intersectionOf", "inverseOf",
			"maxCardinality", "maxQualifiedCardinality", "members", "minCardinality",
			"minQualifiedCardinality", "onClass", "onDataRange", "onDatatype", "onProperties",
			"onProperty", "oneOf", "priorVersion", "propertyChainAxiom", "propertyDisjointWith",
			"qualifiedCardinality", "sameAs", "someValuesFrom", "sourceIndividual", "targetIndividual",
			"targetValue", "topDataProperty", "topObjectProperty", "unionOf", "versionIRI", "versionInfo",
			"withRestrictions",
		},
	},
	{
		name:    XSD,
		uri:     "http://www.w3.org/2001/XMLSchema#",
		imports: []string{RDF, RDFS},
		datatypes: []string{
			"ENTITY", "ID", "IDREF", "NCName", "NMTOKEN", "NOTATION", "Name", "QName", "anySimpleType",
			"anyType", "anyURI", "base64Binary", "boolean", "byte", "date", "dateTime", "dateTimeStamp",
			"decimal", "double", "duration", "float", "gDay", "gMonth", "gMonthDay", "gYear", "gYearMonth",
			"hexBinary", "int", "integer", "language", "long", "negativeInteger", "nonNegativeInteger",
			"nonPositiveInteger", "normalizedString", "positiveInteger", "short", "string", "time", "token",
			"unsignedByte", "unsignedInt", "unsignedLong", "unsignedShort",
		},
		properties: []string{
			"enumeration", "fractionDigits", "length", "maxExclusive", "maxInclusive", "maxLength",
			"minExclusive", "minInclusive", "minLength", "pattern", "totalDigits", "whiteSpace",
		},
	},
	{
		name:    SKOS,
		uri:     "http://www.w3.org/2004/02/skos/core#",
		imports: []string{OWL, RDF, RDFS},
		classes: []string{"Collection", "Concept", "ConceptScheme", "OrderedCollection"},
		properties: []string{
			"altLabel", "broadMatch", "broader", "broaderTransitive", "changeNote", "closeMatch",
			"definition", "editorialNote", "exactMatch", "example", "hasTopConcept", "hiddenLabel",
			"historyNote", "inScheme", "mappingRelation", "member", "memberList", "narrowMatch",
			"narrower", "narrowerTransitive", "notation", "note", "prefLabel", "related", "relatedMatch",
			"scopeNote", "semanticRelation", "topConceptOf",
		},
	},
	{
		name:    DC,
		uri:     "http://purl.org/dc/elements/1.1/",
		imports: []string{RDF, RDFS},
		properties: []string{
			"contributor", "coverage", "creator", "date", "description", "format", "identifier",
			"language", "publisher", "relation", "rights", "source", "subject", "title", "type",
		},
	},
	{
		name:    DCTerms,
		uri:     "http://purl.org/dc/terms/",
		imports: []string{DC, RDF, RDFS},
		classes: []string{
			"Agent", "AgentClass", "BibliographicResource", "FileFormat", "Frequency", "Jurisdiction",
			"LicenseDocument", "LinguisticSystem", "Location", "LocationPeriodOrJurisdiction",
			"MediaType", "MediaTypeOrExtent", "MethodOfAccrual", "MethodOfInstruction", "PeriodOfTime",
			"PhysicalMedium", "PhysicalResource", "Policy", "ProvenanceStatement", "RightsStatement",
			"SizeOrDuration", "Standard",
		},
		properties: []string{
			"abstract", "accessRights", "accrualMethod", "accrualPeriodicity", "accrualPolicy",
			"alternative", "audience", "available", "bibliographicCitation", "conformsTo", "contributor",
			"coverage", "created", "creator", "date", "dateAccepted", "dateCopyrighted", "dateSubmitted",
			"description", "educationLevel", "extent", "format", "hasFormat", "hasPart", "hasVersion",
			"identifier", "instructionalMethod", "isFormatOf", "isPartOf", "isReferencedBy",
			"isReplacedBy", "isRequiredBy", "isVersionOf", "issued", "language", "license", "mediator",
			"medium", "modified", "provenance", "publisher", "references", "relation", "replaces",
			"requires", "rights", "rightsHolder", "source", "spatial", "subject", "tableOfContents",
			"temporal", "title", "type", "valid",
		},
	},
	{
		name:    SDML,
		uri:     "http://sdml.io/sdml-owl.ttl#",
		imports: []string{OWL, RDF, RDFS, SKOS, XSD},
		classes: []string{
			"Annotation", "AnnotationProperty", "Cardinality", "Constraint", "Definition", "Entity",
			"Enumeration", "Event", "FormalConstraint", "IdentifierReference", "Import",
			"ImportStatement", "InformalConstraint", "Member", "MemberImport", "Module", "ModuleImport",
			"Property", "QualifiedIdentifier", "Role", "Structure", "TypeVariant", "Union", "ValueVariant",
		},
		datatypes: []string{
			"Identifier", "binary", "boolean", "decimal", "double", "integer", "iri", "language", "string", "unsigned",
		},
		properties: []string{
			"hasAnnotation", "hasCardinality", "hasDefinition", "hasImportStatement", "hasMember",
			"hasName", "hasTypeVariant", "hasValueVariant", "maxOccurs", "minOccurs", "ordering", "uniqueness",
		},
		equivalents: map[string][2]string{
			"binary":   {XSD, "hexBinary"},
			"boolean":  {XSD, "boolean"},
			"decimal":  {XSD, "decimal"},
			"double":   {XSD, "double"},
			"integer":  {XSD, "integer"},
			"iri":      {XSD, "anyURI"},
			"language": {XSD, "language"},
			"string":   {XSD, "string"},
			"unsigned": {XSD, "nonNegativeInteger"},
		},
	},
}
