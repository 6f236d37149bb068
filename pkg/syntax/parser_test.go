// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"errors"
	"strings"
	"testing"

	"github.com/sdml-io/sdml/pkg/source"
)

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	root, err := NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return root
}

func TestParser_SExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty module",
			src:  "module example is end",
			want: "(module name: (identifier) body: (module_body))",
		},
		{
			name: "base and version",
			src:  `module example <http://example.com/> version "1.0" <http://example.com/v1> is end`,
			want: "(module name: (identifier) base: (iri) version_info: (quoted_string) version_uri: (iri) body: (module_body))",
		},
		{
			name: "imports",
			src:  "module m is import [ xsd skos:prefLabel ] end",
			want: "(module name: (identifier) body: (module_body (import_statement " +
				"(module_import name: (identifier)) " +
				"(member_import name: (qualified_identifier module: (identifier) member: (identifier))))))",
		},
		{
			name: "annotation",
			src:  `module m is @skos:prefLabel = "M"@en end`,
			want: "(module name: (identifier) body: (module_body (annotation (annotation_property " +
				"name: (identifier_reference (qualified_identifier module: (identifier) member: (identifier))) " +
				"value: (value (simple_value (string value: (quoted_string) language: (language_tag))))))))",
		},
		{
			name: "datatype",
			src:  "module m is datatype Code <- string end",
			want: "(module name: (identifier) body: (module_body (definition (data_type_def name: (identifier) base: (builtin_simple_type)))))",
		},
		{
			name: "cardinality",
			src:  "module m is structure S is items -> integer {0..} end end",
			want: "(module name: (identifier) body: (module_body (definition (structure_def name: (identifier) body: (structure_body " +
				"(member_by_value name: (identifier) target: (type_reference (builtin_simple_type)) " +
				"target_cardinality: (cardinality_expression min: (unsigned) range: (range))))))))",
		},
		{
			name: "property role member",
			src:  "module m is entity E is identity id in ident end end",
			want: "(module name: (identifier) body: (module_body (definition (entity_def name: (identifier) body: (entity_body " +
				"identity: (identity_member name: (identifier) property: (identifier_reference (identifier))))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := mustParse(t, tt.src)
			if got := SExpression(root); got != tt.want {
				t.Errorf("SExpression() =\n%s\nwant\n%s", got, tt.want)
			}
			if HasError(root) {
				t.Error("HasError() = true, want false")
			}
		})
	}
}

func TestParser_FullModuleHasNoErrors(t *testing.T) {
	t.Parallel()

	src := `; A sample module.
module example <https://example.com/ns/example#> version "2.1" is

  import [ xsd dc:description ]
  import skos

  @skos:prefLabel = "Example"@en
  @dc:description = [ "one" "two"@fr ]

  assert no_empty_names = "names are never empty"@en

  datatype Code <- xsd:string is
    @xsd:maxLength = 10
  end

  entity Customer is
    identity id -> CustomerId
    ; the display name
    name -> string
    ref accounts {1..} -> Account {0..}
    tags -> Tag {0..5}
    group
      @skos:note = "contact details"
      email -> string
    end
    assert has_account is
      def min_accounts = 1
      forall a in self.accounts, count(a) >= min_accounts and not (a = self)
    end
  end

  entity Later

  enum Status of
    Active = 1
    Closed = 2 is @skos:prefLabel = "closed" end
  end

  event Created source Customer is
    at -> Timestamp
  end

  structure Tag is
    label -> string
    weight -> double
  end

  union Shape of
    Circle
    geo:Polygon as Polygon
  end

  property employer is
    role -> Company
    inverse {0..} -> Person {1}
  end

  rdf Thing is
    @rdf:type = rdfs:Class
  end
end
`
	root := mustParse(t, src)
	if HasError(root) {
		t.Fatalf("HasError() = true for %s", SExpression(root))
	}
	body := root.ChildByFieldName(FieldBody)
	var defs int
	for _, c := range body.NamedChildren() {
		if c.Kind() == KindDefinition {
			defs++
		}
	}
	if defs != 9 {
		t.Errorf("definitions = %d, want 9", defs)
	}
}

func TestParser_ErrorRecovery(t *testing.T) {
	t.Parallel()

	src := "module m is structure S is name -> ; oops\n end entity E end"
	root := mustParse(t, src)
	if !HasError(root) {
		t.Fatalf("HasError() = false, want true: %s", SExpression(root))
	}
	if !strings.Contains(SExpression(root), "ERROR") {
		t.Errorf("expected an ERROR node in %s", SExpression(root))
	}
}

func TestParser_MissingName(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "module is end")
	name := root.ChildByFieldName(FieldName)
	if name == nil || !name.IsMissing() {
		t.Fatalf("name = %v, want a missing identifier", name)
	}
}

func TestParser_NotAModule(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "entity E is end")
	if !root.IsError() {
		t.Errorf("root kind = %s, want ERROR", root.Kind())
	}
}

func TestParser_Comments(t *testing.T) {
	t.Parallel()

	src := "; header\nmodule m is\n  ; about S\n  structure S\nend\n"
	root := mustParse(t, src)
	if root.NamedChildren()[0].Kind() != KindLineComment {
		t.Errorf("first child = %s, want line_comment", root.NamedChildren()[0].Kind())
	}
	body := root.ChildByFieldName(FieldBody)
	kinds := []string{}
	for _, c := range body.NamedChildren() {
		kinds = append(kinds, c.Kind())
	}
	if strings.Join(kinds, ",") != "line_comment,definition" {
		t.Errorf("body children = %v", kinds)
	}
	if got := Text(body.NamedChildren()[0], []byte(src)); got != "; about S" {
		t.Errorf("comment text = %q", got)
	}
}

func TestParser_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Parse([]byte{0xff, 0xfe})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Parse() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestTreeNode_Builders(t *testing.T) {
	t.Parallel()

	name := NewNode(KindIdentifier, source.MustSpan(7, 14))
	root := NewNode(KindModule, source.MustSpan(0, 21),
		Field(FieldName, name),
		Unnamed(NewAnonymous("is", source.MustSpan(15, 17))),
		Field(FieldBody, NewNode(KindModuleBody, source.MustSpan(15, 21))),
	)
	if root.ChildByFieldName(FieldName) != Node(name) {
		t.Error("ChildByFieldName(name) did not return the name node")
	}
	if root.ChildByFieldName(FieldBase) != nil {
		t.Error("ChildByFieldName(base) should be nil")
	}
	if n := len(root.NamedChildren()); n != 2 {
		t.Errorf("NamedChildren() len = %d, want 2", n)
	}
	if root.FieldNameOf(name) != FieldName {
		t.Errorf("FieldNameOf(name) = %q", root.FieldNameOf(name))
	}
}

func TestLexer_Tokens(t *testing.T) {
	t.Parallel()

	toks := tokenize([]byte(`a:b <http://x.org/> "s"@en-GB -1 2.5 3E10 {0..1} -> <- x <= 4`))
	var kinds []tokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}
	want := []tokenKind{
		tokQualified, tokIRI, tokString, tokLanguage, tokInteger, tokDecimal, tokDouble,
		tokPunct, tokInteger, tokPunct, tokInteger, tokPunct, tokPunct, tokPunct,
		tokIdent, tokPunct, tokInteger, tokEOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("tokens = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d (%q) kind = %d, want %d", i, toks[i].text, kinds[i], want[i])
		}
	}
}
