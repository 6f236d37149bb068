// SPDX-License-Identifier: MPL-2.0

package printer

import (
	"bytes"
	"testing"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/parse"
	"github.com/sdml-io/sdml/pkg/syntax"
)

func mustParse(t *testing.T, text string) *model.Module {
	t.Helper()
	sink := diag.NewCollector()
	m, err := parse.ParseSource([]byte(text), 0, syntax.NewParser(), sink)
	if err != nil {
		t.Fatalf("parse failed: %v (diagnostics %v)\n%s", err, sink.Codes(), text)
	}
	return m
}

func TestString_EmptyModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "module example is end", "module example is end\n"},
		{"base", "module example <http://example.com/> is end", "module example <http://example.com/> is end\n"},
		{"normalized base", "module example <http://example.com> is end", "module example <http://example.com/> is end\n"},
		{
			"version",
			`module example <http://example.com/> version "1.0" <http://example.com/v1/> is end`,
			`module example <http://example.com/> version "1.0" <http://example.com/v1/> is end` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := String(mustParse(t, tt.text)); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite_Layout(t *testing.T) {
	t.Parallel()

	m := mustParse(t, `module m is import xsd import [ rdfs skos:prefLabel ] @rdfs:label = "m"@en
structure S is a -> string b -> integer {0..} end end`)
	want := `module m is
    import xsd
    import [ rdfs skos:prefLabel ]

    @rdfs:label = "m"@en

    structure S is
        a -> string
        b -> integer {0..}
    end
end
`
	var buf bytes.Buffer
	if err := Write(&buf, m, Options{Indent: 4}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestString_Members(t *testing.T) {
	t.Parallel()

	m := mustParse(t, `module m is
  entity Person is
    identity id -> string
    name -> string {1}
    ref employer -> Company {0..1}
    ref friends {0..} -> Person {1..}
    role in hasRole
    group
      nick -> string {0..1}
    end
  end
end`)
	want := `module m is
  entity Person is
    identity id -> string
    name -> string
    ref employer -> Company
    ref friends {0..} -> Person {1..}
    role in hasRole
    group
      nick -> string {0..1}
    end
  end
end
`
	if got := String(m); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestString_EnumValues(t *testing.T) {
	t.Parallel()

	m := mustParse(t, "module m is enum E of A B = 10 C = 3 end end")
	want := `module m is
  enum E of
    A
    B = 10
    C
  end
end
`
	if got := String(m); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestString_FixedPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"imports", `module m <http://example.com/m/> is
  import [ xsd rdfs:label ]
  import other <http://example.com/other/v1/>
end`},
		{"annotations", `module m is
  @a = "label"@en
  @b = 42
  @c = 1.5
  @d = 1.5e3
  @e = true
  @f = <http://example.com/x>
  @g = xsd:integer(3)
  @h = [ 1 "two" Three ]
  @i = rdfs:Class
end`},
		{"datatype", `module m is
  datatype Name <- string is @xsd:maxLength = 20 end
  datatype Code <- xsd:token
end`},
		{"entity", `module m is
  entity Person from other:Person is
    identity id -> integer
    @rdfs:comment = "someone"
    name -> Name {1..2} is @rdfs:label = "name"@en end
    ref employer -> Company
    group
      @skos:note = "contact details"
      email -> string {0..}
    end
  end
end`},
		{"event and structure", `module m is
  structure Empty is end
  structure Pending
  event Moved source Vehicle is
    to -> unknown
  end
end`},
		{"enum and union", `module m is
  enum Color of
    @rdfs:label = "colors"
    Red
    Green = 5 is @rdfs:label = "green"@en end
  end
  union Party of
    Person
    other:Company as Business
  end
end`},
		{"property and rdf", `module m is
  property holds is
    holder {0..} -> Person {1..}
    thing -> Thing
  end
  rdf Thing is @rdfs:comment = "a thing" end
end`},
		{"constraints", `module m is
  structure S is
    items -> string {0..}
    assert positive is
      def limit = 10
      forall x in self.items, x.count > 0 and not x.count >= limit
    end
    assert named = "every item has a name"@en
    assert either is
      (exists y in self.items, y = 1) or count(self.items) /= 0
    end
  end
end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			first := String(mustParse(t, tt.text))
			second := String(mustParse(t, first))
			if first != second {
				t.Errorf("printing is not a fixed point:\nfirst\n%s\nsecond\n%s", first, second)
			}
		})
	}
}
