package cypher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVertex(t *testing.T) {
	stmt, err := CreateVertex("Person",
		P("first_name", "Hassan Ali"),
		P("last_name", "Khan"),
		P("age", 25),
	)

	require.NoError(t, err)
	assert.Equal(t, `CREATE (n:Person {first_name: "Hassan Ali", last_name: "Khan", age: 25})`, stmt)
}

func TestMatchByProperty(t *testing.T) {
	stmt, err := MatchByProperty("Person", P("last_name", "Khan"))

	require.NoError(t, err)
	assert.Equal(t, `MATCH (n:Person {last_name: "Khan"}) RETURN n`, stmt)
}

func TestCreateVertex_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		label string
		props []Property
	}{
		{name: "label with space", label: "Per son", props: []Property{P("a", 1)}},
		{name: "label injection", label: "Person) DETACH DELETE (n", props: nil},
		{name: "bad key", label: "Person", props: []Property{P("first-name", "x")}},
		{name: "duplicate key", label: "Person", props: []Property{P("a", 1), P("a", 2)}},
		{name: "unsupported value", label: "Person", props: []Property{P("a", []int{1})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateVertex(tt.label, tt.props...)
			assert.Error(t, err)
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{in: "plain", want: `"plain"`},
		{in: `say "hi"`, want: `"say \"hi\""`},
		{in: `back\slash`, want: `"back\\slash"`},
		{in: "line\nbreak", want: `"line\nbreak"`},
		{in: 42, want: "42"},
		{in: int64(-7), want: "-7"},
		{in: 1.5, want: "1.5"},
		{in: true, want: "true"},
		{in: nil, want: "null"},
	}

	for _, tt := range tests {
		got, err := Literal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestLiteral_Rejected(t *testing.T) {
	for _, in := range []interface{}{math.NaN(), math.Inf(1), math.Inf(-1), []int{1}} {
		_, err := Literal(in)
		assert.Error(t, err, "%v", in)
	}

	_, err := CreateVertex("Person", P("score", math.Inf(1)))
	assert.Error(t, err)
}
