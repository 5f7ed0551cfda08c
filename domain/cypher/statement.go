// Package cypher renders the small set of openCypher statements the service
// sends to the query endpoint.
package cypher

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Property is a single key/value pair rendered as a map literal entry
type Property struct {
	Key   string
	Value interface{}
}

// P is shorthand for building a Property
func P(key string, value interface{}) Property {
	return Property{Key: key, Value: value}
}

// CreateVertex renders a CREATE statement for one vertex with literal property values
func CreateVertex(label string, props ...Property) (string, error) {
	if err := checkIdentifier("label", label); err != nil {
		return "", err
	}

	body, err := renderMap(props)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("CREATE (n:%s %s)", label, body), nil
}

// MatchByProperty renders a MATCH statement returning every vertex with the
// given label whose property equals the literal value
func MatchByProperty(label string, prop Property) (string, error) {
	if err := checkIdentifier("label", label); err != nil {
		return "", err
	}

	body, err := renderMap([]Property{prop})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("MATCH (n:%s %s) RETURN n", label, body), nil
}

func renderMap(props []Property) (string, error) {
	parts := make([]string, 0, len(props))
	seen := make(map[string]struct{}, len(props))

	for _, p := range props {
		if err := checkIdentifier("property key", p.Key); err != nil {
			return "", err
		}
		if _, dup := seen[p.Key]; dup {
			return "", fmt.Errorf("duplicate property key %q", p.Key)
		}
		seen[p.Key] = struct{}{}

		lit, err := Literal(p.Value)
		if err != nil {
			return "", fmt.Errorf("property %s: %w", p.Key, err)
		}
		parts = append(parts, p.Key+": "+lit)
	}

	return "{" + strings.Join(parts, ", ") + "}", nil
}

// Literal renders a Go value as an openCypher literal
func Literal(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return quote(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", fmt.Errorf("non-finite literal %v", val)
		}
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case nil:
		return "null", nil
	default:
		return "", fmt.Errorf("unsupported literal type %T", v)
	}
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func checkIdentifier(what, s string) error {
	if !identifierPattern.MatchString(s) {
		return fmt.Errorf("invalid %s %q", what, s)
	}
	return nil
}
