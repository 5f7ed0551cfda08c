package person

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vertex is a node as serialized in an openCypher result record
type Vertex struct {
	ID         string                 `json:"~id"`
	EntityType string                 `json:"~entityType"`
	Labels     []string               `json:"~labels"`
	Properties map[string]interface{} `json:"~properties"`
}

// HasLabel reports whether the vertex carries the given label
func (v Vertex) HasLabel(label string) bool {
	for _, l := range v.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Person maps the vertex properties back onto a Person
func (v Vertex) Person() (Person, error) {
	var p Person

	if !v.HasLabel(Label) {
		return Person{}, fmt.Errorf("vertex %s: not labelled %s", v.ID, Label)
	}

	if s, ok := v.Properties[PropFirstName].(string); ok {
		p.FirstName = s
	}
	if s, ok := v.Properties[PropLastName].(string); ok {
		p.LastName = s
	}

	switch age := v.Properties[PropAge].(type) {
	case float64:
		if age != math.Trunc(age) {
			return Person{}, fmt.Errorf("vertex %s: non-integer age %v", v.ID, age)
		}
		p.Age = int(age)
	case json.Number:
		n, err := age.Int64()
		if err != nil {
			return Person{}, fmt.Errorf("vertex %s: %w", v.ID, err)
		}
		p.Age = int(n)
	case nil:
	default:
		return Person{}, fmt.Errorf("vertex %s: unexpected age type %T", v.ID, age)
	}

	return p, nil
}

// DecodeVertices extracts the vertex bound to column from each result record.
// Records without the column are skipped.
func DecodeVertices(records []json.RawMessage, column string) ([]Vertex, error) {
	vertices := make([]Vertex, 0, len(records))

	for i, rec := range records {
		var row map[string]json.RawMessage
		if err := json.Unmarshal(rec, &row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		raw, ok := row[column]
		if !ok {
			continue
		}

		var v Vertex
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("record %d column %s: %w", i, column, err)
		}
		vertices = append(vertices, v)
	}

	return vertices, nil
}
