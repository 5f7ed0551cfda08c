// Package person models the Person vertex the service writes to and reads
// from the graph.
//
// Every call to a create statement inserts a new vertex; nothing here
// deduplicates, so repeated invocations leave identical copies in the store.
package person

import (
	"neptune-lambda/domain/cypher"
	"neptune-lambda/pkg/utils"
)

// Label is the vertex label used for every person
const Label = "Person"

// Property names as stored on the vertex
const (
	PropFirstName = "first_name"
	PropLastName  = "last_name"
	PropAge       = "age"
)

// Person is the property set of a Person vertex
type Person struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Age       int    `json:"age" validate:"gte=0,lte=150"`
}

// DefaultPerson returns the fixed person created on every invocation
func DefaultPerson() Person {
	return Person{
		FirstName: "Hassan Ali",
		LastName:  "Khan",
		Age:       25,
	}
}

// Validate checks the person's fields
func (p Person) Validate() error {
	return utils.ValidateStruct(p)
}

// Properties returns the vertex properties in storage order
func (p Person) Properties() []cypher.Property {
	return []cypher.Property{
		cypher.P(PropFirstName, p.FirstName),
		cypher.P(PropLastName, p.LastName),
		cypher.P(PropAge, p.Age),
	}
}

// CreateStatement renders the statement inserting this person as a new vertex
func (p Person) CreateStatement() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return cypher.CreateVertex(Label, p.Properties()...)
}

// MatchByLastNameStatement renders the statement fetching every person with
// the same last name
func (p Person) MatchByLastNameStatement() (string, error) {
	return cypher.MatchByProperty(Label, cypher.P(PropLastName, p.LastName))
}
