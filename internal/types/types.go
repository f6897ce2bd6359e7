// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Person is a row of the people table.
//
// ID is a pointer so that a Person which has not been persisted yet
// encodes as {"id": null}. Every Person returned by the storage layer
// carries a non-nil ID.
type Person struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// PersonInput is the request body accepted by POST and PUT.
//
// Pointers let validator tell "missing" apart from the zero value:
// an empty name or an age of 0 are valid, an absent field is not.
// Any "id" sent by the client is ignored.
type PersonInput struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age"  validate:"required"`
}

// Person converts a validated input into a Person without an ID.
func (in PersonInput) Person() Person {
	var p Person
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	return p
}
