package models

// Resource is a bookable staff member. Each resource owns exactly one
// calendar document keyed by its ID.
type Resource struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Role   string `bson:"role,omitempty" json:"role,omitempty"`
	Active bool   `bson:"active" json:"active"`
}
