package id

import "github.com/google/uuid"

// Generator creates opaque identifiers for client-assigned records,
// such as locally synthesized chat messages.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
