package carbon

import "errors"

var (
	// ErrInvalidInput is returned when an input cannot be calculated, such as a
	// missing diet choice or a transport mode absent from the factor table.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFactors is returned when a factor or equivalence table fails validation.
	ErrInvalidFactors = errors.New("invalid emission factors")
)
