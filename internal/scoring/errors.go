package scoring

import "errors"

var (
	// ErrMatchNotFound is returned when an operation references a match that
	// does not exist. No state is mutated.
	ErrMatchNotFound = errors.New("match not found")

	// ErrPlayerNotFound is returned when an operation references a player that
	// is not part of the match roster.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrMatchCompleted is returned when a mutation is attempted on a match in
	// the terminal completed state.
	ErrMatchCompleted = errors.New("match already completed")
)

// ValidationError signals a malformed request. It is caught at the transport
// boundary and turned into an error acknowledgment to the submitting client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
