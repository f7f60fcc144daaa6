package chat

// ValidationError marks a client-caused failure. Transports return its
// message verbatim with a client-error status.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	ErrEmptyMessage   = &ValidationError{"Message cannot be empty."}
	ErrMessageTooLong = &ValidationError{"Message is too long. Please limit to 2000 characters."}
)
