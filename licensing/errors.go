package licensing

// ValidationError means the event payload is missing a correlation field the
// operation cannot proceed without. Maps to 400 at the HTTP layer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError means identity resolution produced no profile. Maps to 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }
