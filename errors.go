package flock

// ValidationError rejects caller input. Description is safe to show to the
// caller, unlike internal errors which the transport layer keeps private.
type ValidationError struct {
	Description string
}

func (e ValidationError) Error() string {
	return e.Description
}
