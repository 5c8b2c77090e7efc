package registry

// modelNotFoundError is returned when a requested model id is not in the registry.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound returns an error for a missing model id.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

// unsupportedFormatError signals a metadata file this package cannot read.
type unsupportedFormatError struct{ path string }

func (e unsupportedFormatError) Error() string {
	return "unsupported model metadata (want .gguf or config.json): " + e.path
}

// IsUnsupportedFormat reports whether err was caused by an unknown file type.
func IsUnsupportedFormat(err error) bool {
	_, ok := err.(unsupportedFormatError)
	return ok
}
