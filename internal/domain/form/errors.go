package form

import "errors"

var (
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNotAvailable = errors.New("form not available")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrNoFields         = errors.New("form has no fields")
	ErrUnsupportedField = errors.New("unsupported field type")
	ErrInvalidField     = errors.New("invalid field definition")
)
