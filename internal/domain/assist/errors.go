package assist

import "errors"

var (
	ErrRateLimited   = errors.New("generation quota exhausted for this hour")
	ErrNotConfigured = errors.New("no generation provider configured")
	ErrEmptyPrompt   = errors.New("prompt is empty")
)
