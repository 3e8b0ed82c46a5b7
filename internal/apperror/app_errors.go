package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidTheme    = errors.New("invalid theme")
)
