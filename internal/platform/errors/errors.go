package apperrors

import "errors"

// ErrInvalidInput marks local validation failures so callers can distinguish
// them from remote rejections with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
