package domain

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrUnknownProvider = errors.New("unknown provider")
)
