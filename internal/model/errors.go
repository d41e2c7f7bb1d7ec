package model

import "errors"

// Validation errors. Both are raised before any sample is generated.
var (
	ErrUnknownChemistry = errors.New("unknown chemistry")
	ErrInvalidInput     = errors.New("invalid input")
)
