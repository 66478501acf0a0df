package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSlugTaken          = errors.New("a product with this name/slug already exists. Rename it slightly")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)
