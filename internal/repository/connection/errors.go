package connection

import "errors"

var (
	ErrNotFound      = errors.New("viewer not found")
	ErrAlreadyExists = errors.New("viewer already exists")
)
