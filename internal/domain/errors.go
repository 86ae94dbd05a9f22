package domain

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInvalidAccountID  = errors.New("account id must be a positive integer")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrCorruptedSnapshot = errors.New("corrupted directory snapshot")
)
