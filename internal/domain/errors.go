package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotEnrolled      = errors.New("not enrolled")
	ErrUnauthorized     = errors.New("unauthorized")
)
