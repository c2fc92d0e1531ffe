package model

import "errors"

var (
	ErrCipherNotFound = errors.New("cipher not found")
	ErrUnauthorized   = errors.New("unauthorized")
)
