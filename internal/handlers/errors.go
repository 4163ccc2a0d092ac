package handlers

import "errors"

var (
	errIndexOutOfRange = errors.New("entry index out of range")
	errNotRepeating    = errors.New("section has no repeating entries")
)
