package addressbook

import "errors"

// ErrInvalidAddress is returned when a string fails base58 address parsing.
var ErrInvalidAddress = errors.New("invalid address")
