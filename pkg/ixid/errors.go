package ixid

import (
	"errors"
	"fmt"
)

// ErrInvalidToken indicates a token that is not valid base64.
var ErrInvalidToken = errors.New("ixid: invalid token")

// DecodeError reports a token that could not be base64-decoded.
type DecodeError struct {
	Token string // The token as found in the URL
	Err   error  // Underlying base64 error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ixid: cannot decode token %q: %v", e.Token, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidToken, e.Err}
}
