package auth

import "errors"

var (
	InvalidUsernameFormatErr = errors.New("invalid username format")
	MissingCredentialsErr    = errors.New("username and password are required")
	AuthenticationFailedErr  = errors.New("authentication failed")
)
