package services

import "errors"

// Domain errors. Callers wrap them with fmt.Errorf("%w: ...") for context
// and match with errors.Is; the HTTP layer maps each to a status code.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateLike      = errors.New("post already liked")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrSelfNotify         = errors.New("actor and recipient are the same user")
	ErrNotFollowing       = errors.New("you are not following this user")
	ErrPermission         = errors.New("permission denied")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("not configured")
)
