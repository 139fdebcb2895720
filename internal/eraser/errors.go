package eraser

import "errors"

var (
	ErrUnauthenticated = errors.New("eraser: unauthenticated")
	ErrForbidden       = errors.New("eraser: forbidden")
	ErrInvalidRequest  = errors.New("eraser: invalid request")
	ErrDeletionFailed  = errors.New("eraser: account deletion failed")
)
