package domain

import "errors"

var (
	// ErrInternalServerError will throw if any Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the stored item already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput will throw if the given request body or params are not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnauthenticated will throw if the request carries no valid principal
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized will throw if the principal does not own the resource
	ErrUnauthorized = errors.New("not authorized")
	// ErrTooManyRequests will throw if a rate limit was exceeded
	ErrTooManyRequests = errors.New("too many requests")
)
