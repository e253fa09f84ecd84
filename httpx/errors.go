package httpx

import (
	"errors"

	"dqx0.com/go/tinyhttp/httpx/internal/http1"
)

var (
	// ErrMalformedRequest is returned for a request line that is not
	// exactly three tokens, or a target that does not start with "/".
	ErrMalformedRequest = http1.ErrMalformedRequest
	ErrServerClosed     = errors.New("httpx: server closed")
)
