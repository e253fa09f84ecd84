package httpx

import (
	"context"
	"strings"
)

// Request is a decoded request. A server builds one per read and drops it
// once the handler has returned.
//
// Target is the raw request target as sent, query string included, and
// always starts with "/".
type Request struct {
	Method string
	Target string
	Proto  string
	Header Header
	Body   string
	// RequestID is generated by the server for every request.
	RequestID string
	// CorrelationID is the peer supplied X-Request-Id, if any.
	CorrelationID string
	ctx           context.Context
}

// Path returns Target without its query string.
func (r *Request) Path() string {
	if i := strings.IndexByte(r.Target, '?'); i >= 0 {
		return r.Target[:i]
	}
	return r.Target
}

// Context returns the request's context. If nil, returns Background.
func (r *Request) Context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func WithContext(r *Request, ctx context.Context) *Request {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}
