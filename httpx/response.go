package httpx

import (
	"io"
	"strconv"

	"dqx0.com/go/tinyhttp/httpx/internal/http1"
)

const (
	StatusOK         = 200
	StatusCreated    = 201
	StatusBadRequest = 400
	StatusNotFound   = 404
)

// Response is built by a handler and written once by the server.
// A 201 Created response is always written without headers or body.
type Response struct {
	StatusCode int
	// Proto defaults to the request's protocol token, or HTTP/1.1.
	Proto  string
	Header Header
	Body   Body
}

// NewResponse returns a response with the given status and no body.
func NewResponse(status int) *Response {
	return &Response{StatusCode: status}
}

// TextResponse returns a text/plain response with Content-Length set.
func TextResponse(status int, s string) *Response {
	res := &Response{StatusCode: status, Body: TextBody(s)}
	res.Header.Set("Content-Type", "text/plain")
	res.Header.Set("Content-Length", strconv.Itoa(len(s)))
	return res
}

// BinaryResponse returns an application/octet-stream response with
// Content-Length set.
func BinaryResponse(status int, b []byte) *Response {
	res := &Response{StatusCode: status, Body: BinaryBody(b)}
	res.Header.Set("Content-Type", "application/octet-stream")
	res.Header.Set("Content-Length", strconv.Itoa(len(b)))
	return res
}

// Write serializes res to w.
func (res *Response) Write(w io.Writer) error {
	return http1.WriteResponse(w, res.Proto, res.StatusCode, res.Header, res.Body.Bytes())
}

// Reason returns the reason phrase written for status.
func Reason(status int) string {
	return http1.Reason(status)
}
