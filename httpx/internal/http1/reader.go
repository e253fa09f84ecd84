package http1

import (
	"bytes"
	"errors"
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
)

// ErrMalformedRequest reports a request line that is not exactly
// "METHOD SP TARGET SP VERSION" or whose target does not start with "/".
var ErrMalformedRequest = errors.New("http1: malformed request")

var headEnd = []byte("\r\n\r\n")

// Field is a single header line. Keys are stored canonicalized.
type Field struct {
	Key   string
	Value string
}

// ParsedRequest is a minimal representation parsed from the wire.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	Header     []Field
	Body       []byte
}

// Decode parses one request out of a single read. The head and the body are
// split at the first empty line before any header is looked at, so a body
// that itself contains CRLFs is kept byte for byte.
//
// Header lines without a colon are skipped. A repeated header keeps its
// first position and takes the last value.
func Decode(raw []byte) (*ParsedRequest, error) {
	head, body := raw, []byte(nil)
	if i := bytes.Index(raw, headEnd); i >= 0 {
		head, body = raw[:i], raw[i+len(headEnd):]
	}
	lines := strings.Split(string(head), "\r\n")

	parts := strings.Fields(lines[0])
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: request line %q", ErrMalformedRequest, lines[0])
	}
	if !strings.HasPrefix(parts[1], "/") {
		return nil, fmt.Errorf("%w: target %q", ErrMalformedRequest, parts[1])
	}
	pr := &ParsedRequest{
		Method:     parts[0],
		RequestURI: parts[1],
		Proto:      parts[2],
	}
	for _, line := range lines[1:] {
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		k := strings.TrimSpace(line[:i])
		if k == "" {
			continue
		}
		pr.Header = SetField(pr.Header, k, strings.TrimSpace(line[i+1:]))
	}

	if v := GetField(pr.Header, "Content-Length"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(body) {
			body = body[:n]
		}
	}
	// raw belongs to the connection's read buffer and is reused.
	pr.Body = bytes.Clone(body)
	return pr, nil
}

// CanonicalKey returns the canonical form of a header name.
func CanonicalKey(k string) string {
	return textproto.CanonicalMIMEHeaderKey(k)
}

// GetField returns the value of the first field named k, or "".
func GetField(fields []Field, k string) string {
	if i := indexField(fields, k); i >= 0 {
		return fields[i].Value
	}
	return ""
}

// SetField replaces the value of the field named k in place, or appends it.
func SetField(fields []Field, k, v string) []Field {
	ck := CanonicalKey(k)
	if i := indexField(fields, ck); i >= 0 {
		fields[i].Value = v
		return fields
	}
	return append(fields, Field{Key: ck, Value: v})
}

// DelField removes every field named k.
func DelField(fields []Field, k string) []Field {
	ck := CanonicalKey(k)
	out := fields[:0]
	for _, f := range fields {
		if f.Key != ck {
			out = append(out, f)
		}
	}
	return out
}

func indexField(fields []Field, k string) int {
	ck := CanonicalKey(k)
	for i, f := range fields {
		if f.Key == ck {
			return i
		}
	}
	return -1
}
