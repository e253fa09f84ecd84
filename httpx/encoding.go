package httpx

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strconv"
	"strings"
)

type encodeFunc func([]byte) ([]byte, error)

// Supported content-codings. Only one is ever applied to a response.
var encoders = map[string]encodeFunc{
	"gzip": gzipBytes,
}

// SelectEncoding picks the content-coding for an Accept-Encoding value.
// Tokens are tried in the order the client listed them and the first one
// this server supports wins; q-values are not ranked.
func SelectEncoding(acceptEncoding string) (string, bool) {
	for _, tok := range strings.Split(acceptEncoding, ",") {
		if i := strings.IndexByte(tok, ';'); i >= 0 {
			tok = tok[:i]
		}
		tok = strings.ToLower(strings.TrimSpace(tok))
		if _, ok := encoders[tok]; ok {
			return tok, true
		}
	}
	return "", false
}

// Negotiate applies the content-coding the request asks for to res.
// With no Accept-Encoding header, or none of its tokens supported, res is
// left untouched. Otherwise Content-Encoding is set and a non-empty body is
// replaced by its encoded bytes with Content-Length updated to match.
func Negotiate(r *Request, res *Response) error {
	ae := r.Header.Get("Accept-Encoding")
	if ae == "" {
		return nil
	}
	enc, ok := SelectEncoding(ae)
	if !ok {
		return nil
	}
	res.Header.Set("Content-Encoding", enc)
	if res.Body.Kind() == KindNone {
		return nil
	}
	b, err := encoders[enc](res.Body.Bytes())
	if err != nil {
		return fmt.Errorf("httpx: %s encode: %w", enc, err)
	}
	res.Body = BinaryBody(b)
	res.Header.Set("Content-Length", strconv.Itoa(len(b)))
	return nil
}

// Negotiated wraps h so its responses are content-coded per Negotiate.
func Negotiated(h Handler) Handler {
	return HandlerFunc(func(r *Request) (*Response, error) {
		res, err := h.ServeHTTP(r)
		if err != nil || res == nil {
			return res, err
		}
		if err := Negotiate(r, res); err != nil {
			return nil, err
		}
		return res, nil
	})
}

func gzipBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(p); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
