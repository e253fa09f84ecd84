package http1

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteResponse writes a complete response in one buffered pass.
//
// A 201 Created response is written as the status line followed by an empty
// line: hdr and body are ignored.
func WriteResponse(w io.Writer, proto string, status int, hdr []Field, body []byte) error {
	if proto == "" {
		proto = "HTTP/1.1"
	}
	bw := bufio.NewWriterSize(w, 512+len(body))
	if _, err := fmt.Fprintf(bw, "%s %d %s\r\n", proto, status, Reason(status)); err != nil {
		return err
	}
	if status == 201 {
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
		return bw.Flush()
	}
	for _, f := range hdr {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Key, sanitizeHeaderValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Reason returns the reason phrase for code. Codes outside the table
// map to "Not Found".
func Reason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 400:
		return "Bad Request"
	default:
		return "Not Found"
	}
}

func sanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	// Remove CR/LF and other control chars except HTAB
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
