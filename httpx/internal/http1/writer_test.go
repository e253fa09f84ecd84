package http1

import (
	"bytes"
	"testing"
)

func write(t *testing.T, status int, hdr []Field, body []byte) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteResponse(&buf, "HTTP/1.1", status, hdr, body); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	return buf.String()
}

func TestWriteResponse_OK(t *testing.T) {
	hdr := []Field{{"Content-Type", "text/plain"}, {"Content-Length", "2"}}
	got := write(t, 200, hdr, []byte("OK"))
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 2\r\n\r\nOK"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteResponse_CreatedDropsHeadersAndBody(t *testing.T) {
	got := write(t, 201, []Field{{"Content-Length", "5"}}, []byte("hello"))
	if got != "HTTP/1.1 201 Created\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteResponse_NoHeadersNoBody(t *testing.T) {
	if got := write(t, 404, nil, nil); got != "HTTP/1.1 404 Not Found\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteResponse_BinaryBodyVerbatim(t *testing.T) {
	body := []byte{0x1f, 0x8b, 0x00, '\r', '\n', 0xff}
	got := write(t, 200, nil, body)
	if !bytes.HasSuffix([]byte(got), body) {
		t.Fatalf("body not appended verbatim: %q", got)
	}
}

func TestWriteResponse_SanitizesHeaderValue(t *testing.T) {
	got := write(t, 200, []Field{{"X-Evil", "a\r\nSet-Cookie: b"}}, nil)
	if got != "HTTP/1.1 200 OK\r\nX-Evil: aSet-Cookie: b\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteResponse_EchoesProto(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, "HTTP/1.0", 200, nil, nil); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if buf.String() != "HTTP/1.0 200 OK\r\n\r\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestReason(t *testing.T) {
	cases := map[int]string{200: "OK", 201: "Created", 400: "Bad Request", 404: "Not Found", 500: "Not Found", 302: "Not Found"}
	for code, want := range cases {
		if got := Reason(code); got != want {
			t.Fatalf("Reason(%d)=%q, want %q", code, got, want)
		}
	}
}
