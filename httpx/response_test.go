package httpx

import (
	"bytes"
	"testing"
)

func wire(t *testing.T, res *Response) string {
	t.Helper()
	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestResponse_CreatedIsBare(t *testing.T) {
	res := TextResponse(StatusCreated, "ignored")
	res.Header.Set("X-Extra", "1")
	if got := wire(t, res); got != "HTTP/1.1 201 Created\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestResponse_Text(t *testing.T) {
	res := TextResponse(StatusOK, "OK")
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 2\r\n\r\nOK"
	if got := wire(t, res); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestResponse_Binary(t *testing.T) {
	res := BinaryResponse(StatusOK, []byte{0, 1, 2})
	res.Proto = "HTTP/1.0"
	want := "HTTP/1.0 200 OK\r\nContent-Type: application/octet-stream\r\nContent-Length: 3\r\n\r\n\x00\x01\x02"
	if got := wire(t, res); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestResponse_EmptyBody(t *testing.T) {
	if got := wire(t, NewResponse(StatusOK)); got != "HTTP/1.1 200 OK\r\n\r\n" {
		t.Fatalf("got %q", got)
	}
}

func TestBody(t *testing.T) {
	var zero Body
	if zero.Kind() != KindNone || zero.Len() != 0 || zero.Bytes() != nil || zero.String() != "" {
		t.Fatalf("zero body = %+v", zero)
	}
	tb := TextBody("héllo")
	if tb.Kind() != KindText || tb.Len() != 6 {
		t.Fatalf("text body len=%d", tb.Len())
	}
	bb := BinaryBody([]byte("x"))
	if bb.Kind() != KindBinary || bb.String() != "x" {
		t.Fatalf("binary body=%+v", bb)
	}
}
