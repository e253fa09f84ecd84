package httpx_test

import (
	"bytes"
	"fmt"

	"dqx0.com/go/tinyhttp/httpx"
)

func wireString(res *httpx.Response) string {
	var buf bytes.Buffer
	_ = res.Write(&buf)
	return buf.String()
}

// ExampleHeader shows basic header operations.
func ExampleHeader() {
	var h httpx.Header
	h.Add("X-Foo", "a")
	h.Set("Content-Type", "text/plain")
	h.Set("x-foo", "b") // replaces in place
	fmt.Println(h.Get("x-foo"))
	fmt.Println(len(h))
	h.Del("X-Foo")
	fmt.Println(h.Get("X-Foo"))
	// Output:
	// b
	// 2
	//
}

func ExampleSelectEncoding() {
	enc, ok := httpx.SelectEncoding("invalid, gzip, br")
	fmt.Println(enc, ok)
	_, ok = httpx.SelectEncoding("br, deflate")
	fmt.Println(ok)
	// Output:
	// gzip true
	// false
}

func ExampleRouteKey() {
	fmt.Println(httpx.RouteKey("/"))
	fmt.Println(httpx.RouteKey("/echo/abc?x=1"))
	fmt.Println(httpx.RouteKey("/files/dir/a.txt"))
	// Output:
	// /
	// /echo
	// /files
}

func ExampleResponse_Write() {
	res := httpx.TextResponse(httpx.StatusOK, "OK")
	fmt.Printf("%q\n", wireString(res))
	created := httpx.TextResponse(httpx.StatusCreated, "dropped")
	fmt.Printf("%q\n", wireString(created))
	// Output:
	// "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 2\r\n\r\nOK"
	// "HTTP/1.1 201 Created\r\n\r\n"
}
