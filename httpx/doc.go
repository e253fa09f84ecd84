// Package httpx is a small HTTP/1.1 server that handles one request per
// socket read.
//
// A request is decoded from the bytes of a single read, dispatched by a
// Router on its first path segment, and answered with a Response value
// that is serialized exactly once. Responses may be gzip-encoded when the
// client asks for it (see Negotiate).
//
// Quick start:
//
//	m := httpx.NewRouter()
//	m.HandleFunc("/", func(r *httpx.Request) (*httpx.Response, error) {
//	    return httpx.TextResponse(httpx.StatusOK, "OK"), nil
//	})
//	s := &httpx.Server{Addr: "localhost:4221", Handler: m}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpx
