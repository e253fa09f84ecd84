// Package routes holds the endpoints the server exposes.
package routes

import (
	"net/url"
	"strings"

	"dqx0.com/go/tinyhttp/httpx"
)

// New returns the router for all endpoints. dir is the base directory of
// /files/; an empty dir makes every file request fail.
func New(dir string) *httpx.Router {
	m := httpx.NewRouter()
	m.HandleFunc("/", root)
	m.HandleFunc("/user-agent", userAgent)
	m.Handle("/files", &Files{Dir: dir})
	m.HandlePrefix("/echo/", httpx.Negotiated(httpx.HandlerFunc(echo)))
	return m
}

func root(*httpx.Request) (*httpx.Response, error) {
	return httpx.TextResponse(httpx.StatusOK, "OK"), nil
}

// echo answers with the percent-decoded rest of the path after /echo/.
func echo(r *httpx.Request) (*httpx.Response, error) {
	s, err := url.PathUnescape(strings.TrimPrefix(r.Path(), "/echo/"))
	if err != nil {
		return httpx.TextResponse(httpx.StatusBadRequest, "400 Bad Request"), nil
	}
	return httpx.TextResponse(httpx.StatusOK, s), nil
}

func userAgent(r *httpx.Request) (*httpx.Response, error) {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		ua = "Unknown"
	}
	return httpx.TextResponse(httpx.StatusOK, ua), nil
}
