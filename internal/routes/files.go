package routes

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dqx0.com/go/tinyhttp/httpx"
)

// ErrNoBaseDirectory is returned by Files when no directory was configured.
var ErrNoBaseDirectory = errors.New("routes: no base directory for /files")

// Files serves GET and stores POST bodies under Dir.
//
// Concurrent POSTs to one name are not coordinated: the last write to
// finish wins.
type Files struct {
	Dir string
}

func (f *Files) ServeHTTP(r *httpx.Request) (*httpx.Response, error) {
	name, ok := fileName(r.Path())
	if !ok {
		return httpx.NotFound(r)
	}
	if f.Dir == "" {
		return nil, ErrNoBaseDirectory
	}
	p := filepath.Join(f.Dir, filepath.FromSlash(name))

	switch r.Method {
	case "GET":
		return f.get(r, p)
	case "POST":
		return f.post(r, p)
	}
	return httpx.NotFound(r)
}

func (f *Files) get(r *httpx.Request, p string) (*httpx.Response, error) {
	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.Mode().IsRegular()) {
		return httpx.NotFound(r)
	}
	if err != nil {
		return nil, fmt.Errorf("routes: stat %s: %w", p, err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("routes: read %s: %w", p, err)
	}
	return httpx.BinaryResponse(httpx.StatusOK, b), nil
}

// post always answers 201; a failed write is only logged.
func (f *Files) post(r *httpx.Request, p string) (*httpx.Response, error) {
	if err := os.WriteFile(p, []byte(r.Body), 0o644); err != nil {
		httpx.LoggerFrom(r.Context()).Error().Err(err).Str("path", p).Msg("write file")
	}
	return httpx.NewResponse(httpx.StatusCreated), nil
}

// fileName extracts the decoded file name from a /files/ path. The name
// is cleaned as a rooted path so it cannot climb out of the directory.
func fileName(p string) (string, bool) {
	rest, ok := strings.CutPrefix(p, "/files/")
	if !ok {
		return "", false
	}
	name, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		return "", false
	}
	return name, true
}
