package httpx

import "strings"

// Handler builds the response for a request. A non-nil error aborts the
// connection the request arrived on; nothing is written for it.
type Handler interface {
	ServeHTTP(*Request) (*Response, error)
}

type HandlerFunc func(*Request) (*Response, error)

func (f HandlerFunc) ServeHTTP(r *Request) (*Response, error) {
	return f(r)
}

type prefixRoute struct {
	prefix string
	h      Handler
}

// Router dispatches on the route key of a request (see RouteKey). Keys
// registered with Handle are looked up first; on a miss the prefixes
// registered with HandlePrefix are tried in order against the path.
// Register everything before serving: the tables are not locked.
type Router struct {
	static   map[string]Handler
	prefixes []prefixRoute
	// NotFound answers unmatched requests. Nil means NotFound.
	NotFound Handler
}

func NewRouter() *Router {
	return &Router{static: make(map[string]Handler)}
}

// Handle registers h for a route key such as "/" or "/files".
func (m *Router) Handle(key string, h Handler) {
	m.static[key] = h
}

func (m *Router) HandleFunc(key string, f func(*Request) (*Response, error)) {
	m.Handle(key, HandlerFunc(f))
}

// HandlePrefix registers h for every path starting with prefix, e.g. "/echo/".
func (m *Router) HandlePrefix(prefix string, h Handler) {
	m.prefixes = append(m.prefixes, prefixRoute{prefix: prefix, h: h})
}

// Handler returns the handler r dispatches to.
func (m *Router) Handler(r *Request) Handler {
	if h, ok := m.static[RouteKey(r.Target)]; ok {
		return h
	}
	path := r.Path()
	for _, p := range m.prefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.h
		}
	}
	if m.NotFound != nil {
		return m.NotFound
	}
	return HandlerFunc(NotFound)
}

func (m *Router) ServeHTTP(r *Request) (*Response, error) {
	return m.Handler(r).ServeHTTP(r)
}

// RouteKey normalizes a request target to its first path segment:
// "/" for "/", "/echo" for "/echo/abc?x=1".
func RouteKey(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	target = strings.Trim(target, "/")
	if i := strings.IndexByte(target, '/'); i >= 0 {
		target = target[:i]
	}
	return "/" + target
}

// NotFound answers 404 with a plain text body.
func NotFound(*Request) (*Response, error) {
	return TextResponse(StatusNotFound, "404 Not Found"), nil
}
