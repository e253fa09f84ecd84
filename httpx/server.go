package httpx

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"dqx0.com/go/tinyhttp/httpx/internal/http1"
	"dqx0.com/go/tinyhttp/internal/obs"
)

const (
	DefaultAddr           = "localhost:4221"
	DefaultReadBufferSize = 1024
)

// Server reads one request per socket read, runs it through Handler and
// writes the response back, until the peer closes the connection.
//
// A request larger than ReadBufferSize is cut to what one read returned.
type Server struct {
	Addr    string
	Handler Handler
	// Logger receives server events. Nil disables logging.
	Logger *zerolog.Logger
	// Meter receives request and connection counters. Nil disables them.
	Meter          obs.Meter
	ReadBufferSize int
	// IdleTimeout closes a connection that sends nothing for this long.
	// Zero means wait forever.
	IdleTimeout time.Duration

	mu         sync.Mutex
	listeners  map[net.Listener]struct{}
	conns      map[net.Conn]struct{}
	wg         sync.WaitGroup
	inShutdown atomic.Bool
}

func (s *Server) ListenAndServe() error {
	if s.inShutdown.Load() {
		return ErrServerClosed
	}
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until it fails or Shutdown is called,
// in which case ErrServerClosed is returned.
func (s *Server) Serve(l net.Listener) error {
	if !s.trackListener(l, true) {
		return ErrServerClosed
	}
	defer s.trackListener(l, false)
	defer l.Close()

	log := s.logger()
	log.Info().Str("addr", l.Addr().String()).Msg("listening")
	for {
		c, err := l.Accept()
		if err != nil {
			if s.inShutdown.Load() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				log.Warn().Err(err).Msg("accept")
				continue
			}
			return err
		}
		if !s.trackConn(c, true) {
			c.Close()
			return ErrServerClosed
		}
		s.meter().Counter("http_connections_total", 1)
		go s.serveConn(c)
	}
}

// Shutdown stops the listeners, closes every open connection and waits for
// their goroutines to return or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)

	s.mu.Lock()
	var err error
	for l := range s.listeners {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveConn(c net.Conn) {
	defer s.wg.Done()
	defer s.trackConn(c, false)
	defer c.Close()

	log := s.logger().With().Str("remote", c.RemoteAddr().String()).Logger()
	buf := make([]byte, s.readBufferSize())
	for {
		if s.IdleTimeout > 0 {
			_ = c.SetReadDeadline(time.Now().Add(s.IdleTimeout))
		}
		n, err := c.Read(buf)
		if n == 0 {
			if err != nil && !errors.Is(err, io.EOF) && !s.inShutdown.Load() {
				log.Debug().Err(err).Msg("read")
			}
			return
		}
		keep, herr := s.serveRequest(c, buf[:n], &log)
		if herr != nil {
			log.Error().Err(herr).Msg("request aborted")
			return
		}
		if !keep {
			return
		}
	}
}

// serveRequest decodes raw, runs the handler and writes the response.
// It reports whether the connection should stay open.
func (s *Server) serveRequest(w io.Writer, raw []byte, log *zerolog.Logger) (bool, error) {
	start := time.Now()
	pr, err := http1.Decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("bad request")
		s.meter().Counter("http_requests_total", 1, obs.Label{Key: "route", Value: "-"}, obs.Label{Key: "status", Value: "400"})
		res := TextResponse(StatusBadRequest, "400 Bad Request")
		res.Header.Set("Connection", "close")
		return false, res.Write(w)
	}

	r := &Request{
		Method:    pr.Method,
		Target:    pr.RequestURI,
		Proto:     pr.Proto,
		Header:    Header(pr.Header),
		Body:      string(pr.Body),
		RequestID: genID(),
	}
	r.CorrelationID = r.Header.Get("X-Request-Id")
	rlog := log.With().
		Str("request_id", r.RequestID).
		Str("method", r.Method).
		Str("target", r.Target).
		Logger()
	ctx := WithRequestID(context.Background(), r.RequestID)
	if r.CorrelationID != "" {
		ctx = WithCorrelationID(ctx, r.CorrelationID)
		rlog = rlog.With().Str("correlation_id", r.CorrelationID).Logger()
	}
	r = WithContext(r, rlog.WithContext(ctx))

	h := s.Handler
	if h == nil {
		h = HandlerFunc(NotFound)
	}
	res, err := h.ServeHTTP(r)
	if err != nil {
		return false, err
	}
	if res == nil {
		res, _ = NotFound(r)
	}
	if res.Proto == "" {
		res.Proto = r.Proto
	}
	keep := !strings.EqualFold(r.Header.Get("Connection"), "close")
	if !keep {
		res.Header.Set("Connection", "close")
	}
	if err := res.Write(w); err != nil {
		return false, err
	}

	elapsed := time.Since(start)
	route := RouteKey(r.Target)
	status := strconv.Itoa(res.StatusCode)
	s.meter().Counter("http_requests_total", 1, obs.Label{Key: "route", Value: route}, obs.Label{Key: "status", Value: status})
	s.meter().Histogram("http_request_duration_seconds", elapsed.Seconds(), obs.Label{Key: "route", Value: route})
	rlog.Debug().Int("status", res.StatusCode).Int("bytes", res.Body.Len()).Dur("elapsed", elapsed).Msg("served")
	return keep, nil
}

func (s *Server) trackListener(l net.Listener, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.inShutdown.Load() {
			return false
		}
		if s.listeners == nil {
			s.listeners = make(map[net.Listener]struct{})
		}
		s.listeners[l] = struct{}{}
	} else {
		delete(s.listeners, l)
	}
	return true
}

func (s *Server) trackConn(c net.Conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.inShutdown.Load() {
			return false
		}
		if s.conns == nil {
			s.conns = make(map[net.Conn]struct{})
		}
		s.conns[c] = struct{}{}
		s.wg.Add(1)
	} else {
		delete(s.conns, c)
	}
	return true
}

func (s *Server) readBufferSize() int {
	if s.ReadBufferSize <= 0 {
		return DefaultReadBufferSize
	}
	return s.ReadBufferSize
}

func (s *Server) logger() *zerolog.Logger {
	if s.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return s.Logger
}

func (s *Server) meter() obs.Meter {
	if s.Meter == nil {
		return obs.NopMeter{}
	}
	return s.Meter
}
