// Package config resolves server settings from defaults, an optional JSON
// file and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/buger/jsonparser"

	"dqx0.com/go/tinyhttp/httpx"
	"dqx0.com/go/tinyhttp/internal/obs"
)

type Config struct {
	Addr           string
	Directory      string
	LogLevel       string
	LogFormat      string
	ReadBufferSize int
	IdleTimeout    time.Duration
}

func Default() Config {
	return Config{
		Addr:           httpx.DefaultAddr,
		LogLevel:       "info",
		LogFormat:      obs.FormatJSON,
		ReadBufferSize: httpx.DefaultReadBufferSize,
	}
}

// Load parses args (without the program name). Flags given explicitly
// override values from the --config file.
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("tinyhttp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "path to a JSON config file")
	addr := fs.String("addr", cfg.Addr, "listen address")
	dir := fs.String("directory", "", "base directory for /files/")
	level := fs.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	format := fs.String("log-format", cfg.LogFormat, "json or console")
	bufSize := fs.Int("read-buffer-size", cfg.ReadBufferSize, "bytes read per request")
	idle := fs.Duration("idle-timeout", 0, "close idle connections after this long (0 = never)")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if *path != "" {
		data, err := os.ReadFile(*path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := cfg.applyJSON(data); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", *path, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "directory":
			cfg.Directory = *dir
		case "log-level":
			cfg.LogLevel = *level
		case "log-format":
			cfg.LogFormat = *format
		case "read-buffer-size":
			cfg.ReadBufferSize = *bufSize
		case "idle-timeout":
			cfg.IdleTimeout = *idle
		}
	})
	return cfg, cfg.Validate()
}

var jsonPaths = [][]string{
	{"addr"},
	{"directory"},
	{"log_level"},
	{"log_format"},
	{"read_buffer_size"},
	{"idle_timeout"},
}

// applyJSON overlays the keys present in data. idle_timeout is a Go
// duration string such as "30s".
func (c *Config) applyJSON(data []byte) error {
	_, vt, _, err := jsonparser.Get(data)
	if err != nil {
		return err
	}
	if vt != jsonparser.Object {
		return errors.New("top level value must be an object")
	}
	var firstErr error
	setErr := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	jsonparser.EachKey(data, func(idx int, value []byte, vt jsonparser.ValueType, err error) {
		if err != nil {
			setErr(err)
			return
		}
		switch idx {
		case 0, 1, 2, 3:
			if vt != jsonparser.String {
				setErr(fmt.Errorf("%s: want string", jsonPaths[idx][0]))
				return
			}
			s, err := jsonparser.ParseString(value)
			if err != nil {
				setErr(err)
				return
			}
			switch idx {
			case 0:
				c.Addr = s
			case 1:
				c.Directory = s
			case 2:
				c.LogLevel = s
			case 3:
				c.LogFormat = s
			}
		case 4:
			n, err := jsonparser.ParseInt(value)
			if err != nil {
				setErr(fmt.Errorf("read_buffer_size: %w", err))
				return
			}
			c.ReadBufferSize = int(n)
		case 5:
			s, err := jsonparser.ParseString(value)
			if err != nil {
				setErr(err)
				return
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				setErr(fmt.Errorf("idle_timeout: %w", err))
				return
			}
			c.IdleTimeout = d
		}
	}, jsonPaths...)
	return firstErr
}

func (c Config) Validate() error {
	var errs []error
	if c.ReadBufferSize <= 0 {
		errs = append(errs, fmt.Errorf("read buffer size must be positive, got %d", c.ReadBufferSize))
	}
	if c.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("idle timeout must not be negative, got %s", c.IdleTimeout))
	}
	if c.LogFormat != obs.FormatJSON && c.LogFormat != obs.FormatConsole {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if _, err := obs.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
