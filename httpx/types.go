package httpx

import (
	"dqx0.com/go/tinyhttp/httpx/internal/http1"
)

// HeaderField is one "Key: Value" line.
type HeaderField = http1.Field

// Header is an ordered list of header fields. Lookups are case-insensitive;
// Set keeps a field's position and replaces its value, so a header written
// twice keeps the last value.
type Header []HeaderField

func (h Header) Get(key string) string {
	return http1.GetField(h, key)
}

// Has reports whether a field named key is present.
func (h Header) Has(key string) bool {
	k := http1.CanonicalKey(key)
	for _, f := range h {
		if f.Key == k {
			return true
		}
	}
	return false
}

func (h *Header) Set(key, value string) {
	*h = http1.SetField(*h, key, value)
}

func (h *Header) Add(key, value string) {
	*h = append(*h, HeaderField{Key: http1.CanonicalKey(key), Value: value})
}

func (h *Header) Del(key string) {
	*h = http1.DelField(*h, key)
}

// Clone returns a copy that shares no storage with h.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	return append(Header(nil), h...)
}
