package httpx

// BodyKind tags the payload held by a Body.
type BodyKind uint8

const (
	KindNone BodyKind = iota
	KindText
	KindBinary
)

// Body is a response payload: nothing, text, or already encoded bytes.
// The zero value is an empty body.
type Body struct {
	kind BodyKind
	text string
	data []byte
}

// TextBody returns a body holding s.
func TextBody(s string) Body {
	return Body{kind: KindText, text: s}
}

// BinaryBody returns a body holding b as-is. b must not be modified afterwards.
func BinaryBody(b []byte) Body {
	return Body{kind: KindBinary, data: b}
}

func (b Body) Kind() BodyKind { return b.kind }

// Len is the number of bytes the body puts on the wire.
func (b Body) Len() int {
	switch b.kind {
	case KindText:
		return len(b.text)
	case KindBinary:
		return len(b.data)
	}
	return 0
}

// Bytes returns the wire bytes of the body, nil for an empty body.
func (b Body) Bytes() []byte {
	switch b.kind {
	case KindText:
		return []byte(b.text)
	case KindBinary:
		return b.data
	}
	return nil
}

// String returns the body as text. Binary payloads are converted bytewise.
func (b Body) String() string {
	switch b.kind {
	case KindText:
		return b.text
	case KindBinary:
		return string(b.data)
	}
	return ""
}
