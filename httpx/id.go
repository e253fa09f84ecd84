package httpx

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
)

var idSeq atomic.Uint64

func genID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	return "seq-" + strconv.FormatUint(idSeq.Add(1), 10)
}
