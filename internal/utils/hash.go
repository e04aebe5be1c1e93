package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash returns the SHA-256 digest of data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// BodyHash is the hex SHA-256 of a request body. Signer tokens carry it in
// the "bh" claim so a token cannot be replayed with another payload.
func BodyHash(body []byte) string {
	return hex.EncodeToString(Hash(body))
}
