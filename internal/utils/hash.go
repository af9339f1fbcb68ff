package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// PayloadHash computes the SHA-256 digest of a JSON document in compact
// form and returns it hex-encoded.
//
// Compaction strips insignificant whitespace so that logically identical
// documents submitted with different formatting hash the same. Key order
// is preserved as sent; a client resubmitting the bytes it already sent
// (the idempotent-replay case) always reproduces the stored hash.
//
// Invalid JSON is hashed as-is; validation happens elsewhere.
func PayloadHash(payload []byte) string {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, payload); err == nil {
		payload = compacted.Bytes()
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// TokenHash returns the hex-encoded SHA-256 of an opaque token string.
// Used to persist purchase tokens without storing the raw value.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
