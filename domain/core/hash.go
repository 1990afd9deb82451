package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// ComputeFingerprint hashes an ordered list of parts. Order is significant.
func ComputeFingerprint(parts ...string) Hash {
	return NewHash([]byte(strings.Join(parts, "\x1f")))
}
