package integrity

import (
	// sha1 is the digest algorithm the registry advertises for files.
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Result of checking downloaded bytes against a registry digest.
type Result int

const (
	// Verified means the computed digest equals the registry's.
	Verified Result = iota
	// Mismatch means the digests disagree; the download must be discarded.
	Mismatch
	// Unverifiable means the registry supplied no digest. Installation
	// proceeds, but callers should surface the gap.
	Unverifiable
)

func (r Result) String() string {
	switch r {
	case Verified:
		return "verified"
	case Mismatch:
		return "mismatch"
	default:
		return "unverifiable"
	}
}

// Verify computes the content digest of data and compares it with the
// expected hex digest. An empty expected digest yields Unverifiable.
func Verify(data []byte, expectedHex string) Result {
	expectedHex = strings.TrimSpace(expectedHex)
	if expectedHex == "" {
		return Unverifiable
	}
	if Sha1Hex(data) == strings.ToLower(expectedHex) {
		return Verified
	}
	return Mismatch
}

// Sha1Hex returns the SHA-1 hash of data as a lowercase hex string.
func Sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
