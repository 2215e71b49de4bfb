// Package crypto computes content checksums for stored uploads.
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"strings"
)

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader drains r and returns its hex SHA-256 and byte count.
func HashReader(r io.Reader) (string, int64, error) {
	hasher := sha256.New()

	n, err := io.Copy(hasher, r)
	if err != nil {
		return "", n, err
	}

	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

// ETag formats a checksum as a strong entity tag.
func ETag(sum string) string {
	return `"` + sum + `"`
}

// MatchesETag reports whether an If-None-Match header value names sum.
func MatchesETag(header, sum string) bool {
	if header == "" || sum == "" {
		return false
	}
	want := []byte(ETag(sum))
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if subtle.ConstantTimeCompare([]byte(candidate), want) == 1 {
			return true
		}
	}
	return false
}
