// Package token issues the capability secrets that grant anonymous edit
// access to a single site.
package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Size is the number of random bytes behind every edit token.
const Size = 32

// Issue returns a new hex-encoded token carrying Size bytes of entropy.
func Issue() (string, error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("issue edit token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Equal compares two tokens in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// WellFormed reports whether s has the shape of an issued token.
func WellFormed(s string) bool {
	if len(s) != hex.EncodedLen(Size) {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
