// Package seed produces seeds for the game's random source.
//
// A seed comes from, in order of preference: an explicit value, a phrase
// hashed with HMAC-SHA256, or crypto/rand.
package seed

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
)

// phraseKey keys the HMAC so phrase seeds are specific to this game.
const phraseKey = "codebreak"

// New generates a random seed using crypto/rand.
func New() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// FromPhrase returns a deterministic seed for phrase using HMAC(key, phrase).
// Case and surrounding whitespace are ignored.
func FromPhrase(phrase string) int64 {
	h := hmac.New(sha256.New, []byte(phraseKey))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(phrase))))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Resolve picks the seed for a game: explicit if non-zero, else the
// phrase if non-blank, else a fresh random seed.
func Resolve(explicit int64, phrase string) (int64, error) {
	switch {
	case explicit != 0:
		return explicit, nil
	case strings.TrimSpace(phrase) != "":
		return FromPhrase(phrase), nil
	default:
		return New()
	}
}
