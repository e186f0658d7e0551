// Package ident produces the short keys used for categories, items and
// modifiers. Uniqueness is probabilistic only, which is enough for the
// handful of entities a single menu holds.
package ident

import (
	"crypto/rand"
	"math/big"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength = 8
)

// New returns a fresh 8-character alphanumeric id
func New() string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, idLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed symbol rather than propagate.
			buf[i] = alphabet[0]
			continue
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
