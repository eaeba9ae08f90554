// Package idgen produces the short opaque tokens used as session ids.
package idgen

import (
	"crypto/rand"
	"fmt"
)

// Display- and URL-safe characters, with the easily confused glyphs
// (0/O, 1/l/I) left out since the token is read off a projected screen.
const alphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

const TokenLength = 8

// Token returns a random session token.
func Token() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

// UniqueToken generates tokens until one passes the taken check. With an
// 8-character token over a 54-character alphabet collisions are effectively
// never hit at this system's scale, so the loop is unbounded.
func UniqueToken(taken func(string) bool) (string, error) {
	for {
		token, err := Token()
		if err != nil {
			return "", err
		}
		if !taken(token) {
			return token, nil
		}
	}
}
