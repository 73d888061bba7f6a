/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

	roomCodeLength = 6
	tokenLength    = 8
)

// randomString draws n characters from letters using crypto/rand, discarding
// bytes above the largest multiple of len(letters) to keep the draw unbiased.
func randomString(letters string, n int) string {
	limit := byte(255 - (256 % len(letters)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b > limit {
				continue
			}
			out = append(out, letters[int(b)%len(letters)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out)
}

// Room codes are read aloud and typed by hand, so they stay short and upper case.
func newRoomCode() string {
	return randomString(roomCodeAlphabet, roomCodeLength)
}

func newToken() string {
	return randomString(tokenAlphabet, tokenLength)
}

func newSessionID() string {
	return uuid.NewString()
}
