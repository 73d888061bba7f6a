/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCodeShape(t *testing.T) {
	for range 200 {
		code := newRoomCode()

		require.Len(t, code, roomCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "unexpected %q in %s", r, code)
		}
	}
}

func TestTokenShape(t *testing.T) {
	seen := make(map[string]bool)

	for range 200 {
		token := newToken()

		require.Len(t, token, tokenLength)
		for _, r := range token {
			assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected %q in %s", r, token)
		}
		seen[token] = true
	}

	assert.Greater(t, len(seen), 190)
}

func TestSessionIDIsUUID(t *testing.T) {
	_, err := uuid.Parse(newSessionID())
	assert.NoError(t, err)
}

func TestRegistrySkipsCodesInUse(t *testing.T) {
	codes := []string{"AAAAAA", "AAAAAA", "AAAAAA", "BBBBBB"}

	reg := newRegistry()
	reg.newCode = func() string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	now := time.Now()
	first := reg.create(4, "tok", now)
	second := reg.create(4, "tok", now)

	assert.Equal(t, "AAAAAA", first.id)
	assert.Equal(t, "BBBBBB", second.id)
	assert.Len(t, reg.rooms, 2)
}
