/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want event
	}{
		{
			name: "create room",
			raw:  `{"type":"create-room","data":{"nick":"ann","maxPlayers":4,"hostToken":"abc"}}`,
			want: createRoomMsg{Nick: "ann", MaxPlayers: 4, HostToken: "abc"},
		},
		{
			name: "create room without options",
			raw:  `{"type":"create-room","data":{"nick":"ann"}}`,
			want: createRoomMsg{Nick: "ann"},
		},
		{
			name: "join room",
			raw:  `{"type":"join-room","data":{"roomId":"ABC123","nick":"bob"}}`,
			want: joinRoomMsg{RoomID: "ABC123", Nick: "bob"},
		},
		{
			name: "reconnect",
			raw:  `{"type":"reconnect-room","data":{"roomId":"ABC123","playerToken":"tok","nick":"bob"}}`,
			want: reconnectRoomMsg{RoomID: "ABC123", PlayerToken: "tok", Nick: "bob"},
		},
		{
			name: "leave",
			raw:  `{"type":"leave-room","data":{"roomId":"ABC123"}}`,
			want: leaveRoomMsg{RoomID: "ABC123"},
		},
		{
			name: "submit word",
			raw:  `{"type":"submit-word","data":{"roomId":"ABC123","word":" cat "}}`,
			want: submitWordMsg{RoomID: "ABC123", Word: " cat "},
		},
		{
			name: "start game with bare room code",
			raw:  `{"type":"start-game","data":"ABC123"}`,
			want: startGameMsg{RoomID: "ABC123"},
		},
		{
			name: "start game with object",
			raw:  `{"type":"start-game","data":{"roomId":"ABC123"}}`,
			want: startGameMsg{RoomID: "ABC123"},
		},
		{
			name: "guess",
			raw:  `{"type":"guess-correct","data":{"roomId":"ABC123","guess":"cat"}}`,
			want: guessCorrectMsg{RoomID: "ABC123", Guess: "cat"},
		},
		{
			name: "kick",
			raw:  `{"type":"kick-player","data":{"roomId":"ABC123","playerId":"s2"}}`,
			want: kickPlayerMsg{RoomID: "ABC123", PlayerID: "s2"},
		},
		{
			name: "hint",
			raw:  `{"type":"give-hint","data":{"roomId":"ABC123"}}`,
			want: giveHintMsg{RoomID: "ABC123"},
		},
		{
			name: "signal",
			raw:  `{"type":"webrtc-signal","data":{"to":"s2","signal":{"candidate":"x"}}}`,
			want: signalMsg{To: "s2", Signal: json.RawMessage(`{"candidate":"x"}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeEvent([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEventRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `hello`},
		{"unknown type", `{"type":"launch-missiles","data":{}}`},
		{"missing payload", `{"type":"join-room"}`},
		{"null payload", `{"type":"give-hint","data":null}`},
		{"wrong field type", `{"type":"create-room","data":{"maxPlayers":"lots"}}`},
		{"missing room", `{"type":"submit-word","data":{"word":"cat"}}`},
		{"blank room", `{"type":"start-game","data":"  "}`},
		{"missing token", `{"type":"reconnect-room","data":{"roomId":"ABC123"}}`},
		{"missing target", `{"type":"kick-player","data":{"roomId":"ABC123"}}`},
		{"missing recipient", `{"type":"webrtc-signal","data":{"signal":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEvent([]byte(tt.raw))
			assert.ErrorIs(t, err, errMalformed)
		})
	}
}

func TestMalformedMessageIsReported(t *testing.T) {
	c, rec := newTestCoordinator(t)

	_, err := decodeEvent([]byte(`{"type":"nope"}`))
	require.Error(t, err)

	c.dispatch("s1", malformedMsg{err: err})

	require.Equal(t, []string{evError}, rec.events("s1"))
	data, _ := rec.last("s1", evError)
	assert.Contains(t, data, errMalformed.Error())
}

func TestEncodeFrame(t *testing.T) {
	frame, err := encodeFrame(evPlayerGuessed, playerGuessedMsg{PlayerID: "s1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"player-guessed","data":{"playerId":"s1"}}`, string(frame))

	frame, err = encodeFrame(evKicked, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"kicked"}`, string(frame))

	frame, err = encodeFrame(evGameEnd, gameEndMsg{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"game-end","data":{"winner":null}}`, string(frame))

	frame, err = encodeFrame(evPlayersUpdate, []playerView{{ID: "s1", Nick: "ann"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"players-update","data":[{"id":"s1","nick":"ann","isHost":false,"ready":false,"word":null}]}`, string(frame))
}
