/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Client to server events.
const (
	evCreateRoom    = "create-room"
	evJoinRoom      = "join-room"
	evReconnectRoom = "reconnect-room"
	evLeaveRoom     = "leave-room"
	evSubmitWord    = "submit-word"
	evStartGame     = "start-game"
	evGuessCorrect  = "guess-correct"
	evKickPlayer    = "kick-player"
	evGiveHint      = "give-hint"
	evSignal        = "webrtc-signal"
)

// Server to client events.
const (
	evRoomCreated     = "room-created"
	evJoined          = "joined"
	evPlayersUpdate   = "players-update"
	evExistingPlayers = "existing-players"
	evUserJoined      = "user-joined"
	evUserLeft        = "user-left"
	evKicked          = "kicked"
	evRoundStart      = "round-start"
	evHintUpdate      = "hint-update"
	evPlayerGuessed   = "player-guessed"
	evGameEnd         = "game-end"
	evError           = "error"
)

// envelope wraps every frame in both directions.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// event is a decoded, validated client message ready for the coordinator.
type event interface {
	apply(c *Coordinator, session string) error
}

type createRoomMsg struct {
	Nick       string `json:"nick"`
	MaxPlayers int    `json:"maxPlayers"`
	HostToken  string `json:"hostToken"`
}

func (m createRoomMsg) apply(c *Coordinator, session string) error {
	c.createRoom(session, m.Nick, m.MaxPlayers, m.HostToken)

	return nil
}

type joinRoomMsg struct {
	RoomID    string `json:"roomId"`
	Nick      string `json:"nick"`
	HostToken string `json:"hostToken"`
}

func (m joinRoomMsg) apply(c *Coordinator, session string) error {
	_, err := c.joinRoom(session, m.RoomID, m.Nick, m.HostToken)

	return err
}

type reconnectRoomMsg struct {
	RoomID      string `json:"roomId"`
	PlayerToken string `json:"playerToken"`
	Nick        string `json:"nick"`
}

func (m reconnectRoomMsg) apply(c *Coordinator, session string) error {
	return c.reconnectRoom(session, m.RoomID, m.PlayerToken, m.Nick)
}

type leaveRoomMsg struct {
	RoomID string `json:"roomId"`
}

func (m leaveRoomMsg) apply(c *Coordinator, session string) error {
	c.leaveRoom(session, m.RoomID)

	return nil
}

type submitWordMsg struct {
	RoomID string `json:"roomId"`
	Word   string `json:"word"`
}

func (m submitWordMsg) apply(c *Coordinator, session string) error {
	return c.submitWord(session, m.RoomID, m.Word)
}

type startGameMsg struct {
	RoomID string
}

// start-game carries the bare room code; an object with roomId is accepted too.
func (m *startGameMsg) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &m.RoomID); err == nil {
		return nil
	}

	var obj struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.RoomID = obj.RoomID

	return nil
}

func (m startGameMsg) apply(c *Coordinator, session string) error {
	return c.startGame(session, m.RoomID)
}

type guessCorrectMsg struct {
	RoomID string `json:"roomId"`
	Guess  string `json:"guess"`
}

func (m guessCorrectMsg) apply(c *Coordinator, session string) error {
	return c.guessCorrect(session, m.RoomID, m.Guess)
}

type kickPlayerMsg struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

func (m kickPlayerMsg) apply(c *Coordinator, session string) error {
	c.kickPlayer(session, m.RoomID, m.PlayerID)

	return nil
}

type giveHintMsg struct {
	RoomID string `json:"roomId"`
}

func (m giveHintMsg) apply(c *Coordinator, session string) error {
	c.giveHint(session, m.RoomID)

	return nil
}

type signalMsg struct {
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal"`
}

func (m signalMsg) apply(c *Coordinator, session string) error {
	c.relay(session, m.To, m.Signal)

	return nil
}

// malformedMsg stands in for a frame that failed validation, so the
// rejection is reported from the dispatch loop like any other error.
type malformedMsg struct {
	err error
}

func (m malformedMsg) apply(*Coordinator, string) error {
	return m.err
}

// decodeEvent validates a raw frame and returns the typed event it carries.
func decodeEvent(raw []byte) (event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	var (
		ev       event
		err      error
		required []string
	)

	switch env.Type {
	case evCreateRoom:
		var m createRoomMsg
		err = decodeData(env.Data, &m)
		ev = m
	case evJoinRoom:
		var m joinRoomMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evReconnectRoom:
		var m reconnectRoomMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID, m.PlayerToken}
	case evLeaveRoom:
		var m leaveRoomMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evSubmitWord:
		var m submitWordMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evStartGame:
		var m startGameMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evGuessCorrect:
		var m guessCorrectMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evKickPlayer:
		var m kickPlayerMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID, m.PlayerID}
	case evGiveHint:
		var m giveHintMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.RoomID}
	case evSignal:
		var m signalMsg
		err = decodeData(env.Data, &m)
		ev, required = m, []string{m.To}
	default:
		return nil, fmt.Errorf("%w: unknown event %q", errMalformed, env.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errMalformed, env.Type, err)
	}

	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("%w: %s: missing field", errMalformed, env.Type)
		}
	}

	return ev, nil
}

func decodeData(data json.RawMessage, dst any) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("missing payload")
	}

	return json.Unmarshal(data, dst)
}

type roomCreatedMsg struct {
	RoomID      string `json:"roomId"`
	PlayerToken string `json:"playerToken"`
}

// playerView is one roster entry as seen by a particular recipient. Words
// and tokens are only filled in on the recipient's own entry.
type playerView struct {
	ID          string  `json:"id"`
	Nick        string  `json:"nick"`
	IsHost      bool    `json:"isHost"`
	Ready       bool    `json:"ready"`
	Word        *string `json:"word"`
	PlayerToken string  `json:"playerToken,omitempty"`
	HostToken   string  `json:"hostToken,omitempty"`
}

type gamePlayerView struct {
	ID           string `json:"id"`
	Nick         string `json:"nick"`
	MyWord       string `json:"myWord"`
	AssignedWord string `json:"assignedWord"`
	HintLength   int    `json:"hintLength"`
	Guessed      bool   `json:"guessed"`
}

type roundView struct {
	Players []gamePlayerView `json:"players"`
}

type hintView struct {
	ID   string `json:"id"`
	Hint string `json:"hint"`
}

type playerGuessedMsg struct {
	PlayerID string `json:"playerId"`
}

// Winner is always null: every round is won together.
type gameEndMsg struct {
	Winner *string `json:"winner"`
}

type signalRelayMsg struct {
	From   string          `json:"from"`
	Signal json.RawMessage `json:"signal"`
}

// roomSummary is the public description served over HTTP.
type roomSummary struct {
	ID         string     `json:"id"`
	Status     roomStatus `json:"status"`
	Players    int        `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`
}
