/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
)

func normalizeWord(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// hintPrefix reveals the first n characters of word, clamped to its length.
func hintPrefix(word string, n int) string {
	runes := []rune(word)
	if n > len(runes) {
		n = len(runes)
	}
	if n < 0 {
		n = 0
	}

	return string(runes[:n]) + "..."
}

// submitWord records the secret word session's player brings to the next
// round. Words are unique within a room, ignoring case and surrounding
// whitespace.
func (c *Coordinator) submitWord(session, roomID, raw string) error {
	room, ok := c.room(roomID)
	if !ok {
		return errRoomNotFound
	}

	p, ok := room.bySession(session)
	if !ok {
		return nil
	}

	if room.status != statusLobby {
		return errAlreadyPlaying
	}

	word := normalizeWord(raw)
	if word == "" {
		return errEmptyWord
	}

	if room.wordTaken(word, p.token) {
		return errWordTaken
	}

	p.word = word
	p.ready = true

	c.broadcastPlayers(room)

	logf(c.cfg, "GAMES: %q submitted a word in room %s", p.nick, room.id)

	return nil
}

// startGame deals every member another member's word and starts the round.
func (c *Coordinator) startGame(session, roomID string) error {
	room, ok := c.room(roomID)
	if !ok {
		return errRoomNotFound
	}

	if _, ok := room.bySession(session); !ok {
		return nil
	}

	if room.status != statusLobby {
		return errAlreadyPlaying
	}

	roster := room.roster()

	for _, p := range roster {
		if p.word == "" {
			return errNotAllReady
		}
	}

	if len(roster) < 2 {
		return errTooFewPlayers
	}

	perm, err := derange(len(roster), c.rng)
	if err != nil {
		return err
	}

	game := &GameRound{
		players:  make([]*GamePlayer, 0, len(roster)),
		departed: make(map[string]string),
	}

	for i, p := range roster {
		game.players = append(game.players, &GamePlayer{
			token:        p.token,
			nick:         p.nick,
			myWord:       p.word,
			assignedWord: roster[perm[i]].word,
			hintLength:   1,
		})
	}

	room.game = game
	room.status = statusPlaying

	c.broadcast(room, "", evRoundStart, c.viewRound(room))

	logf(c.cfg, "GAMES: Round started in room %s with %d players", room.id, len(roster))

	return nil
}

// giveHint reveals one more letter of every assigned word. Host only.
func (c *Coordinator) giveHint(session, roomID string) {
	room, ok := c.room(roomID)
	if !ok || !room.isHost(session) || room.status != statusPlaying || room.game == nil {
		return
	}

	hints := make([]hintView, 0, len(room.game.players))
	for _, gp := range room.game.players {
		gp.hintLength++
		hints = append(hints, hintView{
			ID:   room.sessionOf(gp.token),
			Hint: hintPrefix(gp.assignedWord, gp.hintLength),
		})
	}

	c.broadcast(room, "", evHintUpdate, hints)

	logf(c.cfg, "GAMES: Hint given in room %s", room.id)
}

// guessCorrect marks session's seat as guessed. A non-empty guess is checked
// against the assigned word first; an empty one takes the client at its word.
func (c *Coordinator) guessCorrect(session, roomID, guess string) error {
	room, ok := c.room(roomID)
	if !ok || room.status != statusPlaying || room.game == nil {
		return nil
	}

	p, ok := room.bySession(session)
	if !ok {
		return nil
	}

	gp := room.game.seat(p.token)
	if gp == nil || gp.guessed {
		return nil
	}

	if guess != "" && normalizeWord(guess) != gp.assignedWord {
		return errWrongGuess
	}

	gp.guessed = true

	c.broadcast(room, "", evPlayerGuessed, playerGuessedMsg{PlayerID: session})

	logf(c.cfg, "GAMES: %q guessed their word in room %s", p.nick, room.id)

	c.checkRoundOver(room)

	return nil
}

// checkRoundOver ends the round once every seat whose owner is still in the
// room has guessed. Seats of players who left can never guess, so they are
// not waited on.
func (c *Coordinator) checkRoundOver(room *Room) {
	if room.game == nil {
		return
	}

	for _, gp := range room.game.players {
		if _, present := room.players[gp.token]; present && !gp.guessed {
			return
		}
	}

	c.endRound(room)
}

// endRound announces the end of the round and returns the room to the lobby
// with every word cleared.
func (c *Coordinator) endRound(room *Room) {
	c.broadcast(room, "", evGameEnd, gameEndMsg{})

	room.status = statusLobby
	room.game = nil

	for _, p := range room.players {
		p.word = ""
		p.ready = false
	}

	c.broadcastPlayers(room)

	logf(c.cfg, "GAMES: Round finished in room %s", room.id)
}
