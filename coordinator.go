/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"math/rand/v2"
	"time"
)

// emitter delivers a server event to one session. Unknown or vanished
// sessions are dropped silently.
type emitter interface {
	send(session, event string, data any)
}

// Coordinator holds every room and applies client events to them. It is
// not safe for concurrent use: a single dispatch loop owns it, so each
// event runs to completion before the next one starts.
type Coordinator struct {
	cfg   *Config
	rooms *registry
	out   emitter
	rng   *rand.Rand
	now   func() time.Time
}

func newCoordinator(cfg *Config, out emitter, rng *rand.Rand) *Coordinator {
	return &Coordinator{
		cfg:   cfg,
		rooms: newRegistry(),
		out:   out,
		rng:   rng,
		now:   time.Now,
	}
}

// dispatch applies ev on behalf of session and reports any failure back to
// that session alone.
func (c *Coordinator) dispatch(session string, ev event) {
	if err := ev.apply(c, session); err != nil {
		c.notifyError(session, err)
	}
}

func (c *Coordinator) notifyError(session string, err error) {
	logf(c.cfg, "ERROR: %s: %v", session, err)

	c.out.send(session, evError, err.Error())
}

// room looks up id and marks it active.
func (c *Coordinator) room(id string) (*Room, bool) {
	room, ok := c.rooms.get(id)
	if ok {
		room.lastActive = c.now()
	}

	return room, ok
}

// broadcast sends the same payload to every member of room except skip.
func (c *Coordinator) broadcast(room *Room, skip, event string, data any) {
	for _, p := range room.roster() {
		if p.session == skip {
			continue
		}
		c.out.send(p.session, event, data)
	}
}

// broadcastPlayers sends each member the roster as that member may see it.
func (c *Coordinator) broadcastPlayers(room *Room) {
	roster := room.roster()

	for _, recipient := range roster {
		views := make([]playerView, 0, len(roster))
		for _, p := range roster {
			views = append(views, viewPlayer(p, p == recipient))
		}
		c.out.send(recipient.session, evPlayersUpdate, views)
	}
}

func viewPlayer(p *Player, own bool) playerView {
	v := playerView{
		ID:     p.session,
		Nick:   p.nick,
		IsHost: p.isHost,
		Ready:  p.ready,
	}

	if own {
		if p.word != "" {
			word := p.word
			v.Word = &word
		}
		v.PlayerToken = p.token
		if p.isHost {
			v.HostToken = p.hostToken
		}
	}

	return v
}

// otherSessions lists the sessions of every member but session, in join order.
func otherSessions(room *Room, session string) []string {
	ids := []string{}
	for _, p := range room.roster() {
		if p.session != session {
			ids = append(ids, p.session)
		}
	}

	return ids
}

func (c *Coordinator) viewRound(room *Room) roundView {
	view := roundView{Players: make([]gamePlayerView, 0, len(room.game.players))}

	for _, gp := range room.game.players {
		view.Players = append(view.Players, gamePlayerView{
			ID:           room.sessionOf(gp.token),
			Nick:         gp.nick,
			MyWord:       gp.myWord,
			AssignedWord: gp.assignedWord,
			HintLength:   gp.hintLength,
			Guessed:      gp.guessed,
		})
	}

	return view
}

// summary describes a live room for the HTTP side.
func (c *Coordinator) summary(id string) (roomSummary, bool) {
	room, ok := c.rooms.get(id)
	if !ok {
		return roomSummary{}, false
	}

	return roomSummary{
		ID:         room.id,
		Status:     room.status,
		Players:    len(room.players),
		MaxPlayers: room.maxPlayers,
	}, true
}

// reapIdle closes every room that has seen no events since cutoff and has
// no member for whom live reports an open connection.
func (c *Coordinator) reapIdle(cutoff time.Time, live func(session string) bool) int {
	var idle []*Room

	for _, room := range c.rooms.idle(cutoff) {
		if !anyLive(room, live) {
			idle = append(idle, room)
		}
	}

	for _, room := range idle {
		c.broadcast(room, "", evError, "room closed after inactivity")
		c.rooms.remove(room.id)

		logf(c.cfg, "ROOMS: Closed idle room %s (%d players)", room.id, len(room.players))
	}

	return len(idle)
}

func anyLive(room *Room, live func(string) bool) bool {
	if live == nil {
		return false
	}

	for session := range room.sessions {
		if live(session) {
			return true
		}
	}

	return false
}
