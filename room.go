/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"sort"
	"time"
)

type roomStatus string

// A room is only ever stored as lobby or playing. The end of a round is
// announced with a game-end event and the room drops straight back to lobby.
const (
	statusLobby   roomStatus = "lobby"
	statusPlaying roomStatus = "playing"
)

// Player is a lobby member. It is keyed by its token, which survives
// reconnects; session is the connection currently speaking for it.
type Player struct {
	token     string
	session   string
	nick      string
	isHost    bool
	hostToken string
	word      string
	ready     bool
	seq       uint64
}

// GamePlayer is one seat in a round. Seats are fixed at round start and
// refer to their owner by token, never by session.
type GamePlayer struct {
	token        string
	nick         string
	myWord       string
	assignedWord string
	hintLength   int
	guessed      bool
}

type GameRound struct {
	players []*GamePlayer

	// last session of seat owners who left mid-round, so snapshots can
	// still name them
	departed map[string]string
}

func (g *GameRound) seat(token string) *GamePlayer {
	for _, gp := range g.players {
		if gp.token == token {
			return gp
		}
	}

	return nil
}

type Room struct {
	id         string
	hostToken  string
	maxPlayers int
	status     roomStatus
	players    map[string]*Player
	sessions   map[string]string
	game       *GameRound
	nextSeq    uint64
	createdAt  time.Time
	lastActive time.Time
}

func newRoom(id string, maxPlayers int, hostToken string, now time.Time) *Room {
	return &Room{
		id:         id,
		hostToken:  hostToken,
		maxPlayers: maxPlayers,
		status:     statusLobby,
		players:    make(map[string]*Player),
		sessions:   make(map[string]string),
		createdAt:  now,
		lastActive: now,
	}
}

func (r *Room) add(p *Player) {
	r.nextSeq++
	p.seq = r.nextSeq
	r.players[p.token] = p
	r.sessions[p.session] = p.token
}

func (r *Room) bySession(session string) (*Player, bool) {
	token, ok := r.sessions[session]
	if !ok {
		return nil, false
	}

	p, ok := r.players[token]

	return p, ok
}

// remove drops the player speaking for session. Removing an absent session
// is a no-op.
func (r *Room) remove(session string) (*Player, bool) {
	p, ok := r.bySession(session)
	if !ok {
		return nil, false
	}

	delete(r.sessions, session)
	delete(r.players, p.token)

	if r.game != nil && r.game.seat(p.token) != nil {
		r.game.departed[p.token] = session
	}

	return p, true
}

// rekey points an existing player at a new session.
func (r *Room) rekey(p *Player, session string) {
	delete(r.sessions, p.session)
	p.session = session
	r.sessions[session] = p.token
}

// roster lists players in join order.
func (r *Room) roster() []*Player {
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].seq < out[j].seq
	})

	return out
}

func (r *Room) host() *Player {
	for _, p := range r.players {
		if p.isHost {
			return p
		}
	}

	return nil
}

func (r *Room) isHost(session string) bool {
	p, ok := r.bySession(session)

	return ok && p.isHost
}

// sessionOf resolves the session currently speaking for token, falling back
// to the one it had when it left the round.
func (r *Room) sessionOf(token string) string {
	if p, ok := r.players[token]; ok {
		return p.session
	}

	if r.game != nil {
		return r.game.departed[token]
	}

	return ""
}

func (r *Room) wordTaken(word, exceptToken string) bool {
	for _, p := range r.players {
		if p.token != exceptToken && p.word == word {
			return true
		}
	}

	return false
}

// registry owns every live room, keyed by room code.
type registry struct {
	rooms   map[string]*Room
	newCode func() string
}

func newRegistry() *registry {
	return &registry{
		rooms:   make(map[string]*Room),
		newCode: newRoomCode,
	}
}

// create allocates a room under a code no live room is using.
func (reg *registry) create(maxPlayers int, hostToken string, now time.Time) *Room {
	id := reg.newCode()
	for {
		if _, exists := reg.rooms[id]; !exists {
			break
		}
		id = reg.newCode()
	}

	room := newRoom(id, maxPlayers, hostToken, now)
	reg.rooms[id] = room

	return room
}

func (reg *registry) get(id string) (*Room, bool) {
	room, ok := reg.rooms[id]

	return room, ok
}

func (reg *registry) remove(id string) {
	delete(reg.rooms, id)
}

// idle returns rooms with no activity since cutoff, sorted by code.
func (reg *registry) idle(cutoff time.Time) []*Room {
	var out []*Room
	for _, room := range reg.rooms {
		if room.lastActive.Before(cutoff) {
			out = append(out, room)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})

	return out
}

// joinedBy lists rooms in which session speaks for a player.
func (reg *registry) joinedBy(session string) []*Room {
	var out []*Room
	for _, room := range reg.rooms {
		if _, ok := room.sessions[session]; ok {
			out = append(out, room)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].id < out[j].id
	})

	return out
}
