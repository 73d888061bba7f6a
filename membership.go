/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
)

// freshToken returns a player token not held by anyone in room.
func (r *Room) freshToken() string {
	for {
		token := newToken()
		if _, taken := r.players[token]; !taken {
			return token
		}
	}
}

// createRoom opens a room with session as its host and sole member.
func (c *Coordinator) createRoom(session, nick string, maxPlayers int, hostToken string) (string, string) {
	if maxPlayers <= 0 {
		maxPlayers = c.cfg.maxPlayers
	}
	if hostToken == "" {
		hostToken = newToken()
	}

	room := c.rooms.create(maxPlayers, hostToken, c.now())

	p := &Player{
		token:     room.freshToken(),
		session:   session,
		nick:      nick,
		isHost:    true,
		hostToken: hostToken,
	}
	room.add(p)

	c.out.send(session, evRoomCreated, roomCreatedMsg{RoomID: room.id, PlayerToken: p.token})
	c.broadcastPlayers(room)

	logf(c.cfg, "ROOMS: %q created room %s (max %d players)", nick, room.id, maxPlayers)

	return room.id, p.token
}

// joinRoom adds session to an existing room. Presenting the room's host
// token hands host status to the joiner.
func (c *Coordinator) joinRoom(session, roomID, nick, hostToken string) (string, error) {
	room, ok := c.room(roomID)
	if !ok {
		return "", errRoomNotFound
	}

	p, rejoin := room.bySession(session)
	if rejoin {
		p.nick = nick
	} else {
		if room.maxPlayers > 0 && len(room.players) >= room.maxPlayers {
			return "", errRoomFull
		}

		isHost := hostToken != "" && hostToken == room.hostToken
		if isHost {
			if prev := room.host(); prev != nil {
				prev.isHost = false
				prev.hostToken = ""
			}
		}

		p = &Player{
			token:   room.freshToken(),
			session: session,
			nick:    nick,
			isHost:  isHost,
		}
		if isHost {
			p.hostToken = hostToken
		}
		room.add(p)
	}

	c.broadcastPlayers(room)
	c.broadcast(room, session, evUserJoined, session)
	c.out.send(session, evExistingPlayers, otherSessions(room, session))
	c.out.send(session, evJoined, roomCreatedMsg{RoomID: room.id, PlayerToken: p.token})

	logf(c.cfg, "ROOMS: %q joined room %s (host: %t)", nick, room.id, p.isHost)

	return p.token, nil
}

// reconnectRoom moves the player holding playerToken onto session. Word,
// readiness and host status carry over; a round in progress is replayed to
// the reconnecting session only.
func (c *Coordinator) reconnectRoom(session, roomID, playerToken, nick string) error {
	room, ok := c.room(roomID)
	if !ok {
		return errRoomNotFound
	}

	p, ok := room.players[playerToken]
	if !ok {
		return errUnknownToken
	}

	// A session speaks for one record per room; reclaiming another token
	// releases the record it held before.
	if held, ok := room.bySession(session); ok && held != p {
		room.remove(session)
		c.afterDeparture(room, session)
	}

	old := p.session
	moved := old != session
	if moved {
		room.rekey(p, session)
		c.broadcast(room, session, evUserLeft, old)
	}

	if strings.TrimSpace(nick) != "" {
		p.nick = nick
	}

	c.broadcastPlayers(room)
	if moved {
		c.broadcast(room, session, evUserJoined, session)
	}
	c.out.send(session, evExistingPlayers, otherSessions(room, session))

	if room.status == statusPlaying && room.game != nil {
		c.out.send(session, evRoundStart, c.viewRound(room))
	}

	logf(c.cfg, "ROOMS: %q reconnected to room %s (%s -> %s)", p.nick, room.id, old, session)

	return nil
}

// leaveRoom removes session from roomID. Leaving a room one is not in, or
// one that no longer exists, does nothing.
func (c *Coordinator) leaveRoom(session, roomID string) {
	room, ok := c.room(roomID)
	if !ok {
		return
	}

	if p, ok := room.remove(session); ok {
		logf(c.cfg, "ROOMS: %q left room %s", p.nick, room.id)
		c.afterDeparture(room, session)
	}
}

// disconnect is a leave from every room session belongs to. It is safe to
// call for sessions that have already been re-keyed or removed.
func (c *Coordinator) disconnect(session string) {
	for _, room := range c.rooms.joinedBy(session) {
		if p, ok := room.remove(session); ok {
			logf(c.cfg, "ROOMS: %q disconnected from room %s", p.nick, room.id)
			c.afterDeparture(room, session)
		}
	}
}

// kickPlayer removes target from the room. Only the current host may kick;
// anyone else is ignored.
func (c *Coordinator) kickPlayer(session, roomID, target string) {
	room, ok := c.room(roomID)
	if !ok || !room.isHost(session) {
		return
	}

	p, ok := room.remove(target)
	if !ok {
		return
	}

	c.afterDeparture(room, target)
	c.out.send(target, evKicked, nil)

	logf(c.cfg, "ROOMS: %q was kicked from room %s", p.nick, room.id)
}

// afterDeparture brings the rest of the room up to date once session has
// been removed from it.
func (c *Coordinator) afterDeparture(room *Room, session string) {
	if len(room.players) == 0 {
		c.rooms.remove(room.id)

		logf(c.cfg, "ROOMS: Closed empty room %s", room.id)

		return
	}

	c.broadcastPlayers(room)
	c.broadcast(room, "", evUserLeft, session)

	if c.electHost(room) {
		c.broadcastPlayers(room)
	}

	if room.status == statusPlaying {
		c.checkRoundOver(room)
	}
}

// electHost promotes the longest-standing member when the room has no host.
func (c *Coordinator) electHost(room *Room) bool {
	if len(room.players) == 0 || room.host() != nil {
		return false
	}

	next := room.roster()[0]
	next.isHost = true
	if next.hostToken == "" {
		next.hostToken = newToken()
	}
	room.hostToken = next.hostToken

	logf(c.cfg, "ROOMS: %q is now host of room %s", next.nick, room.id)

	return true
}
