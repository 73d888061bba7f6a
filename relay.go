/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import "encoding/json"

// relay forwards an opaque WebRTC signal from session to the session named
// by to. Nothing is buffered; a signal for an absent session is lost. Media
// negotiation counts as activity for every room the sender sits in.
func (c *Coordinator) relay(session, to string, signal json.RawMessage) {
	now := c.now()
	for _, room := range c.rooms.joinedBy(session) {
		room.lastActive = now
	}

	c.out.send(to, evSignal, signalRelayMsg{
		From:   session,
		Signal: signal,
	})
}
