/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"
)

// inbound is one item of a session's ordered stream: an event, or the end
// of the connection when ev is nil.
type inbound struct {
	client *Client
	ev     event
}

type roomQuery struct {
	id    string
	reply chan roomLookup
}

type roomLookup struct {
	summary roomSummary
	found   bool
}

// Hub is the dispatch loop. It owns the Coordinator and every connected
// Client, and handles one request at a time.
type Hub struct {
	cfg     *Config
	coord   *Coordinator
	clients map[string]*Client

	register chan *Client
	inbox    chan inbound
	queries  chan roomQuery
	done     chan struct{}
}

func newHub(cfg *Config, rng *rand.Rand) *Hub {
	h := &Hub{
		cfg:      cfg,
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		inbox:    make(chan inbound, 256),
		queries:  make(chan roomQuery),
		done:     make(chan struct{}),
	}
	h.coord = newCoordinator(cfg, h, rng)

	return h
}

// send implements emitter. A client whose buffer is full is dropped; its
// read pump then reports the disconnect.
func (h *Hub) send(session, event string, data any) {
	c, ok := h.clients[session]
	if !ok {
		return
	}

	frame, err := encodeFrame(event, data)
	if err != nil {
		logf(h.cfg, "ERROR: Encoding %s for %s: %v", event, session, err)

		return
	}

	select {
	case c.send <- frame:
	default:
		logf(h.cfg, "ERROR: Dropping slow client %s", session)
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

func encodeFrame(event string, data any) ([]byte, error) {
	env := envelope{Type: event}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}

	return json.Marshal(env)
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)

	var reap <-chan time.Time
	if h.cfg.sessionTimeout > 0 {
		ticker := time.NewTicker(h.cfg.sessionTimeout / 2)
		defer ticker.Stop()
		reap = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c.id] = c

		case in := <-h.inbox:
			if in.ev == nil {
				h.drop(in.client)
				h.coord.disconnect(in.client.id)
				continue
			}
			h.coord.dispatch(in.client.id, in.ev)

		case q := <-h.queries:
			summary, found := h.coord.summary(q.id)
			q.reply <- roomLookup{summary: summary, found: found}

		case now := <-reap:
			h.coord.reapIdle(now.Add(-h.cfg.sessionTimeout), h.connected)
		}
	}
}

func (h *Hub) connected(session string) bool {
	_, ok := h.clients[session]

	return ok
}

// lookup asks the dispatch loop for a room summary.
func (h *Hub) lookup(ctx context.Context, id string) (roomSummary, bool) {
	q := roomQuery{id: id, reply: make(chan roomLookup, 1)}

	select {
	case h.queries <- q:
	case <-h.done:
		return roomSummary{}, false
	case <-ctx.Done():
		return roomSummary{}, false
	}

	select {
	case res := <-q.reply:
		return res.summary, res.found
	case <-ctx.Done():
		return roomSummary{}, false
	}
}
