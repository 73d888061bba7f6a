/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

const (
	maxFrameSize = 64 * 1024
	sendBuffer   = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection, known to the game as a session.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

func newClient(cfg *Config, conn *websocket.Conn) *Client {
	return &Client{
		id:      newSessionID(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(cfg.rateLimit), cfg.rateBurst),
	}
}

func serveWS(cfg *Config, h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Upgrading connection from %s: %v", realIP(r), err)
			return
		}

		c := newClient(cfg, conn)

		select {
		case h.register <- c:
		case <-h.done:
			_ = conn.Close()
			return
		}

		logf(cfg, "SERVE: Session %s connected from %s", c.id, realIP(r))

		go c.writePump(cfg)
		c.readPump(cfg, h)

		logf(cfg, "SERVE: Session %s disconnected", c.id)
	}
}

// readPump decodes frames and hands them to the hub in arrival order. A
// read error, including a missed pong, ends the session; the disconnect is
// queued behind every frame read before it.
func (c *Client) readPump(cfg *Config, h *Hub) {
	defer func() {
		select {
		case h.inbox <- inbound{client: c}:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.playerTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.playerTimeout))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if !c.limiter.Allow() {
			logf(cfg, "ERROR: Rate limit exceeded by %s, dropping frame", c.id)
			continue
		}

		ev, err := decodeEvent(raw)
		if err != nil {
			ev = malformedMsg{err: err}
		}

		select {
		case h.inbox <- inbound{client: c, ev: ev}:
		case <-h.done:
			return
		}
	}
}

// writePump drains the send buffer and keeps the connection alive with
// pings. It exits once the hub closes the buffer.
func (c *Client) writePump(cfg *Config) {
	ticker := time.NewTicker(cfg.playerTimeout * 9 / 10)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
