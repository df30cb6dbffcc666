package websocket

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512 * 1024

	// Outbound frames buffered per connection before it is treated as slow
	sendBufferSize = 256
)

// ConnState is the lifecycle state of a connection
type ConnState int

const (
	StateConnected ConnState = iota
	StateJoined
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateJoined:
		return "JOINED"
	default:
		return "DISCONNECTED"
	}
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	id  string
	hub *Hub

	// The WebSocket connection. Nil for connections created in tests.
	conn *websocket.Conn

	// Buffered channel of outbound frames. Closed by the hub on disconnect.
	send chan []byte

	// rooms and state are owned by the hub's Run goroutine
	rooms map[string]struct{}
	state ConnState

	logger zerolog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, logger zerolog.Logger) *Client {
	id := uuid.New().String()
	return &Client{
		id:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]struct{}),
		state:  StateConnected,
		logger: logger.With().Str("connID", id).Logger(),
	}
}

// ID returns the connection identifier
func (c *Client) ID() string {
	return c.id
}

// readPump pumps frames from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Msg("WebSocket read error")
			}
			return
		}

		c.handleFrame(message)
	}
}

func (c *Client) handleFrame(message []byte) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to unmarshal client frame")
		return
	}

	switch env.Event {
	case EventJoin, EventLeave:
		userID, err := parseUserID(env.Data)
		if err != nil {
			c.logger.Warn().Err(err).Str("event", env.Event).Msg("Ignoring frame with invalid user id")
			return
		}
		if env.Event == EventJoin {
			c.hub.Join(c, userID)
		} else {
			c.hub.Leave(c, userID)
		}
	default:
		c.logger.Debug().Str("event", env.Event).Msg("Ignoring unknown client event")
	}
}

// parseUserID accepts the id as a JSON number or a numeric string
func parseUserID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing user id")
	}

	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errors.New("user id must be a number")
		}
		id, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, errors.New("user id must be a number")
		}
	}

	if id <= 0 {
		return 0, errors.New("user id must be positive")
	}
	return id, nil
}

// writePump pumps frames from the hub to the websocket connection, one frame per event
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
