package websocket

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// Server-to-client event names
const (
	EventNotificationNew = "notification:new"
	EventJoined          = "joined"
	EventLeft            = "left"
)

// Client-to-server event names
const (
	EventJoin  = "join"
	EventLeave = "leave"
)

const dispatchQueueSize = 1024

// Envelope is the frame exchanged in both directions over a connection
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RoomName returns the room a user's connections join
func RoomName(userID int64) string {
	return "user_" + strconv.FormatInt(userID, 10)
}

type membership struct {
	client *Client
	userID int64
}

type delivery struct {
	userID int64
	event  string
	data   []byte
}

// Hub owns room membership for every live connection. All membership changes
// and deliveries run on the Run goroutine, so deliveries to one user leave in
// the order EmitToUser was called.
type Hub struct {
	// rooms maps room name to member connections. Written only by Run.
	rooms map[string]map[*Client]struct{}

	// clients holds every registered connection, joined or not
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	dispatch   chan delivery

	// mu guards rooms and clients for readers outside Run
	mu sync.RWMutex

	done     chan struct{}
	stopOnce sync.Once

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		dispatch:   make(chan delivery, dispatchQueueSize),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations, room changes and deliveries until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case m := <-h.join:
			h.joinRoom(m.client, m.userID)

		case m := <-h.leave:
			h.leaveRoom(m.client, m.userID)

		case d := <-h.dispatch:
			h.deliver(d)
		}
	}
}

// EmitToUser queues event for every connection in the user's room. It never blocks:
// when the user has no connection the event is dropped, and when the dispatch
// queue is saturated the event is dropped with a warning.
func (h *Hub) EmitToUser(userID int64, event string, payload interface{}) {
	select {
	case <-h.done:
		return
	default:
	}

	data, err := encodeEnvelope(event, payload)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Str("event", event).Msg("Failed to marshal realtime event")
		return
	}

	select {
	case h.dispatch <- delivery{userID: userID, event: event, data: data}:
	default:
		h.logger.Warn().Int64("userID", userID).Str("event", event).Msg("Dispatch queue full, dropping realtime event")
	}
}

// ConnectionCount returns the number of live connections, joined or not
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a freshly upgraded connection in the CONNECTED state.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister disconnects a client and drops all of its memberships.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Join moves a client into the user's room.
func (h *Hub) Join(client *Client, userID int64) {
	select {
	case h.join <- membership{client: client, userID: userID}:
	case <-h.done:
	}
}

// Leave removes a client from the user's room without disconnecting it.
func (h *Hub) Leave(client *Client, userID int64) {
	select {
	case h.leave <- membership{client: client, userID: userID}:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	client.state = StateConnected
	h.logger.Debug().Str("connID", client.id).Msg("Client connected")
}

func (h *Hub) joinRoom(client *Client, userID int64) {
	if client.state == StateDisconnected {
		return
	}

	room := RoomName(userID)

	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	h.mu.Unlock()

	client.rooms[room] = struct{}{}
	client.state = StateJoined

	h.logger.Info().
		Str("connID", client.id).
		Int64("userID", userID).
		Msg("Client joined user room")

	if ack, err := encodeEnvelope(EventJoined, map[string]string{"room": room}); err == nil {
		h.send(client, ack)
	}
}

func (h *Hub) leaveRoom(client *Client, userID int64) {
	room := RoomName(userID)
	if _, ok := client.rooms[room]; !ok {
		return
	}

	h.mu.Lock()
	h.dropMembershipLocked(client, room)
	h.mu.Unlock()

	delete(client.rooms, room)
	if len(client.rooms) == 0 && client.state == StateJoined {
		client.state = StateConnected
	}

	if ack, err := encodeEnvelope(EventLeft, map[string]string{"room": room}); err == nil {
		h.send(client, ack)
	}
}

// removeClient is idempotent: a client removed for a full buffer is later
// unregistered again by its read pump.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for room := range client.rooms {
		h.dropMembershipLocked(client, room)
	}
	h.mu.Unlock()

	client.rooms = make(map[string]struct{})
	client.state = StateDisconnected
	close(client.send)

	h.logger.Debug().Str("connID", client.id).Msg("Client disconnected")
}

func (h *Hub) dropMembershipLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) deliver(d delivery) {
	members := h.rooms[RoomName(d.userID)]
	if len(members) == 0 {
		h.logger.Debug().Int64("userID", d.userID).Str("event", d.event).Msg("No live connection for user, event dropped")
		return
	}

	for client := range members {
		h.send(client, d.data)
	}
}

// send never blocks the hub: a client whose buffer is full is disconnected.
func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.logger.Warn().Str("connID", client.id).Msg("Client send buffer full, disconnecting")
		h.removeClient(client)
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.removeClient(client)
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func encodeEnvelope(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
