// Package network carries player sessions over WebSocket: inbound actions
// are routed to the engine and countdown messages are pushed back out.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pearlworks/countdown/internal/countdown"
	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/events"
	"github.com/pearlworks/countdown/internal/platform/logger"
	"github.com/pearlworks/countdown/internal/platform/metrics"
)

// Server message types.
const (
	MessageText  = "MESSAGE"
	MessageEvent = "EVENT"
	MessageError = "ERROR"
)

// ServerMessage is what clients receive.
type ServerMessage struct {
	Type  string            `json:"type"`
	Text  string            `json:"text,omitempty"`
	Event *events.GameEvent `json:"event,omitempty"`
}

// ActionHandler executes player actions. The engine implements it.
type ActionHandler interface {
	Join(ctx context.Context, id uuid.UUID, name string) player.Player
	Leave(id uuid.UUID)
	Move(id uuid.UUID, to player.Position) error
	Respawn(id uuid.UUID) error
	Suicide(id uuid.UUID) (countdown.Record, error)
	CancelSuicide(id uuid.UUID) bool
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub maintains the set of active clients and routes messages to them.
type Hub struct {
	clients    map[*Client]bool
	players    map[uuid.UUID]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex

	handler    ActionHandler
	logger     *logger.Logger
	metrics    *metrics.Metrics
	sendBuffer int
}

type Option func(*Hub)

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Hub) {
		h.metrics = m
	}
}

// WithSendBuffer sets the per-client outbound queue length.
func WithSendBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// NewHub initializes a new WebSocket Hub.
func NewHub(handler ActionHandler, log *logger.Logger, opts ...Option) *Hub {
	h := &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		players:    make(map[uuid.UUID]*Client),
		handler:    handler,
		logger:     log,
		sendBuffer: 64,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			h.closeAll()
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				h.queue(client, message)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	old := h.players[client.playerID]
	if old != nil {
		old.replaced = true
		h.drop(old)
	}
	h.clients[client] = true
	h.players[client.playerID] = client
	h.mu.Unlock()

	if old != nil {
		h.logger.Info("Replaced existing session", "player", client.playerID)
	}
	if h.metrics != nil {
		h.metrics.WSConnectionsActive.Set(float64(h.Clients()))
	}
	h.logger.Info("New WebSocket client connected", "player", client.playerID, "name", client.name)
}

// remove ends a session. The player leaves the game unless a newer session
// has taken over.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if current := h.players[client.playerID]; client.replaced || (current != nil && current != client) {
		h.mu.Unlock()
		return
	}
	h.drop(client)
	h.mu.Unlock()

	h.handler.Leave(client.playerID)
	if h.metrics != nil {
		h.metrics.WSConnectionsActive.Set(float64(h.Clients()))
	}
	h.logger.Info("WebSocket client disconnected", "player", client.playerID)
}

// drop forgets a client and closes its queue. Callers hold h.mu.
func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if h.players[client.playerID] == client {
		delete(h.players, client.playerID)
	}
	close(client.send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.drop(client)
	}
}

// queue hands message to a client without blocking. A client that cannot
// keep up is disconnected. Callers hold h.mu.
func (h *Hub) queue(client *Client, message []byte) {
	select {
	case client.send <- message:
		if h.metrics != nil {
			h.metrics.WSMessagesOut.Inc()
		}
	default:
		h.logger.Warn("Client send buffer full, disconnecting", "player", client.playerID)
		h.drop(client)
		// Unblocks both pumps; ReadPump then hands the client back through leave.
		if client.conn != nil {
			client.conn.Close()
		}
	}
}

// enter hands a new client to Run. It reports false once Run has exited.
func (h *Hub) enter(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands a finished client to Run.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// SendTo implements roster.Messenger. Players without a session are skipped.
func (h *Hub) SendTo(playerID uuid.UUID, text string) {
	payload, err := json.Marshal(ServerMessage{Type: MessageText, Text: text})
	if err != nil {
		h.logger.Error("Failed to serialize player message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.players[playerID]
	if !ok {
		return
	}
	h.queue(client, payload)
}

// BroadcastEvent serializes a GameEvent and queues it for every client.
// When the broadcast queue is full the event is dropped.
func (h *Hub) BroadcastEvent(event events.GameEvent) {
	payload, err := json.Marshal(ServerMessage{Type: MessageEvent, Event: &event})
	if err != nil {
		h.logger.Error("Failed to serialize GameEvent for WebSocket broadcast", "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Broadcast queue full, dropping event", "type", event.Type)
	}
}

// Follow broadcasts countdown and scheduler events from eventLog.
func (h *Hub) Follow(eventLog *events.EventLog) {
	for _, t := range []events.EventType{
		events.EventTypeCountdownStarted,
		events.EventTypeCountdownCancelled,
		events.EventTypeCountdownExpired,
		events.EventTypeSchedulerStarted,
		events.EventTypeSchedulerStopped,
		events.EventTypePlayerDeath,
	} {
		eventLog.Subscribe(t, events.PriorityMonitor, true, func(e *events.GameEvent) {
			h.BroadcastEvent(*e)
		})
	}
}

// ServeWS upgrades a request to a player session. The player is identified
// by the "player" query parameter and named by "name".
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("player"))
	if err != nil {
		http.Error(w, "player must be a UUID", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = id.String()[:8]
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	h.handler.Join(r.Context(), id, name)
	client := NewClient(h, conn, id, name)
	if !client.Register() {
		conn.Close()
		h.handler.Leave(id)
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
