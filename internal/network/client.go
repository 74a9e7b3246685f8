package network

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pearlworks/countdown/internal/domain/player"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
	// Minimum time between two countdown commands of one player.
	commandCooldown = time.Second
)

// Action types accepted from clients.
const (
	ActionMove    = "MOVE"
	ActionSuicide = "SUICIDE"
	ActionCancel  = "CANCEL"
	ActionRespawn = "RESPAWN"
)

// PlayerAction represents an incoming command from a player's client.
type PlayerAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is one player's WebSocket session.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID uuid.UUID
	name     string

	lastCommand time.Time
	// Set under hub.mu when a newer session for the same player took over.
	replaced bool
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn, playerID uuid.UUID, name string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, hub.sendBuffer),
		playerID: playerID,
		name:     name,
	}
}

// Register adds the client to the hub. It reports false if the hub is
// no longer running.
func (c *Client) Register() bool {
	return c.hub.enter(c)
}

// ReadPump pumps actions from the websocket connection to the engine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket read failed", "player", c.playerID, "error", err)
			}
			break
		}
		if c.hub.metrics != nil {
			c.hub.metrics.WSMessagesIn.Inc()
		}

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Warn("Failed to parse PlayerAction from WebSocket", "player", c.playerID, "error", err)
			c.reply(MessageError, "malformed action")
			continue
		}

		c.handlePlayerAction(action)
	}
}

func (c *Client) handlePlayerAction(action PlayerAction) {
	handler := c.hub.handler

	switch action.Type {
	case ActionMove:
		var to player.Position
		if err := json.Unmarshal(action.Payload, &to); err != nil {
			c.reply(MessageError, "MOVE needs a position")
			return
		}
		if err := handler.Move(c.playerID, to); err != nil {
			c.reply(MessageError, err.Error())
		}
	case ActionSuicide:
		if !c.allowCommand() {
			return
		}
		if _, err := handler.Suicide(c.playerID); err != nil {
			c.reply(MessageError, err.Error())
			return
		}
		c.hub.logger.Event("PLAYER_ACTION_SUICIDE", c.playerID.String(), "Started suicide countdown")
	case ActionCancel:
		if !c.allowCommand() {
			return
		}
		if !handler.CancelSuicide(c.playerID) {
			c.reply(MessageError, "no countdown running")
		}
	case ActionRespawn:
		if err := handler.Respawn(c.playerID); err != nil {
			c.reply(MessageError, err.Error())
		}
	default:
		c.hub.logger.Warn("Unknown PlayerAction type", "type", action.Type, "player", c.playerID)
		c.reply(MessageError, "unknown action "+action.Type)
	}
}

func (c *Client) allowCommand() bool {
	if time.Since(c.lastCommand) < commandCooldown {
		c.hub.logger.Warn("Rate limit exceeded for client command", "player", c.playerID)
		c.reply(MessageError, "slow down")
		return false
	}
	c.lastCommand = time.Now()
	return true
}

// reply queues a message for this client only.
func (c *Client) reply(kind, text string) {
	payload, err := json.Marshal(ServerMessage{Type: kind, Text: text})
	if err != nil {
		return
	}
	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	c.hub.queue(c, payload)
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
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
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.hub.logger.Debug("WebSocket write failed", "player", c.playerID, "error", err)
				}
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
