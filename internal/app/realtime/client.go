/*
Package realtime contains the room-based messaging core.

This file defines the Client struct, representing one live WebSocket
connection. It runs the read/write pumps, decodes inbound events at the
boundary, and routes them into the Hub: registry operations for join/leave,
the relay path for chat messages, and the sender-excluded typing signals.
*/
package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"meetrix/internal/pkg/logx"
	"meetrix/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// capacity of the per-connection outbound queue. A connection that falls
	// this far behind starts missing events (at-most-once delivery).
	sendQueueSize = 256
)

// Client represents one live transport connection.
type Client struct {
	// id is the unique connection identifier assigned on accept.
	id string

	// hub owns all membership state for this connection.
	hub *Hub

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// send queues outbound frames for the WritePump.
	send chan []byte

	// sendClosed records that send has been closed. Touched only by the Hub loop.
	sendClosed bool

	// rooms is the set of room keys this connection has joined.
	// Owned by the Hub loop; never touched from the pumps.
	rooms map[string]struct{}

	// userID is the authenticated identity, or empty for an anonymous connection.
	userID string

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an accepted connection. userID may be
// empty when the connection carried no (or an invalid) identity token.
func NewClient(hub *Hub, wsConn *websocket.Conn, userID string) *Client {
	connID := randx.ConnectionID()

	clientLogger := logx.Logger().With().
		Str("connection_id", connID).
		Str("user_id", userID).
		Logger()

	return &Client{
		id:     connID,
		hub:    hub,
		conn:   wsConn,
		send:   make(chan []byte, sendQueueSize),
		rooms:  make(map[string]struct{}),
		userID: userID,
		logger: clientLogger,
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// enqueue attempts a non-blocking delivery of a frame to this connection.
// It reports false when the queue is full. Called only from the Hub loop.
func (c *Client) enqueue(frame []byte) bool {
	if c.sendClosed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue, which makes the WritePump send a close
// frame and exit. Called only from the Hub loop.
func (c *Client) closeSend() {
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

// ReadPump reads frames from the WebSocket connection until it closes,
// handling heartbeats (Pong) and dispatching decoded events. It performs the
// terminal cleanup when the transport reports disconnection.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.processInboundFrame(frame)
	}
}

// cleanupOnDisconnect removes the connection from every room and closes the
// transport. Disconnect is the one terminal event: afterwards every operation
// referencing this connection is a no-op.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Connection cleanup starting.")

	c.hub.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// processInboundFrame decodes one raw frame and routes it by event kind.
// Malformed input is dropped with a log line; the connection always survives.
func (c *Client) processInboundFrame(frame []byte) {
	event, err := decodeInbound(frame)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid event frame")
		return
	}

	switch event.kind {
	case kindJoinRoom:
		c.handleJoinRoom(event.data)

	case kindLeaveRoom:
		c.handleLeaveRoom(event.data)

	case kindSendMessage:
		c.handleSendMessage(event.data)

	case kindTypingStart:
		c.handleTypingStart(event.data)

	case kindTypingStop:
		c.handleTypingStop(event.data)

	default:
		c.logger.Warn().Msg("Client sent unsupported event")
	}
}

// handleJoinRoom adds the connection to the given room. The room key is
// opaque to this layer; authorization happened before the client chose it.
func (c *Client) handleJoinRoom(data json.RawMessage) {
	var roomKey string
	if err := json.Unmarshal(data, &roomKey); err != nil || roomKey == "" {
		c.logger.Warn().Msg("Client sent invalid join_room payload")
		return
	}

	c.hub.Join(c, roomKey)
}

// handleLeaveRoom removes the connection from the given room.
func (c *Client) handleLeaveRoom(data json.RawMessage) {
	var roomKey string
	if err := json.Unmarshal(data, &roomKey); err != nil || roomKey == "" {
		c.logger.Warn().Msg("Client sent invalid leave_room payload")
		return
	}

	c.hub.Leave(c, roomKey)
}

// handleSendMessage is the relay path: validate, stamp, broadcast to the
// whole room including the sender, so the sender's UI renders the
// server-confirmed copy rather than an optimistic local one.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid send_message payload")
		return
	}

	if !payload.valid() {
		c.logger.Warn().Str("room_key", payload.RoomID).Msg("Dropping send_message with missing fields")
		return
	}

	message := stampMessage(payload)

	c.hub.Broadcast(message.RoomID, EventReceiveMessage, message, "")
}

// handleTypingStart relays a start-typing signal to everyone else in the room.
func (c *Client) handleTypingStart(data json.RawMessage) {
	var payload typingStartPayload
	if err := json.Unmarshal(data, &payload); err != nil || !payload.valid() {
		c.logger.Warn().Msg("Client sent invalid typing_start payload")
		return
	}

	c.hub.Broadcast(payload.RoomID, EventUserTyping, payload.User, c.id)
}

// handleTypingStop relays a stop-typing signal to everyone else in the room.
// No state is kept: a missing stop (e.g. disconnect mid-type) is never
// reconciled server-side.
func (c *Client) handleTypingStop(data json.RawMessage) {
	var payload typingStopPayload
	if err := json.Unmarshal(data, &payload); err != nil || !payload.valid() {
		c.logger.Warn().Msg("Client sent invalid typing_stop payload")
		return
	}

	c.hub.Broadcast(payload.RoomID, EventUserStoppedTyping, payload.UserID, c.id)
}

// WritePump writes queued frames to the WebSocket connection and keeps the
// heartbeat alive. It exits when the send channel closes or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel. Returns
// false when the WritePump loop should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping to maintain the heartbeat.
// Returns false when the WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
