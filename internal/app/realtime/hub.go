/*
Package realtime contains the room-based messaging core.

This file defines the Hub, the single owner of all live connection and room
membership state. Every mutation (register, unregister, join, leave) and every
fan-out runs on one goroutine, so the membership maps never see concurrent
access and need no locking. Public methods enqueue work onto the Hub's mailbox
and return immediately; delivery to an individual connection is a non-blocking
enqueue onto that connection's buffered send channel, so one slow consumer can
never delay another room's traffic.
*/
package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"meetrix/internal/pkg/logx"
)

const (
	// opsChannelBuffer sizes the Hub mailbox. Large enough to absorb bursts of
	// joins and broadcasts from many readers without blocking them.
	opsChannelBuffer = 1024

	// userRoomPrefix keys a user's private notification channel.
	userRoomPrefix = "user_"
)

// UserRoom returns the private room key deterministically derived from a user
// identity. Any connection authenticated as that user joins this room on
// connect, which is what makes point-to-point notification delivery work.
func UserRoom(userID string) string {
	return userRoomPrefix + userID
}

// Hub tracks live connections and their room memberships and fans events out
// to room members. It is instantiated once at process start and handed to
// every component that needs it; there is no package-level instance.
type Hub struct {
	// clients maps connection ID to the live client. Owned by the Run loop.
	clients map[string]*Client

	// rooms maps a room key to its current member set, keyed by connection ID.
	// A room exists exactly as long as it has members. Owned by the Run loop.
	rooms map[string]map[string]*Client

	// ops is the mailbox: every state mutation and fan-out is a closure
	// executed by the Run loop in FIFO order.
	ops chan func()

	// stopChan signals the Run loop to terminate.
	stopChan chan struct{}

	// stopOnce guards against double shutdown.
	stopOnce sync.Once

	// wg waits for the Run loop to finish during shutdown.
	wg sync.WaitGroup

	// structured logger with Hub context.
	logger zerolog.Logger
}

// NewHub constructs a Hub and starts its event loop.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "Hub").Logger()

	h := &Hub{
		clients:  make(map[string]*Client),
		rooms:    make(map[string]map[string]*Client),
		ops:      make(chan func(), opsChannelBuffer),
		stopChan: make(chan struct{}),
		logger:   hubLogger,
	}

	h.wg.Add(1)

	go h.run()

	return h
}

// run executes the Hub's event loop until Shutdown is called. All registry
// state lives on this goroutine.
func (h *Hub) run() {
	defer h.wg.Done()

	h.logger.Info().Msg("Hub loop started.")

	for {
		select {
		case op := <-h.ops:
			op()

		case <-h.stopChan:
			// Operations enqueued before Shutdown must still execute, or a
			// client registered moments earlier would never get its send
			// channel closed and its WritePump would never exit.
			h.drainPending()

			for _, client := range h.clients {
				client.closeSend()
			}
			h.clients = make(map[string]*Client)
			h.rooms = make(map[string]map[string]*Client)

			h.logger.Info().Msg("Hub loop stopped.")
			return
		}
	}
}

// drainPending executes every operation already sitting in the mailbox.
// Run-loop only, called once during shutdown.
func (h *Hub) drainPending() {
	for {
		select {
		case op := <-h.ops:
			op()
		default:
			return
		}
	}
}

// Shutdown stops the Run loop and closes every client's send channel, which
// lets each WritePump send its close frame and exit. Safe to call once the
// HTTP server has stopped accepting upgrades.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	h.wg.Wait()
}

// do enqueues an operation for the Run loop. After shutdown the mailbox is
// abandoned, so enqueueing degrades to a no-op instead of blocking forever.
func (h *Hub) do(op func()) {
	select {
	case h.ops <- op:
	case <-h.stopChan:
	}
}

// Register adds a newly accepted connection to the registry.
func (h *Hub) Register(c *Client) {
	h.do(func() {
		h.clients[c.id] = c

		h.logger.Info().
			Str("connection_id", c.id).
			Int("total_connections", len(h.clients)).
			Msg("Connection registered.")
	})
}

// Unregister removes a disconnected connection from the registry and from
// every room it joined, then closes its send channel. Operations referencing
// the connection afterwards are no-ops.
func (h *Hub) Unregister(c *Client) {
	h.do(func() {
		current, ok := h.clients[c.id]
		if !ok || current != c {
			return
		}

		delete(h.clients, c.id)

		for roomKey := range c.rooms {
			h.removeFromRoom(c, roomKey)
		}

		c.closeSend()

		h.logger.Info().
			Str("connection_id", c.id).
			Int("total_connections", len(h.clients)).
			Msg("Connection unregistered.")
	})
}

// Join adds the connection to the room's member set. Joining a room already
// joined, or joining after disconnect, is a no-op.
func (h *Hub) Join(c *Client, roomKey string) {
	h.do(func() {
		if _, ok := h.clients[c.id]; !ok {
			return
		}

		members, ok := h.rooms[roomKey]
		if !ok {
			members = make(map[string]*Client)
			h.rooms[roomKey] = members
		}

		members[c.id] = c
		c.rooms[roomKey] = struct{}{}

		h.logger.Debug().
			Str("connection_id", c.id).
			Str("room_key", roomKey).
			Int("room_size", len(members)).
			Msg("Connection joined room.")
	})
}

// Leave removes the connection from the room's member set. Leaving a room not
// joined is a no-op.
func (h *Hub) Leave(c *Client, roomKey string) {
	h.do(func() {
		if _, ok := h.clients[c.id]; !ok {
			return
		}

		h.removeFromRoom(c, roomKey)
	})
}

// removeFromRoom deletes the membership record in both directions and drops
// the room entry once its last member is gone. Run-loop only.
func (h *Hub) removeFromRoom(c *Client, roomKey string) {
	delete(c.rooms, roomKey)

	members, ok := h.rooms[roomKey]
	if !ok {
		return
	}

	delete(members, c.id)
	if len(members) == 0 {
		delete(h.rooms, roomKey)
	}
}

// Broadcast delivers one event to every current member of the room, skipping
// excludeID if non-empty. Broadcasting to an empty or unknown room is a
// harmless no-op. Delivery per member is a non-blocking enqueue: a member
// whose send queue is full misses this event rather than stalling the loop.
func (h *Hub) Broadcast(roomKey string, event string, payload any, excludeID string) {
	frame, err := encodeEvent(event, payload)
	if err != nil {
		h.logger.Error().
			Str("event", event).
			Str("room_key", roomKey).
			Err(err).
			Msg("Failed to encode broadcast frame.")
		return
	}

	h.do(func() {
		members := h.rooms[roomKey]

		for id, member := range members {
			if id == excludeID {
				continue
			}

			if !member.enqueue(frame) {
				h.logger.Warn().
					Str("connection_id", id).
					Str("event", event).
					Str("room_key", roomKey).
					Msg("Member send queue full, dropping event.")
			}
		}
	})
}

// BroadcastToRoom pushes a server-originated event to every member of a room.
// This is the escape hatch the CRUD layer uses for class-wide events such as
// a session going live.
func (h *Hub) BroadcastToRoom(roomKey string, event string, payload any) {
	h.Broadcast(roomKey, event, payload, "")
}

// Dispatch delivers a notification payload to one user's private channel.
// A user with no live connection in their private room receives nothing; the
// durable copy written by the caller is the system of record.
func (h *Hub) Dispatch(userID string, payload any) {
	h.Broadcast(UserRoom(userID), EventNotification, payload, "")
}

// Members returns the connection IDs currently joined to the room. The reply
// travels through the mailbox, so it observes every operation enqueued before
// the call.
func (h *Hub) Members(roomKey string) []string {
	reply := make(chan []string, 1)

	h.do(func() {
		members := h.rooms[roomKey]
		ids := make([]string, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		reply <- ids
	})

	select {
	case ids := <-reply:
		return ids
	case <-h.stopChan:
		return nil
	}
}

// ConnectionCount returns the number of live registered connections.
func (h *Hub) ConnectionCount() int {
	reply := make(chan int, 1)

	h.do(func() {
		reply <- len(h.clients)
	})

	select {
	case n := <-reply:
		return n
	case <-h.stopChan:
		return 0
	}
}
