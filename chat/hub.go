package chat

import (
	"sync"
)

type wsClient struct {
	Send chan []byte
	Room string

	mu     sync.Mutex
	closed bool
}

// trySend queues a payload unless the client is closed or backed up.
// Sharing the mutex with closeSend rules out a send on a closed channel
// when shutdown races a history replay.
func (c *wsClient) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// closeSend is idempotent and safe to call while trySend is in flight.
func (c *wsClient) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans chat messages out to every socket watching a conversation.
// Rooms are conversation IDs; both the customer widget and the admin
// panel join the same room.
type Hub struct {
	rooms      map[string]map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					c.closeSend()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*wsClient]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				c.closeSend()
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				// Closed or backed-up sockets get evicted.
				if !c.trySend(m.Data) {
					c.closeSend()
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the run loop down and closes every client channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Publish pushes a payload to everyone in the conversation's room.
// Safe to call from HTTP handlers; drops the message if the hub has
// stopped.
func (h *Hub) Publish(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}
