// Package websocket fans realtime notification events out to every open connection of a
// user.
package websocket

import (
	"context"
	"sync"

	"github.com/anjiri1684/mentorship/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	clientBuffer  = 16
	publishBuffer = 256
)

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one authenticated connection. Only its write pump writes to conn once it is
// registered.
type Client struct {
	UserID uuid.UUID

	conn Conn
	send chan models.RealtimeEvent
	once sync.Once
	done chan struct{}
}

func NewClient(userID uuid.UUID, conn Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan models.RealtimeEvent, clientBuffer),
		done:   make(chan struct{}),
	}
}

func (c *Client) stop() {
	c.once.Do(func() { close(c.send) })
}

// Done is closed once WritePump has returned.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// WritePump writes queued events until the hub drops the client or a write fails.
func (c *Client) WritePump(log *zap.Logger) {
	defer close(c.done)
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			log.Debug("websocket write failed", zap.Stringer("user_id", c.UserID), zap.Error(err))
			_ = c.conn.Close()
			for range c.send {
			}
			return
		}
	}
}

type envelope struct {
	userID uuid.UUID
	event  models.RealtimeEvent
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	publish    chan envelope

	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	done chan struct{}
	log  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan envelope, publishBuffer),
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns the client set until ctx is cancelled, then drops every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, set := range h.clients {
				for client := range set {
					client.stop()
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("websocket client registered", zap.Stringer("user_id", client.UserID), zap.Int("connections", len(set)))
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.publish:
			h.deliver(msg)
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[client.UserID]; ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			client.stop()
		}
		if len(set) == 0 {
			delete(h.clients, client.UserID)
		}
	}
}

func (h *Hub) deliver(msg envelope) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients[msg.userID] {
		select {
		case client.send <- msg.event:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.log.Warn("dropping slow websocket client", zap.Stringer("user_id", client.UserID))
		h.drop(client)
	}
}

// Register adds client to the hub. After Run has returned the client is stopped
// immediately.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.stop()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues event for userID without blocking. Events are dropped when the queue
// is full.
func (h *Hub) Publish(userID uuid.UUID, event models.RealtimeEvent) {
	select {
	case h.publish <- envelope{userID: userID, event: event}:
	default:
		h.log.Warn("realtime queue full, dropping event", zap.Stringer("user_id", userID), zap.String("type", event.Type))
	}
}

// Connected returns the number of open connections for userID.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
