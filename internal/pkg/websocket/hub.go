package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/teamreg/internal/app/models"
	"github.com/yigit/teamreg/internal/pkg/metrics"
)

// EventTeamAdded is sent when the endpoint accepts a new team
const EventTeamAdded = "team.added"

// Message represents an event pushed to feed clients
type Message struct {
	Type      string       `json:"type"`
	Team      *models.Team `json:"team,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Hub maintains the set of open team-feed connections and broadcasts
// registration events to them
type Hub struct {
	clients map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(m *metrics.Metrics, logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		clients:    make(map[*Client]bool),
		metrics:    m,
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// TeamAdded queues a team.added event. It never blocks the caller; events
// are dropped when the queue is full.
func (h *Hub) TeamAdded(team models.Team) {
	msg := &Message{Type: EventTeamAdded, Team: &team, Timestamp: time.Now()}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("teamID", team.ID).Msg("Team feed queue full, event dropped")
	}
}

// Register adds a client unless the hub has stopped
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.stopped:
		return false
	}
}

// Unregister removes a client; a no-op once the hub has stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}

// ClientsCount returns the number of open connections
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetFeedClients(n)
	h.logger.Debug().Str("addr", client.addr).Int("clients", n).Msg("Feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetFeedClients(n)
	h.logger.Debug().Str("addr", client.addr).Int("clients", n).Msg("Feed client unregistered")
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("type", message.Type).Msg("Failed to marshal feed message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop it rather than stall the hub
			delete(h.clients, client)
			close(client.send)
		}
	}
	h.metrics.SetFeedClients(len(h.clients))

	h.logger.Debug().
		Str("type", message.Type).
		Int("clientCount", len(h.clients)).
		Msg("Feed message broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.metrics.SetFeedClients(0)
}
