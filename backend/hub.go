package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub fans solve lifecycle events out to connected WebSocket clients.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan solveEvent
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// solveEvent is one step of a job's life: queued, started, stage
// progress, done, failed.
type solveEvent struct {
	Event      string `json:"event"`
	JobID      string `json:"job_id"`
	Size       int    `json:"size,omitempty"`
	Stage      int    `json:"stage,omitempty"`
	Tile       int    `json:"tile,omitempty"`
	Moves      int    `json:"moves,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	Count      int    `json:"count,omitempty"`
	FailReason string `json:"fail_reason,omitempty"`
	UpdatedAt  int64  `json:"updated_at_ms"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan solveEvent, 64),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "solve_event", Payload: mustMarshal(ev)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Publish(ev solveEvent) {
	select {
	case h.broadcast <- ev:
	default:
		log.Warn().Str("event", ev.Event).Msg("dropping solve event, hub backlog full")
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveWS(hub *Hub, queue *solveQueue, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 32)}
	hub.Register(client)
	client.sendJSON(wsMessage{Type: "queue", Payload: mustMarshal(queue.Snapshot())})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_queue":
			client.sendJSON(wsMessage{Type: "queue", Payload: mustMarshal(queue.Snapshot())})
		}
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
