package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"song-request-service/internal/events"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	hub      *Hub
	rdb      *redis.Client
	upgrader websocket.Upgrader
}

// NewServer serves /ws. rdb may be nil when events reach the hub directly.
// allowedOrigin "*" accepts any browser origin.
func NewServer(hub *Hub, rdb *redis.Client, allowedOrigin string) *Server {
	return &Server{
		hub: hub,
		rdb: rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/ws", s.HandleWS)
}

// HandleWS streams queue events to a DJ screen.
// GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("realtime: ws upgrade", "err", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	welcome := map[string]any{
		"type": "welcome",
		"now":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.Marshal(welcome); err == nil {
		client.send <- b
	}

	if err := s.hub.add(r.Context(), client); err != nil {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// RunRedisSubscriber forwards messages from the broadcast channel to the hub
// until ctx is cancelled.
func (s *Server) RunRedisSubscriber(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, events.BroadcastChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		slog.Error("realtime: redis subscribe", "err", err)
		return
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := s.hub.Broadcast(ctx, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}
}
