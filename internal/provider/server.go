package provider

import (
	"context"
	"net/http"
	"runtime"

	"song-request-service/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Provider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type Server struct {
	provider Provider
	apiKey   string
}

// NewServer wires the search handlers. apiKey is only used for /diag.
func NewServer(p Provider, apiKey string) *Server {
	return &Server{
		provider: p,
		apiKey:   apiKey,
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/diag", s.HandleDiag)
	r.Get("/search-songs", s.HandleSearch)
}

// HandleDiag reports whether the YouTube key is configured without exposing it.
func (s *Server) HandleDiag(w http.ResponseWriter, r *http.Request) {
	d := Diagnostics{
		HasKey: s.apiKey != "",
		Go:     runtime.Version(),
	}
	if d.HasKey {
		prefix := s.apiKey
		if len(prefix) > 6 {
			prefix = prefix[:6]
		}
		d.KeyPrefix = &prefix
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}
