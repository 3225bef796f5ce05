package provider

import (
	"errors"
	"log/slog"
	"net/http"

	"song-request-service/internal/httpx"
)

// HandleSearch proxies a video search.
// GET /search-songs?q=
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	items, err := s.provider.Search(r.Context(), q)
	if err != nil {
		writeSearchError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func writeSearchError(w http.ResponseWriter, err error) {
	var ue *UpstreamError
	var te *TransportError
	switch {
	case errors.Is(err, ErrMissingQuery), errors.Is(err, ErrQueryTooLong):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrMissingAPIKey):
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &ue):
		slog.Error("youtube api error", "status", ue.StatusCode, "details", ue.Details)
		httpx.WriteJSON(w, ue.HTTPStatus(), map[string]any{
			"error":   "YouTube API error",
			"status":  ue.StatusCode,
			"details": ue.Details,
		})
	case errors.As(err, &te):
		slog.Error("youtube fetch failed", "err", te.Err)
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "YouTube fetch failed",
			"message": te.Err.Error(),
		})
	default:
		slog.Error("youtube search failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "YouTube fetch failed")
	}
}
