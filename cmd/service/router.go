package main

import (
	"net/http"
	"time"

	"song-request-service/internal/httpx"
	"song-request-service/internal/provider"
	"song-request-service/internal/queue"
	"song-request-service/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const banner = "✅ Song request backend running"

type routerDeps struct {
	Search   *provider.Server
	Queue    *queue.Server
	Realtime *realtime.Server

	AllowedOrigin  string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httpx.CORS(d.AllowedOrigin))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteText(w, http.StatusOK, "ok")
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteText(w, http.StatusOK, banner)
	})

	// websocket connections outlive the request timeout
	if d.Realtime != nil {
		d.Realtime.Routes(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(d.RequestTimeout))
		r.Use(httpx.BodySizeLimit(d.MaxBodyBytes))

		d.Search.Routes(r)
		d.Queue.Routes(r)
	})

	return r
}
