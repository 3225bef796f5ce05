package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"song-request-service/internal/config"
	"song-request-service/internal/events"
	"song-request-service/internal/logger"
	"song-request-service/internal/provider"
	"song-request-service/internal/queue"
	"song-request-service/internal/realtime"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("song-request-service: config", "err", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.YouTubeAPIKey == "" {
		log.Warn("YT_API_KEY is not set, /search-songs will fail until it is configured")
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	var pub events.Publisher = hub
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
		pub = events.NewRedisPublisher(rdb, events.BroadcastChannel)
	}

	rt := realtime.NewServer(hub, rdb, cfg.CORSAllowedOrigin)
	if rdb != nil {
		go rt.RunRedisSubscriber(ctx)
	}

	yt := provider.NewYouTubeClient(cfg.YouTubeAPIKey, cfg.YouTubeSearchURL, cfg.YouTubeTimeout)

	handler := setupRouter(routerDeps{
		Search:         provider.NewServer(yt, cfg.YouTubeAPIKey),
		Queue:          queue.NewServer(queue.New(pub)),
		Realtime:       rt,
		AllowedOrigin:  cfg.CORSAllowedOrigin,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	log.Info("song-request-service listening", "addr", "http://localhost:"+cfg.Port, "redis", rdb != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("song-request-service: serve", "err", err)
		os.Exit(1)
	}
}
