package main

import (
	"yollab-backend/internal/api"
	"yollab-backend/internal/api/router"
	"yollab-backend/internal/env"
	"yollab-backend/internal/presence"
	"yollab-backend/internal/queue"
	"yollab-backend/internal/signaling"
)

func main() {
	queueManager := queue.NewRequestQueueManager(10, 10)

	store := presence.NewRedisStore(env.Get(env.RedisURL), env.Get(env.RedisPass))
	registry := signaling.NewRegistry()
	coordinator := signaling.NewCoordinator(store, registry)
	sigRouter := signaling.NewRouter(coordinator, registry)
	handler := signaling.NewHandler(sigRouter, coordinator, registry)

	api.SetAllowedOrigins(env.Get(env.WebUrl))

	server := api.NewAPIServer(
		":"+env.GetOrDefault(env.Port, "3000"),
		queueManager,
		store,
		handler,
		router.UtilsRoutes("/api/v1"),
		router.SignalingRoutes("/api/v1"),
	)

	server.Run()
}
