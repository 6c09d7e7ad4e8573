package api

import (
	"fmt"
	"net/http"

	"yollab-backend/internal/presence"
	"yollab-backend/internal/queue"
	"yollab-backend/internal/signaling"

	"github.com/prometheus/client_golang/prometheus"
)

type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	store               presence.Store
	routeRegistrars     []RouteRegistrar
	handler             *signaling.Handler
	metrics             *metrics
}

func NewAPIServer(listenAddr string, rqm *queue.RequestQueueManager, store presence.Store, handler *signaling.Handler, registrars ...RouteRegistrar) *APIServer {

	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		store:               store,
		handler:             handler,
		routeRegistrars:     registrars,
		metrics:             newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

// HTTPHandler assembles the full middleware stack the server runs
// behind: registered routes, /metrics, and the Prometheus instrument
// wrapper.
func (s *APIServer) HTTPHandler() http.Handler {
	mux := http.NewServeMux()

	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}

	mux.Handle("/metrics", s.metrics.metricsHandler())

	return s.metrics.instrument(mux)
}

func (s *APIServer) Run() {
	fmt.Printf("Server listening on http://localhost%s\n", s.listenAddr)

	if err := http.ListenAndServe(s.listenAddr, s.HTTPHandler()); err != nil {
		fmt.Printf("server stopped: %v\n", err)
	}
}

func (s *APIServer) Store() presence.Store {
	return s.store
}

func (s *APIServer) Handler() *signaling.Handler {
	return s.handler
}
