package signaling

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to signaling connections and runs
// their lifecycle. No per-connection state exists until the first
// join-room message registers the connection.
type Handler struct {
	router      *Router
	coordinator *Coordinator
	registry    *Registry
}

func NewHandler(router *Router, coordinator *Coordinator, registry *Registry) *Handler {
	return &Handler{
		router:      router,
		coordinator: coordinator,
		registry:    registry,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an error response.
		return nil
	}

	cl := newClient(conn)
	incConnections()

	go cl.keepAlive()
	go cl.writePump()
	go cl.readPump(h)
	return nil
}

// cleanup runs when a connection closes for any reason. A connection
// that never joined has no registry owner, making this a no-op; a
// second cleanup for the same user is equally harmless.
func (h *Handler) cleanup(cl *Client) {
	decConnections()

	userID, ok := h.registry.UserFor(cl)
	if !ok {
		return
	}
	if err := h.coordinator.Disconnect(context.Background(), userID); err != nil {
		log.Printf("signaling: disconnect cleanup for %s failed: %v", userID, err)
	}
	h.registry.Unregister(userID)
	log.Printf("signaling: client %s disconnected", userID)
}
