package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yollab-backend/internal/api"
	"yollab-backend/internal/queue"
	"yollab-backend/internal/signaling"

	"github.com/gorilla/websocket"
)

type receivedWSMessage struct {
	Type   string          `json:"type"`
	UserID string          `json:"userId"`
	Name   string          `json:"name"`
	Offer  json.RawMessage `json:"offer"`
}

// setupSignalingServer assembles the production stack end to end:
// routes behind MakeHTTPHandleFunc (CORS, logging, queue offload) and
// the Prometheus instrument wrapper from HTTPHandler.
func setupSignalingServer(t *testing.T) (*httptest.Server, *presenceTestStore) {
	t.Helper()

	store := newPresenceTestStore()
	registry := signaling.NewRegistry()
	coordinator := signaling.NewCoordinator(store, registry)
	sigRouter := signaling.NewRouter(coordinator, registry)
	handler := signaling.NewHandler(sigRouter, coordinator, registry)

	paths := SignalingPaths{
		RoomsPrefix: "/api/v1/rooms/",
		UsersPrefix: "/api/v1/users/",
	}
	sigEndpoints := NewSignalingEndpoints(store, handler, paths)

	queueManager := queue.NewRequestQueueManager(10, 2)
	server := api.NewAPIServer(":0", queueManager, store, handler,
		func(mux *http.ServeMux, s *api.APIServer) {
			mux.HandleFunc("/api/v1/signal", s.MakeHTTPHandleFunc(sigEndpoints.Websocket))
		},
	)

	ts := httptest.NewServer(server.HTTPHandler())
	t.Cleanup(func() {
		ts.Close()
		queueManager.Shutdown()
	})
	return ts, store
}

func dialSignal(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + "/api/v1/signal"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWSMessage(t *testing.T, conn *websocket.Conn) receivedWSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg receivedWSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg
}

func waitForConnected(t *testing.T, store *presenceTestStore, userID string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		connected, err := store.IsConnected(context.Background(), userID)
		if err != nil {
			t.Fatalf("is connected: %v", err)
		}
		if connected {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s never became connected", userID)
}

func TestWebsocketJoinAndRelayThroughServerStack(t *testing.T) {
	ts, store := setupSignalingServer(t)

	aConn := dialSignal(t, ts.URL)
	err := aConn.WriteJSON(signaling.InboundMessage{
		Type:     signaling.TypeJoinRoom,
		RoomID:   "r1",
		UserID:   "A",
		UserName: "Ada",
	})
	if err != nil {
		t.Fatalf("A join: %v", err)
	}
	waitForConnected(t, store, "A")

	bConn := dialSignal(t, ts.URL)
	err = bConn.WriteJSON(signaling.InboundMessage{
		Type:     signaling.TypeJoinRoom,
		RoomID:   "r1",
		UserID:   "B",
		UserName: "Bo",
	})
	if err != nil {
		t.Fatalf("B join: %v", err)
	}
	waitForConnected(t, store, "B")

	joined := readWSMessage(t, aConn)
	if joined.Type != string(signaling.TypeUserJoined) || joined.UserID != "B" || joined.Name != "Bo" {
		t.Fatalf("A expected user-joined{B}, got %+v", joined)
	}
	joined = readWSMessage(t, bConn)
	if joined.Type != string(signaling.TypeUserJoined) || joined.UserID != "A" || joined.Name != "Ada" {
		t.Fatalf("B expected user-joined{A}, got %+v", joined)
	}

	err = aConn.WriteJSON(signaling.InboundMessage{
		Type:         signaling.TypeOffer,
		UserID:       "A",
		TargetUserID: "B",
		Offer:        []byte(`{"sdp":"v=0"}`),
	})
	if err != nil {
		t.Fatalf("A offer: %v", err)
	}

	offer := readWSMessage(t, bConn)
	if offer.Type != string(signaling.TypeOffer) || offer.UserID != "A" || string(offer.Offer) != `{"sdp":"v=0"}` {
		t.Fatalf("B expected the relayed offer from A, got %+v", offer)
	}
}
