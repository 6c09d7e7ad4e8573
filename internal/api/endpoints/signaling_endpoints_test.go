package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"yollab-backend/internal/api"
	"yollab-backend/internal/presence"
	"yollab-backend/internal/queue"
)

type presenceTestStore struct {
	mu        sync.Mutex
	rooms     map[string][]presence.User
	connected map[string]bool
	status    map[string]string
	failing   bool
}

func newPresenceTestStore() *presenceTestStore {
	return &presenceTestStore{
		rooms:     make(map[string][]presence.User),
		connected: make(map[string]bool),
		status:    make(map[string]string),
	}
}

func (s *presenceTestStore) fail() error {
	if s.failing {
		return presence.ErrUnavailable
	}
	return nil
}

func (s *presenceTestStore) AddUserToRoom(ctx context.Context, roomID string, user presence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[roomID] = append(s.rooms[roomID], user)
	return s.fail()
}

func (s *presenceTestStore) RemoveUserFromRoom(ctx context.Context, roomID, userID string) error {
	return s.fail()
}

func (s *presenceTestStore) UsersInRoom(ctx context.Context, roomID string) ([]presence.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.rooms[roomID], nil
}

func (s *presenceTestStore) DeleteRoom(ctx context.Context, roomID string) error {
	return s.fail()
}

func (s *presenceTestStore) SetConnected(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected[userID] = true
	return s.fail()
}

func (s *presenceTestStore) IsConnected(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected[userID], s.fail()
}

func (s *presenceTestStore) ClearConnected(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connected, userID)
	return s.fail()
}

func (s *presenceTestStore) SetStatus(ctx context.Context, userID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[userID] = status
	return s.fail()
}

func (s *presenceTestStore) GetStatus(ctx context.Context, userID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.status[userID]
	return status, ok, s.fail()
}

func (s *presenceTestStore) ClearStatus(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.status, userID)
	return s.fail()
}

func setupSignalingHandler(t *testing.T, store presence.Store) (http.Handler, func()) {
	t.Helper()

	paths := SignalingPaths{
		RoomsPrefix: "/api/v1/rooms/",
		UsersPrefix: "/api/v1/users/",
	}
	sigEndpoints := NewSignalingEndpoints(store, nil, paths)

	queueManager := queue.NewRequestQueueManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, store, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/rooms", server.MakeHTTPHandleFunc(sigEndpoints.Rooms))
	mux.HandleFunc("/api/v1/rooms/", server.MakeHTTPHandleFunc(sigEndpoints.RoomUsers))
	mux.HandleFunc("/api/v1/users/", server.MakeHTTPHandleFunc(sigEndpoints.UserStatus))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func TestRoomUsersReturnsMembership(t *testing.T) {
	store := newPresenceTestStore()
	handler, cleanup := setupSignalingHandler(t, store)
	t.Cleanup(cleanup)

	store.rooms["r1"] = []presence.User{
		{ID: "a", Name: "Anna"},
		{ID: "b", Name: "Ben"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r1/users", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body RoomUsersRes
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.RoomID != "r1" || len(body.Users) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRoomUsersStoreUnavailable(t *testing.T) {
	store := newPresenceTestStore()
	store.failing = true
	handler, cleanup := setupSignalingHandler(t, store)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r1/users", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestUserStatusReflectsDisconnect(t *testing.T) {
	store := newPresenceTestStore()
	handler, cleanup := setupSignalingHandler(t, store)
	t.Cleanup(cleanup)

	store.status["bob"] = "disconnected"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/bob/status", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body UserStatusRes
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UserID != "bob" || body.Connected || body.Status != "disconnected" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRoomsMintsRoomID(t *testing.T) {
	store := newPresenceTestStore()
	handler, cleanup := setupSignalingHandler(t, store)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}
	var body RoomRes
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.RoomID == "" {
		t.Fatal("expected a generated room id")
	}
}

func TestRoomsRejectsGet(t *testing.T) {
	store := newPresenceTestStore()
	handler, cleanup := setupSignalingHandler(t, store)
	t.Cleanup(cleanup)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}
