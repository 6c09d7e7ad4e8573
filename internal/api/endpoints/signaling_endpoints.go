package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"yollab-backend/internal/presence"
	"yollab-backend/internal/signaling"

	"github.com/google/uuid"
)

type SignalingEndpoints interface {
	Websocket(http.ResponseWriter, *http.Request) error
	Rooms(http.ResponseWriter, *http.Request) error
	RoomUsers(http.ResponseWriter, *http.Request) error
	UserStatus(http.ResponseWriter, *http.Request) error
}

type SignalingPaths struct {
	RoomsPrefix string
	UsersPrefix string
}

type signalingEndpoints struct {
	store   presence.Store
	handler *signaling.Handler
	paths   SignalingPaths
}

func NewSignalingEndpoints(store presence.Store, handler *signaling.Handler, paths SignalingPaths) SignalingEndpoints {
	return &signalingEndpoints{
		store:   store,
		handler: handler,
		paths:   paths,
	}
}

type RoomRes struct {
	RoomID string `json:"roomId"`
}

type RoomUsersRes struct {
	RoomID string          `json:"roomId"`
	Users  []presence.User `json:"users"`
}

type UserStatusRes struct {
	UserID    string `json:"userId"`
	Connected bool   `json:"connected"`
	Status    string `json:"status,omitempty"`
}

// Websocket upgrades the request and hands the connection to the
// signaling handler. Membership is established later by the first
// join-room message on the socket.
func (h *signalingEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	return h.handler.Serve(w, r)
}

// Rooms mints a fresh room id. No state is created; a room exists only
// once someone joins it.
func (h *signalingEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
			return WriteJSON(w, http.StatusCreated, RoomRes{RoomID: uuid.NewString()})
		},
	})
}

func (h *signalingEndpoints) RoomUsers(w http.ResponseWriter, r *http.Request) error {
	rest, err := h.extractFromPath(r.URL.Path, h.paths.RoomsPrefix)
	if err != nil {
		return err
	}
	rest = strings.Trim(rest, "/")
	roomID := strings.TrimSuffix(rest, "/users")
	if rest == roomID || roomID == "" || strings.Contains(roomID, "/") {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Room not found",
			ErrorLog:   fmt.Errorf("room users path invalid: %s", r.URL.Path),
		}
	}

	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
			users, err := h.store.UsersInRoom(r.Context(), roomID)
			if err != nil {
				return h.storeError(err)
			}
			return WriteJSON(w, http.StatusOK, RoomUsersRes{RoomID: roomID, Users: users})
		},
	})
}

func (h *signalingEndpoints) UserStatus(w http.ResponseWriter, r *http.Request) error {
	rest, err := h.extractFromPath(r.URL.Path, h.paths.UsersPrefix)
	if err != nil {
		return err
	}
	rest = strings.Trim(rest, "/")
	userID := strings.TrimSuffix(rest, "/status")
	if rest == userID || userID == "" || strings.Contains(userID, "/") {
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "User not found",
			ErrorLog:   fmt.Errorf("user status path invalid: %s", r.URL.Path),
		}
	}

	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
			connected, err := h.store.IsConnected(r.Context(), userID)
			if err != nil {
				return h.storeError(err)
			}
			status, _, err := h.store.GetStatus(r.Context(), userID)
			if err != nil {
				return h.storeError(err)
			}
			return WriteJSON(w, http.StatusOK, UserStatusRes{
				UserID:    userID,
				Connected: connected,
				Status:    status,
			})
		},
	})
}

func (h *signalingEndpoints) extractFromPath(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("path %s does not match prefix %s", path, prefix),
		}
	}
	return strings.TrimPrefix(path, prefix), nil
}

func (h *signalingEndpoints) storeError(err error) error {
	if errors.Is(err, presence.ErrUnavailable) {
		return &HTTPError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Presence store unavailable",
			ErrorLog:   err,
		}
	}
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		ErrorLog:   err,
	}
}
