package presence

import (
	"context"
	"errors"
)

// User is the identity a client joins with. Identity is caller-supplied;
// a re-join with the same id overwrites the stored record.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserWithRoom is the persisted user record, keyed by user id.
type UserWithRoom struct {
	User
	RoomID string `json:"roomId"`
}

// ErrUnavailable wraps transport or connectivity failures talking to the
// store. Callers decide whether to retry; the adapter never retries.
var ErrUnavailable = errors.New("presence: store unavailable")

// Store is the authoritative source for room membership and per-user
// connection state across process restarts. All operations are atomic
// from the caller's perspective.
type Store interface {
	AddUserToRoom(ctx context.Context, roomID string, user User) error
	RemoveUserFromRoom(ctx context.Context, roomID, userID string) error
	UsersInRoom(ctx context.Context, roomID string) ([]User, error)
	DeleteRoom(ctx context.Context, roomID string) error

	SetConnected(ctx context.Context, userID string) error
	IsConnected(ctx context.Context, userID string) (bool, error)
	ClearConnected(ctx context.Context, userID string) error

	SetStatus(ctx context.Context, userID, status string) error
	// GetStatus returns the stored status and whether one was present.
	GetStatus(ctx context.Context, userID string) (string, bool, error)
	ClearStatus(ctx context.Context, userID string) error
}
