package presence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Key schema:
//
//	room:{roomId}          set of member user ids
//	user:{userId}          hash {id, name, roomId}
//	user:{userId}:connected  "true" while the user is connected
//	user:{userId}:status   free-text status, e.g. "disconnected"
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
	}
}

// NewRedisStoreWithClient is used by callers that manage the client
// themselves.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func roomKey(roomID string) string {
	return "room:" + roomID
}

func userKey(userID string) string {
	return "user:" + userID
}

func connectedKey(userID string) string {
	return userKey(userID) + ":connected"
}

func statusKey(userID string) string {
	return userKey(userID) + ":status"
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func (s *RedisStore) AddUserToRoom(ctx context.Context, roomID string, user User) error {
	if err := s.client.SAdd(ctx, roomKey(roomID), user.ID).Err(); err != nil {
		return storeErr("add user to room", err)
	}
	fields := map[string]interface{}{
		"id":     user.ID,
		"name":   user.Name,
		"roomId": roomID,
	}
	if err := s.client.HSet(ctx, userKey(user.ID), fields).Err(); err != nil {
		return storeErr("store user record", err)
	}
	return nil
}

func (s *RedisStore) RemoveUserFromRoom(ctx context.Context, roomID, userID string) error {
	if err := s.client.SRem(ctx, roomKey(roomID), userID).Err(); err != nil {
		return storeErr("remove user from room", err)
	}
	if err := s.client.Del(ctx, userKey(userID)).Err(); err != nil {
		return storeErr("delete user record", err)
	}
	return nil
}

func (s *RedisStore) UsersInRoom(ctx context.Context, roomID string) ([]User, error) {
	userIDs, err := s.client.SMembers(ctx, roomKey(roomID)).Result()
	if err != nil {
		return nil, storeErr("list room members", err)
	}

	users := make([]User, 0, len(userIDs))
	for _, userID := range userIDs {
		record, err := s.getUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			// Member id with no resolvable record; tolerated, not an error.
			continue
		}
		users = append(users, record.User)
	}
	return users, nil
}

func (s *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	if err := s.client.Del(ctx, roomKey(roomID)).Err(); err != nil {
		return storeErr("delete room", err)
	}
	return nil
}

func (s *RedisStore) getUser(ctx context.Context, userID string) (*UserWithRoom, error) {
	data, err := s.client.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, storeErr("get user record", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &UserWithRoom{
		User:   User{ID: data["id"], Name: data["name"]},
		RoomID: data["roomId"],
	}, nil
}

func (s *RedisStore) SetConnected(ctx context.Context, userID string) error {
	if err := s.client.Set(ctx, connectedKey(userID), "true", 0).Err(); err != nil {
		return storeErr("set connected", err)
	}
	return nil
}

func (s *RedisStore) IsConnected(ctx context.Context, userID string) (bool, error) {
	val, err := s.client.Get(ctx, connectedKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("get connected", err)
	}
	return val == "true", nil
}

func (s *RedisStore) ClearConnected(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, connectedKey(userID)).Err(); err != nil {
		return storeErr("clear connected", err)
	}
	return nil
}

func (s *RedisStore) SetStatus(ctx context.Context, userID, status string) error {
	if err := s.client.Set(ctx, statusKey(userID), status, 0).Err(); err != nil {
		return storeErr("set status", err)
	}
	return nil
}

func (s *RedisStore) GetStatus(ctx context.Context, userID string) (string, bool, error) {
	val, err := s.client.Get(ctx, statusKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("get status", err)
	}
	return val, true, nil
}

func (s *RedisStore) ClearStatus(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, statusKey(userID)).Err(); err != nil {
		return storeErr("clear status", err)
	}
	return nil
}
