package signaling

import (
	"context"

	"yollab-backend/internal/presence"
)

// StatusDisconnected is the only status value the coordinator writes.
// A connected user is marked by the connected flag alone.
const StatusDisconnected = "disconnected"

// Coordinator orchestrates room membership: it mutates the presence
// store and drives notification fan-out through the registry. It holds
// no state of its own, so concurrent operations on the same room
// interleave at store-call boundaries; presence notifications are
// best-effort under that interleaving.
type Coordinator struct {
	store    presence.Store
	registry *Registry
}

func NewCoordinator(store presence.Store, registry *Registry) *Coordinator {
	return &Coordinator{
		store:    store,
		registry: registry,
	}
}

// Join registers conn for the user, records the membership in the
// store, and runs the presence sync: every pre-existing member is told
// about the joiner (if reachable), and the joiner is told about every
// pre-existing member, reachable or not.
func (c *Coordinator) Join(ctx context.Context, roomID, userID, userName string, conn Conn) error {
	c.registry.Register(userID, conn)

	if err := c.store.SetConnected(ctx, userID); err != nil {
		return err
	}
	if err := c.store.AddUserToRoom(ctx, roomID, presence.User{ID: userID, Name: userName}); err != nil {
		return err
	}

	members, err := c.store.UsersInRoom(ctx, roomID)
	if err != nil {
		return err
	}

	for _, other := range members {
		if other.ID == userID {
			continue
		}
		if otherConn, ok := c.registry.Lookup(other.ID); ok {
			countDelivery(otherConn.Deliver(UserJoinedMessage{
				Type:   TypeUserJoined,
				UserID: userID,
				Name:   userName,
			}))
		}
		countDelivery(conn.Deliver(UserJoinedMessage{
			Type:   TypeUserJoined,
			UserID: other.ID,
			Name:   other.Name,
		}))
	}
	return nil
}

// Leave removes the membership and notifies the remaining members. The
// store drops the leaver before the broadcast fetches membership, so
// the leaver is naturally excluded. The registry entry is left alone;
// the eventual connection close cleans it up idempotently.
func (c *Coordinator) Leave(ctx context.Context, roomID, userID string) error {
	if err := c.store.RemoveUserFromRoom(ctx, roomID, userID); err != nil {
		return err
	}
	if err := c.store.ClearConnected(ctx, userID); err != nil {
		return err
	}

	if err := c.Broadcast(ctx, roomID, UserLeftMessage{Type: TypeUserLeft, UserID: userID}, ""); err != nil {
		return err
	}

	members, err := c.store.UsersInRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		return c.store.DeleteRoom(ctx, roomID)
	}
	return nil
}

// Disconnect marks the user disconnected without touching room
// membership or notifying peers. A disconnected user stays a room
// member until an explicit leave.
func (c *Coordinator) Disconnect(ctx context.Context, userID string) error {
	if err := c.store.SetStatus(ctx, userID, StatusDisconnected); err != nil {
		return err
	}
	return c.store.ClearConnected(ctx, userID)
}

// Broadcast delivers msg to every current room member except
// excludeUserID, skipping members without a live connection.
func (c *Coordinator) Broadcast(ctx context.Context, roomID string, msg interface{}, excludeUserID string) error {
	members, err := c.store.UsersInRoom(ctx, roomID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if member.ID == excludeUserID {
			continue
		}
		if conn, ok := c.registry.Lookup(member.ID); ok {
			countDelivery(conn.Deliver(msg))
		}
	}
	return nil
}
