package signaling

import "sync"

// Conn is the outbound side of a live connection. Deliver is
// best-effort: it reports false when the message was dropped because
// the connection is not in a writable state.
type Conn interface {
	Deliver(msg interface{}) bool
}

// Registry maps user ids to their live connection within this process.
// It is the routing source of truth; the presence store's connected
// flag is advisory state for external readers. Entries are never
// persisted.
//
// The reverse map exists for connection-close handling: close events
// carry no user identity, so the owning user is found by conn.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Conn
	byConn map[Conn]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Conn),
		byConn: make(map[Conn]string),
	}
}

// Register records conn as the live connection for userID. A prior
// connection for the same user is displaced: last connection wins.
func (r *Registry) Register(userID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byUser[userID]; ok {
		delete(r.byConn, old)
	}
	r.byUser[userID] = conn
	r.byConn[conn] = userID
}

func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conn, ok := r.byUser[userID]; ok {
		delete(r.byConn, conn)
		delete(r.byUser, userID)
	}
}

func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.byUser[userID]
	return conn, ok
}

// UserFor returns the user id that conn last joined with, if any. A
// connection that never joined has no owner.
func (r *Registry) UserFor(conn Conn) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userID, ok := r.byConn[conn]
	return userID, ok
}
