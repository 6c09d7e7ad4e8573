package signaling

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client owns one websocket connection end to end. Outbound messages
// are buffered on a channel drained by the write pump; Deliver drops
// instead of blocking when the buffer is full or the connection is
// closing.
type Client struct {
	conn     *websocket.Conn
	send     chan interface{}
	done     chan struct{} // Signal for coordinating goroutine shutdown
	mu       sync.Mutex    // Mutex for connection access
	isClosed bool          // Flag to track connection state
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan interface{}, 16),
		done: make(chan struct{}),
	}
}

// Deliver queues msg for the write pump. It reports false when the
// message was dropped; best-effort, never blocks.
func (cl *Client) Deliver(msg interface{}) bool {
	select {
	case <-cl.done:
		return false
	default:
	}

	select {
	case cl.send <- msg:
		return true
	default:
		return false
	}
}

func (cl *Client) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("signaling: ping error: %v", err)
				return
			}
		}
	}
}

func (cl *Client) writePump() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case msg := <-cl.send:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteJSON(msg)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("signaling: error writing message: %v", err)
				return
			}
		}
	}
}

func (cl *Client) readPump(h *Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("signaling: recovered from panic in readPump: %v", r)
		}

		close(cl.done)
		h.cleanup(cl)
	}()

	cl.conn.SetReadLimit(512 * 1024) // Set a reasonable read limit

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("signaling: error reading message: %v", err)
			break
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed payloads are dropped; the connection stays open.
			log.Printf("signaling: dropping malformed message: %v", err)
			continue
		}

		if err := h.router.Dispatch(context.Background(), cl, msg); err != nil {
			log.Printf("signaling: %s failed: %v", msg.Type, err)
		}
	}
}
