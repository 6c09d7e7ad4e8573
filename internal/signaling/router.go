package signaling

import (
	"context"
	"log"
)

// Router classifies inbound messages and dispatches them: membership
// messages go to the coordinator, negotiation payloads are relayed
// point-to-point through the registry.
type Router struct {
	coordinator *Coordinator
	registry    *Registry
}

func NewRouter(coordinator *Coordinator, registry *Registry) *Router {
	return &Router{
		coordinator: coordinator,
		registry:    registry,
	}
}

// Dispatch handles one inbound message from conn. Unrecognized types
// are ignored without a response to the sender.
func (r *Router) Dispatch(ctx context.Context, conn Conn, msg InboundMessage) error {
	switch msg.Type {
	case TypeJoinRoom:
		return r.coordinator.Join(ctx, msg.RoomID, msg.UserID, msg.UserName, conn)

	case TypeLeaveRoom:
		return r.coordinator.Leave(ctx, msg.RoomID, msg.UserID)

	case TypeOffer:
		r.relay(msg.TargetUserID, RelayMessage{
			Type:   TypeOffer,
			Offer:  msg.Offer,
			UserID: msg.UserID,
		})
		return nil

	case TypeAnswer:
		r.relay(msg.TargetUserID, RelayMessage{
			Type:   TypeAnswer,
			Answer: msg.Answer,
			UserID: msg.UserID,
		})
		return nil

	case TypeIceCandidate:
		r.relay(msg.TargetUserID, RelayMessage{
			Type:      TypeIceCandidate,
			Candidate: msg.Candidate,
			UserID:    msg.UserID,
		})
		return nil

	case TypeDisconnect:
		return r.coordinator.Disconnect(ctx, msg.UserID)

	case TypeReconnect:
		// Declared in the protocol but carries no server-side behavior.
		return nil

	default:
		log.Printf("signaling: ignoring message with unknown type %q", msg.Type)
		return nil
	}
}

// relay forwards a negotiation payload to exactly one peer. A target
// with no live connection means the message is dropped; the sender is
// not told.
func (r *Router) relay(targetUserID string, msg RelayMessage) {
	target, ok := r.registry.Lookup(targetUserID)
	if !ok {
		return
	}
	countDelivery(target.Deliver(msg))
	incRelayed()
}
