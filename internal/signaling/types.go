package signaling

import "encoding/json"

// MessageType is the discriminant on every inbound and outbound
// signaling message.
type MessageType string

const (
	TypeJoinRoom     MessageType = "join-room"
	TypeLeaveRoom    MessageType = "leave-room"
	TypeDisconnect   MessageType = "disconnect"
	TypeReconnect    MessageType = "reconnect"
	TypeUserJoined   MessageType = "user-joined"
	TypeUserLeft     MessageType = "user-left"
	TypeOffer        MessageType = "offer"
	TypeAnswer       MessageType = "answer"
	TypeIceCandidate MessageType = "ice-candidate"
)

// InboundMessage is the envelope clients send. Negotiation payloads
// (offer/answer/candidate) are opaque; the server relays them unread.
type InboundMessage struct {
	Type         MessageType     `json:"type"`
	RoomID       string          `json:"roomId,omitempty"`
	UserID       string          `json:"userId,omitempty"`
	UserName     string          `json:"userName,omitempty"`
	TargetUserID string          `json:"targetUserId,omitempty"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
}

type UserJoinedMessage struct {
	Type   MessageType `json:"type"`
	UserID string      `json:"userId"`
	Name   string      `json:"name"`
}

type UserLeftMessage struct {
	Type   MessageType `json:"type"`
	UserID string      `json:"userId"`
}

// RelayMessage is a point-to-point negotiation payload forwarded to one
// peer, annotated with the sender's user id.
type RelayMessage struct {
	Type      MessageType     `json:"type"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	UserID    string          `json:"userId"`
}
