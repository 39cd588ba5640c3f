package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants for the chat protocol. The core
// mandates no wire format; this envelope just delivers command names,
// sender identities and narrative text.
const (
	// Client to server messages
	MessageTypeHello   MessageType = "hello"
	MessageTypeSay     MessageType = "say"
	MessageTypeWhisper MessageType = "whisper"

	// Server to client messages
	MessageTypeHelloAck  MessageType = "hello_ack"
	MessageTypeBroadcast MessageType = "broadcast"
	MessageTypePrivate   MessageType = "private"
	MessageTypeRoster    MessageType = "roster"
	MessageTypeError     MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
