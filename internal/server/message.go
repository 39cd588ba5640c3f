package server

import (
	"encoding/json"
	"time"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type HelloData struct {
	Name       string `json:"name"`
	Channel    string `json:"channel"`
	AdminToken string `json:"adminToken,omitempty"`
}

type SayData struct {
	Text string `json:"text"`
}

type WhisperData struct {
	Text string `json:"text"`
}

// Server → Client Messages

type HelloAckData struct {
	Channel string `json:"channel"`
	Name    string `json:"name"`
	Admin   bool   `json:"admin"`
	Stage   string `json:"stage"`
}

type BroadcastData struct {
	From string `json:"from,omitempty"` // empty for the moderator
	Text string `json:"text"`
}

type PrivateData struct {
	Text string `json:"text"`
}

type RosterEntry struct {
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
	Admin bool   `json:"admin"`
}

type RosterData struct {
	Stage   string        `json:"stage"`
	Players []RosterEntry `json:"players"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
