package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageEnvelope(t *testing.T) {
	msg, err := NewMessage(MessageTypeBroadcast, BroadcastData{From: "alice", Text: "good morning"})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeBroadcast, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MessageTypeBroadcast, decoded.Type)

	var data BroadcastData
	require.NoError(t, json.Unmarshal(decoded.Data, &data))
	assert.Equal(t, "alice", data.From)
	assert.Equal(t, "good morning", data.Text)
}

func TestModeratorBroadcastOmitsFrom(t *testing.T) {
	msg, err := NewMessage(MessageTypeBroadcast, BroadcastData{Text: "Night falls on the village."})
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Data), "from", "moderator lines carry no sender")
}
