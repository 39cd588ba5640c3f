package game

import "strings"

// TestBot is an in-memory Bot that records everything the engine says.
// Tests drive sessions through it and assert on the message log.
type TestBot struct {
	Log      []TestMessage
	Muted    map[string]bool
	MutedAll bool
	Results  []*GameResults
	Roster   int // OnPlayersChanged call count
}

// TestMessage is one outbound line; To is empty for broadcasts.
type TestMessage struct {
	To   string
	Text string
}

// NewTestBot returns an empty recording bot.
func NewTestBot() *TestBot {
	return &TestBot{Muted: make(map[string]bool)}
}

func (b *TestBot) SendMessage(text string) {
	b.Log = append(b.Log, TestMessage{Text: text})
}

func (b *TestBot) SendPrivate(player string, text string) {
	b.Log = append(b.Log, TestMessage{To: player, Text: text})
}

func (b *TestBot) MuteAll() {
	b.MutedAll = true
}

func (b *TestBot) Unmute(player string) {
	b.Muted[player] = false
}

func (b *TestBot) UnmuteAll() {
	b.MutedAll = false
	b.Muted = make(map[string]bool)
}

func (b *TestBot) OnPlayersChanged() {
	b.Roster++
}

func (b *TestBot) RecordGameResults(results *GameResults) {
	b.Results = append(b.Results, results)
}

// Broadcasts returns every broadcast line, in order.
func (b *TestBot) Broadcasts() []string {
	var lines []string
	for _, m := range b.Log {
		if m.To == "" {
			lines = append(lines, m.Text)
		}
	}
	return lines
}

// PrivateTo returns every private line sent to one player, in order.
func (b *TestBot) PrivateTo(player string) []string {
	var lines []string
	for _, m := range b.Log {
		if strings.EqualFold(m.To, player) {
			lines = append(lines, m.Text)
		}
	}
	return lines
}

// SaidToAll reports whether any broadcast contains the substring.
func (b *TestBot) SaidToAll(substr string) bool {
	for _, line := range b.Broadcasts() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// SaidTo reports whether any private line to the player contains the
// substring.
func (b *TestBot) SaidTo(player, substr string) bool {
	for _, line := range b.PrivateTo(player) {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Reset clears the message log but keeps mute state and results.
func (b *TestBot) Reset() {
	b.Log = nil
}
