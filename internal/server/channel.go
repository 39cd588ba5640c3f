package server

import (
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/werewolfd/internal/game"
	"github.com/lox/werewolfd/internal/gameid"
)

// Channel hosts one game session and its audience. It implements the
// engine's Bot boundary: everything the moderator says flows out
// through here, and mute state is enforced here, not in the engine.
type Channel struct {
	name    string
	logger  *log.Logger
	session *game.Session
	results *ResultsWriter

	mu       sync.RWMutex
	members  map[string]*Connection // keyed by lowercased player name
	mutedAll bool
	exempt   map[string]bool // unmuted while mutedAll
}

// NewChannel creates a channel with a fresh session in the Setup stage.
func NewChannel(name string, registry *game.ConfigRegistry, results *ResultsWriter, logger *log.Logger, rng *rand.Rand, clock quartz.Clock) *Channel {
	ch := &Channel{
		name:    name,
		logger:  logger.WithPrefix("channel").With("channel", name),
		results: results,
		members: make(map[string]*Connection),
		exempt:  make(map[string]bool),
	}
	ch.session = game.NewSession(gameid.New(), ch, registry, logger, rng, clock)
	return ch
}

// Name returns the channel name.
func (ch *Channel) Name() string {
	return ch.name
}

// Session returns the channel's game session.
func (ch *Channel) Session() *game.Session {
	return ch.session
}

// Join registers a connection under its player name.
func (ch *Channel) Join(conn *Connection) {
	ch.mu.Lock()
	ch.members[lower(conn.Name())] = conn
	ch.mu.Unlock()

	ch.logger.Info("player connected", "player", conn.Name())
	ch.pushRoster()
}

// Leave drops a connection. The player stays in the game; only their
// delivery endpoint goes away.
func (ch *Channel) Leave(conn *Connection) {
	ch.mu.Lock()
	if ch.members[lower(conn.Name())] == conn {
		delete(ch.members, lower(conn.Name()))
	}
	ch.mu.Unlock()

	ch.logger.Info("player disconnected", "player", conn.Name())
}

// Say handles a channel line from a player: commands go to the engine,
// everything else is chat, gated by the advisory mute state.
func (ch *Channel) Say(sender string, admin bool, text string) {
	if _, _, ok := game.ParseCommand(text); ok {
		ch.session.HandleCommand(sender, admin, text)
		return
	}

	if !ch.canSpeak(sender) {
		ch.sendPrivateMsg(sender, "You are muted. The village sleeps.")
		return
	}
	ch.broadcast(sender, text)
	ch.session.HandleChat(sender, text, false)
}

// Whisper handles a private line to the moderator.
func (ch *Channel) Whisper(sender string, admin bool, text string) {
	if _, _, ok := game.ParseCommand(text); ok {
		ch.session.HandleCommand(sender, admin, text)
		return
	}
	ch.session.HandleChat(sender, text, true)
}

func (ch *Channel) canSpeak(sender string) bool {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return !ch.mutedAll || ch.exempt[lower(sender)]
}

// --- game.Bot ---

// SendMessage broadcasts a moderator line to the whole channel.
func (ch *Channel) SendMessage(text string) {
	ch.broadcast("", text)
}

// SendPrivate messages one participant. An unreachable participant is
// a diagnostic, never an error: the engine's resolution must not be
// interrupted by a dropped connection.
func (ch *Channel) SendPrivate(player string, text string) {
	ch.sendPrivateMsg(player, text)
}

// MuteAll gates the channel for everyone until unmuted.
func (ch *Channel) MuteAll() {
	ch.mu.Lock()
	ch.mutedAll = true
	ch.exempt = make(map[string]bool)
	ch.mu.Unlock()
}

// Unmute exempts one player from a channel-wide mute.
func (ch *Channel) Unmute(player string) {
	ch.mu.Lock()
	ch.exempt[lower(player)] = true
	ch.mu.Unlock()
}

// UnmuteAll lifts the channel-wide mute.
func (ch *Channel) UnmuteAll() {
	ch.mu.Lock()
	ch.mutedAll = false
	ch.exempt = make(map[string]bool)
	ch.mu.Unlock()
}

// OnPlayersChanged pushes a fresh roster. The engine calls this while
// holding its session lock, so the snapshot is taken on a separate
// goroutine once the handler returns.
func (ch *Channel) OnPlayersChanged() {
	go ch.pushRoster()
}

// RecordGameResults persists the finalized outcome.
func (ch *Channel) RecordGameResults(results *game.GameResults) {
	if err := ch.results.Write(results); err != nil {
		ch.logger.Error("failed to record game results", "session", results.SessionID, "error", err)
	}
}

// --- delivery ---

func (ch *Channel) broadcast(from, text string) {
	msg, err := NewMessage(MessageTypeBroadcast, BroadcastData{From: from, Text: text})
	if err != nil {
		ch.logger.Error("failed to encode broadcast", "error", err)
		return
	}

	ch.mu.RLock()
	defer ch.mu.RUnlock()
	for _, conn := range ch.members {
		if err := conn.SendMessage(msg); err != nil {
			ch.logger.Debug("failed to deliver broadcast", "player", conn.Name(), "error", err)
		}
	}
}

func (ch *Channel) sendPrivateMsg(player, text string) {
	ch.mu.RLock()
	conn, ok := ch.members[lower(player)]
	ch.mu.RUnlock()

	if !ok {
		ch.logger.Debug("private message to unreachable player", "player", player)
		return
	}

	msg, err := NewMessage(MessageTypePrivate, PrivateData{Text: text})
	if err != nil {
		ch.logger.Error("failed to encode private message", "error", err)
		return
	}
	if err := conn.SendMessage(msg); err != nil {
		ch.logger.Debug("failed to deliver private message", "player", player, "error", err)
	}
}

func (ch *Channel) pushRoster() {
	stage, roster := ch.session.Roster()
	entries := make([]RosterEntry, len(roster))
	for i, r := range roster {
		entries[i] = RosterEntry{Name: r.Name, Alive: r.Alive, Admin: r.Admin}
	}

	msg, err := NewMessage(MessageTypeRoster, RosterData{Stage: stage, Players: entries})
	if err != nil {
		ch.logger.Error("failed to encode roster", "error", err)
		return
	}

	ch.mu.RLock()
	defer ch.mu.RUnlock()
	for _, conn := range ch.members {
		if err := conn.SendMessage(msg); err != nil {
			ch.logger.Debug("failed to deliver roster", "player", conn.Name(), "error", err)
		}
	}
}
