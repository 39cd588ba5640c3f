package game

import "time"

// Bot is the narrow boundary to the transport collaborator. The engine
// hands all player-visible output to it fire-and-forget; a failed
// delivery (for example a target that is offline) must be logged and
// skipped by the implementation, never surfaced as an error here.
type Bot interface {
	// SendMessage broadcasts to the whole session audience.
	SendMessage(text string)
	// SendPrivate messages one participant. Implementations must treat
	// an unreachable participant as a no-op with a diagnostic.
	SendPrivate(player string, text string)

	// Advisory chat gating, enforced by the transport at phase
	// boundaries.
	MuteAll()
	Unmute(player string)
	UnmuteAll()

	// OnPlayersChanged notifies external presence UIs after any
	// alive/dead roster change.
	OnPlayersChanged()

	// RecordGameResults fires exactly once, at the moment a winner is
	// declared, handing the finalized outcome to an external
	// persistence collaborator.
	RecordGameResults(results *GameResults)
}

// GameResults is the finalized outcome of a concluded game.
type GameResults struct {
	SessionID string         `json:"session_id"`
	Winner    string         `json:"winner"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Players   []PlayerResult `json:"players"`
	Nights    []NightRecord  `json:"nights"`
}

// PlayerResult records one player's role and fate.
type PlayerResult struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Faction  string `json:"faction"`
	Survived bool   `json:"survived"`
}

// NightRecord is one night's finalized kill map.
type NightRecord struct {
	Night  int           `json:"night"`
	Deaths []DeathRecord `json:"deaths"`
}

// DeathRecord maps a victim to the players responsible.
type DeathRecord struct {
	Victim  string   `json:"victim"`
	Killers []string `json:"killers"`
}
