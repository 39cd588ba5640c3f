package game

import (
	"sort"
	"strings"
)

// Player is a participant in the session. The name is unique
// (case-insensitive) and the role, once assigned at game start, is
// immutable for the rest of the session. Dead players stay addressable
// for narration and the post-game summary.
type Player struct {
	Name  string
	Admin bool

	alive bool
	role  Role
}

// NewPlayer creates a living player with no role.
func NewPlayer(name string, admin bool) *Player {
	return &Player{Name: name, Admin: admin, alive: true}
}

// Alive reports whether the player is still in the game.
func (p *Player) Alive() bool {
	return p.alive
}

// SetAlive mutates the alive flag. Only the night resolution engine and
// the admin modkill path call this.
func (p *Player) SetAlive(alive bool) {
	p.alive = alive
}

// Role returns the player's assigned role, or nil before game start.
func (p *Player) Role() Role {
	return p.role
}

// AssignRole binds a role to the player for the session.
func (p *Player) AssignRole(r Role) {
	p.role = r
	r.bind(p)
}

func (p *Player) String() string {
	return p.Name
}

// sortPlayers orders players by name, case-insensitively, so player
// collections are deterministic for display and tie-breaking.
func sortPlayers(players []*Player) {
	sort.Slice(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
}

// playerNames joins player names with ", " for announcements.
func playerNames(players []*Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
