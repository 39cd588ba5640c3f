package game

import (
	"fmt"
	"strings"
)

// RoleType identifies one of the closed set of role variants.
type RoleType int

const (
	Villager RoleType = iota
	Wolf
	Minion
	Seer
	Priest
	Hunter
	Vigilante
	Corrupter
	Demon
)

var roleTypeNames = map[RoleType]string{
	Villager:  "Villager",
	Wolf:      "Wolf",
	Minion:    "Minion",
	Seer:      "Seer",
	Priest:    "Priest",
	Hunter:    "Hunter",
	Vigilante: "Vigilante",
	Corrupter: "Corrupter",
	Demon:     "Demon",
}

func (t RoleType) String() string {
	if name, ok := roleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RoleType(%d)", int(t))
}

// ParseRoleType resolves a role name case-insensitively.
func ParseRoleType(name string) (RoleType, error) {
	for t, n := range roleTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown role: %s", name)
}

// New constructs a fresh role instance of this type.
func (t RoleType) New() Role {
	switch t {
	case Wolf:
		return &wolfRole{}
	case Minion:
		return &minionRole{}
	case Seer:
		return &seerRole{}
	case Priest:
		return &priestRole{}
	case Hunter:
		return &hunterRole{}
	case Vigilante:
		return &vigilanteRole{}
	case Corrupter:
		return &corrupterRole{}
	case Demon:
		return &demonRole{}
	default:
		return &villagerRole{}
	}
}

// SessionView is the read-only session context passed into every role
// hook. Roles never store a long-lived reference to the stage; lookups
// are resolved freshly on each call, so they cannot dangle across
// deaths or stage transitions.
type SessionView interface {
	AlivePlayers() []*Player
	PlayersByFaction(f Faction) []*Player
	PlayersByRole(t RoleType) []*Player
	// FindAlive resolves a living player by name, or fails with a rule
	// violation naming the problem.
	FindAlive(name string) (*Player, error)
	Setting(name string) string
	IsNight() bool

	// Messaging goes back out through the transport boundary.
	Send(text string)
	SendTo(p *Player, text string)
}

// Role is the behavioral variant bound to exactly one player for the
// session's lifetime. The bind method is unexported on purpose: the
// variant set is closed and lives entirely in this package.
type Role interface {
	Type() RoleType
	Faction() Faction
	Description() string
	// KillMessage is the flavor text shown when this role's kill is
	// revealed ("was torn apart by wolves").
	KillMessage() string

	OnGameStart(v SessionView)
	OnNightBegins(v SessionView)
	OnNightEnds(v SessionView)

	// FinishedNightAction gates the automatic Night -> Day transition.
	// Roles without night actions are vacuously finished.
	FinishedNightAction() bool
	// NightActions returns the actions this role contributes at night.
	// The actions close over the supplied view and are rebuilt on every
	// call.
	NightActions(v SessionView) []*Action

	// KillTarget is this role's pending kill, if any.
	KillTarget() *Player
	// SpecialTarget is this role's pending non-kill target (protection,
	// corruption, a seer's peek), if any.
	SpecialTarget() *Player

	// HandleChat routes a chat line from the role's owner while alive
	// (faction-private chat and the like).
	HandleChat(v SessionView, sender *Player, message string, private bool)

	Owner() *Player
	bind(p *Player)
}

// corruptible is implemented by roles whose night action a Corrupter can
// nullify. corrupt fires during night resolution, before the role's
// target is read.
type corruptible interface {
	corrupt(v SessionView)
}

// baseRole supplies the no-op defaults shared by every variant.
type baseRole struct {
	owner *Player
}

func (b *baseRole) bind(p *Player)                                 { b.owner = p }
func (b *baseRole) Owner() *Player                                 { return b.owner }
func (b *baseRole) KillMessage() string                            { return "was killed" }
func (b *baseRole) OnGameStart(SessionView)                        {}
func (b *baseRole) OnNightBegins(SessionView)                      {}
func (b *baseRole) OnNightEnds(SessionView)                        {}
func (b *baseRole) FinishedNightAction() bool                      { return true }
func (b *baseRole) NightActions(SessionView) []*Action             { return nil }
func (b *baseRole) KillTarget() *Player                            { return nil }
func (b *baseRole) SpecialTarget() *Player                         { return nil }
func (b *baseRole) HandleChat(SessionView, *Player, string, bool)  {}
