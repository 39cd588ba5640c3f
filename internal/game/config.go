package game

import (
	"fmt"
	"strings"
)

// Setting names. Values are validated against settingValues; names and
// values are matched case-insensitively and stored upper-cased.
const (
	SettingWithdrawVotes    = "WITHDRAW_VOTES"       // YES | NO
	SettingRevealKillers    = "REVEAL_NIGHT_KILLERS" // YES | NO
	SettingKillAnnounce     = "NIGHT_KILL_ANNOUNCE"  // FACTION | ROLE | NONE
	SettingTellWolvesOnKill = "TELL_WOLVES_ON_KILL"  // FACTION | ROLE | NONE
	SettingTellVigOnKill    = "TELL_VIG_ON_KILL"     // FACTION | ROLE | NONE
	SettingTellDemonOnKill  = "TELL_DEMON_ON_KILL"   // FACTION | ROLE | NONE
	SettingSilentGame       = "SILENT_GAME"          // ENABLED | DISABLED
	SettingPrivateChat      = "PRIVATE_CHAT"         // ENABLED | DISABLED
	SettingRepeatProtection = "REPEAT_PROTECTION"    // FORBID | ALLOW
)

var settingValues = map[string][]string{
	SettingWithdrawVotes:    {"YES", "NO"},
	SettingRevealKillers:    {"YES", "NO"},
	SettingKillAnnounce:     {"FACTION", "ROLE", "NONE"},
	SettingTellWolvesOnKill: {"FACTION", "ROLE", "NONE"},
	SettingTellVigOnKill:    {"FACTION", "ROLE", "NONE"},
	SettingTellDemonOnKill:  {"FACTION", "ROLE", "NONE"},
	SettingSilentGame:       {"ENABLED", "DISABLED"},
	SettingPrivateChat:      {"ENABLED", "DISABLED"},
	SettingRepeatProtection: {"FORBID", "ALLOW"},
}

func defaultSettings() map[string]string {
	return map[string]string{
		SettingWithdrawVotes:    "YES",
		SettingRevealKillers:    "YES",
		SettingKillAnnounce:     "FACTION",
		SettingTellWolvesOnKill: "NONE",
		SettingTellVigOnKill:    "FACTION",
		SettingTellDemonOnKill:  "NONE",
		SettingSilentGame:       "DISABLED",
		SettingPrivateChat:      "ENABLED",
		SettingRepeatProtection: "FORBID",
	}
}

// RoleCount pairs a role type with its required headcount. Order is
// preserved for display.
type RoleCount struct {
	Type  RoleType
	Count int
}

// GameConfig is the frozen shape of one game: how many of each role,
// the named settings, and the designated host. It is mutated only
// during Setup.
type GameConfig struct {
	roles    []RoleCount
	settings map[string]string
	host     *Player
}

// NewGameConfig returns an empty config with default settings.
func NewGameConfig() *GameConfig {
	return &GameConfig{settings: defaultSettings()}
}

// SetRole sets the required headcount for a role. A zero count removes
// the role from the config.
func (c *GameConfig) SetRole(t RoleType, n int) {
	for i, rc := range c.roles {
		if rc.Type == t {
			if n == 0 {
				c.roles = append(c.roles[:i], c.roles[i+1:]...)
			} else {
				c.roles[i].Count = n
			}
			return
		}
	}
	if n > 0 {
		c.roles = append(c.roles, RoleCount{Type: t, Count: n})
	}
}

// SetRoles replaces the whole role table, preserving the given order.
func (c *GameConfig) SetRoles(roles []RoleCount) {
	c.roles = append([]RoleCount(nil), roles...)
}

// Roles returns the role table in insertion order.
func (c *GameConfig) Roles() []RoleCount {
	return c.roles
}

// PlayersNeeded is the total headcount the config requires.
func (c *GameConfig) PlayersNeeded() int {
	n := 0
	for _, rc := range c.roles {
		n += rc.Count
	}
	return n
}

// Setting returns the current value of a named setting.
func (c *GameConfig) Setting(name string) string {
	return c.settings[strings.ToUpper(name)]
}

// SetSetting validates and stores a setting. Unknown names and values
// are rule violations.
func (c *GameConfig) SetSetting(name, value string) error {
	name = strings.ToUpper(name)
	value = strings.ToUpper(value)
	allowed, ok := settingValues[name]
	if !ok {
		return Rulef("%s is not a setting.", name)
	}
	for _, v := range allowed {
		if v == value {
			c.settings[name] = value
			return nil
		}
	}
	return Rulef("%s must be one of: %s", name, strings.Join(allowed, ", "))
}

// SettingNames returns the known setting names for display.
func SettingNames() []string {
	names := make([]string, 0, len(settingValues))
	for name := range settingValues {
		names = append(names, name)
	}
	return names
}

// Host returns the designated host player, if any.
func (c *GameConfig) Host() *Player {
	return c.host
}

// SetHost designates (or clears) the host.
func (c *GameConfig) SetHost(p *Player) {
	c.host = p
}

// describeRoles renders "Seer (1), Priest (1), Villager (5)" lines.
func describeRoles(roles []RoleCount) string {
	parts := make([]string, len(roles))
	for i, rc := range roles {
		parts[i] = fmt.Sprintf("%s (%d)", rc.Type, rc.Count)
	}
	return strings.Join(parts, ", ")
}

// Preset is a named, reusable role configuration.
type Preset struct {
	Name     string
	Roles    []RoleCount
	Settings map[string]string
}

// ConfigRegistry holds the preset configurations available at Setup.
// It is constructed at process start and passed into sessions; there is
// no hidden global table. Names are case-insensitive.
type ConfigRegistry struct {
	order   []string
	presets map[string]Preset
}

// NewConfigRegistry returns an empty registry.
func NewConfigRegistry() *ConfigRegistry {
	return &ConfigRegistry{presets: make(map[string]Preset)}
}

// DefaultRegistry returns the built-in presets.
func DefaultRegistry() *ConfigRegistry {
	r := NewConfigRegistry()
	_ = r.Add(Preset{Name: "default", Roles: []RoleCount{
		{Seer, 1}, {Priest, 1}, {Villager, 5}, {Wolf, 2},
	}})
	_ = r.Add(Preset{Name: "fives", Roles: []RoleCount{
		{Seer, 1}, {Villager, 1}, {Wolf, 1}, {Minion, 1}, {Hunter, 1},
	}})
	return r
}

// Add registers a preset, replacing any same-named one.
func (r *ConfigRegistry) Add(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset needs a name")
	}
	if len(p.Roles) == 0 {
		return fmt.Errorf("preset %s has no roles", p.Name)
	}
	for name, value := range p.Settings {
		probe := NewGameConfig()
		if err := probe.SetSetting(name, value); err != nil {
			return fmt.Errorf("preset %s: %s=%s is not a valid setting", p.Name, name, value)
		}
	}
	key := strings.ToLower(p.Name)
	if _, exists := r.presets[key]; !exists {
		r.order = append(r.order, key)
	}
	r.presets[key] = p
	return nil
}

// Get resolves a preset by name, case-insensitively.
func (r *ConfigRegistry) Get(name string) (Preset, bool) {
	p, ok := r.presets[strings.ToLower(name)]
	return p, ok
}

// Names returns the preset names in registration order.
func (r *ConfigRegistry) Names() []string {
	return r.order
}
