package game

// villagerRole contributes nothing at night; it exists to vote and be
// eaten.
type villagerRole struct {
	baseRole
}

func (r *villagerRole) Type() RoleType   { return Villager }
func (r *villagerRole) Faction() Faction { return Villagers }

func (r *villagerRole) Description() string {
	return "The Villagers have no special powers. They win by lynching every threat to the village."
}

// hunterRole is the wolves' counter: while a Hunter lives, the wolves
// cannot win on numbers alone.
type hunterRole struct {
	baseRole
}

func (r *hunterRole) Type() RoleType   { return Hunter }
func (r *hunterRole) Faction() Faction { return Villagers }

func (r *hunterRole) Description() string {
	return "The Hunter keeps the wolves at bay. As long as the Hunter lives, the wolves cannot overrun the village."
}

// minionRole is a villager sworn to the wolves. It knows who they are
// but has no night action of its own.
type minionRole struct {
	baseRole
}

func (r *minionRole) Type() RoleType   { return Minion }
func (r *minionRole) Faction() Faction { return Wolves }

func (r *minionRole) Description() string {
	return "The Minion serves the wolves and wins with them, but has no powers of its own."
}

func (r *minionRole) OnGameStart(v SessionView) {
	v.SendTo(r.owner, "You serve the wolves. The wolves are: "+playerNames(v.PlayersByRole(Wolf)))
}
