package game

import "fmt"

// corrupterRole marks one player each night; the mark nullifies that
// player's night action before resolution. A corrupted Priest protects
// no one, a corrupted Vigilante's shot goes wild, a corrupted Seer sees
// nothing.
type corrupterRole struct {
	baseRole

	target *Player
}

func (r *corrupterRole) Type() RoleType   { return Corrupter }
func (r *corrupterRole) Faction() Faction { return Wolves }

func (r *corrupterRole) Description() string {
	return "The Corrupter taints one player each night, nullifying whatever they tried to do."
}

func (r *corrupterRole) OnNightBegins(v SessionView) {
	r.target = nil
	v.SendTo(r.owner, "Who do you want to corrupt? Message me !corrupt <target>")
}

func (r *corrupterRole) OnNightEnds(v SessionView) {
	r.target = nil
}

func (r *corrupterRole) FinishedNightAction() bool {
	return r.target != nil
}

func (r *corrupterRole) SpecialTarget() *Player {
	return r.target
}

func (r *corrupterRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "corrupt",
		Args:        []string{"target"},
		Description: "Taints the target, nullifying their night action.",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			if target == invoker {
				return Rulef("You are already corrupt.")
			}
			r.target = target
			v.SendTo(invoker, fmt.Sprintf("A shadow settles over %s.", target))
			return nil
		},
	}}
}
