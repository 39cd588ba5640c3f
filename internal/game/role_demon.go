package game

import "fmt"

// demonRole kills nightly and cannot be killed by ordinary means. Anyone
// who targets a demon with a kill or special action dies instead; if a
// wolf targets it, a random wolf pays the price. The redirect bypasses
// protection.
type demonRole struct {
	baseRole

	target *Player
}

func (r *demonRole) Type() RoleType   { return Demon }
func (r *demonRole) Faction() Faction { return Demons }

func (r *demonRole) Description() string {
	return "The Demon kills nightly and destroys any fool who meddles with it. It wins when it holds half the village."
}

func (r *demonRole) KillMessage() string {
	return "was dragged into the abyss"
}

func (r *demonRole) OnNightBegins(v SessionView) {
	r.target = nil
	v.SendTo(r.owner, "Whose soul do you claim tonight? Message me !kill <target>")
}

func (r *demonRole) FinishedNightAction() bool {
	return r.target != nil
}

func (r *demonRole) KillTarget() *Player {
	return r.target
}

func (r *demonRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "kill",
		Args:        []string{"target"},
		Description: "Claims the target's soul.",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			if target == invoker {
				return Rulef("Your soul is already spoken for.")
			}
			r.target = target
			v.SendTo(invoker, fmt.Sprintf("%s's soul will be yours.", target))
			return nil
		},
	}}
}
