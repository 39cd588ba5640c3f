package game

import "fmt"

// seerRole peeks at one player each night and learns their faction at
// dawn. A Corrupter clouds the vision; peeking the Demon is fatal.
type seerRole struct {
	baseRole

	target  *Player
	clouded bool
}

func (r *seerRole) Type() RoleType   { return Seer }
func (r *seerRole) Faction() Faction { return Villagers }

func (r *seerRole) Description() string {
	return "The Seer learns the true allegiance of one player every night."
}

func (r *seerRole) OnNightBegins(v SessionView) {
	r.target = nil
	r.clouded = false
	v.SendTo(r.owner, "Whose soul do you want to see? Message me !peek <target>")
}

func (r *seerRole) OnNightEnds(v SessionView) {
	if r.target != nil {
		if r.clouded {
			v.SendTo(r.owner, "Your vision swims and fades. You learn nothing tonight.")
		} else {
			v.SendTo(r.owner, fmt.Sprintf("%s is aligned with the %s.", r.target, r.target.Role().Faction().Plural()))
		}
	}
	r.target = nil
}

func (r *seerRole) FinishedNightAction() bool {
	return r.target != nil
}

func (r *seerRole) SpecialTarget() *Player {
	return r.target
}

func (r *seerRole) corrupt(v SessionView) {
	r.clouded = true
}

func (r *seerRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "peek",
		Args:        []string{"target"},
		Description: "Reveals the target's faction to you at dawn.",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			if target == invoker {
				return Rulef("You already know your own soul.")
			}
			r.target = target
			v.SendTo(invoker, fmt.Sprintf("You focus your sight on %s.", target))
			return nil
		},
	}}
}
