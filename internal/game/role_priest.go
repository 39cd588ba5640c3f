package game

import "fmt"

// priestRole protects one living player from ordinary kill resolution
// each night. Whether the same target may be protected two nights in a
// row is governed by the REPEAT_PROTECTION setting.
type priestRole struct {
	baseRole

	lastTarget *Player
	target     *Player
}

func (r *priestRole) Type() RoleType   { return Priest }
func (r *priestRole) Faction() Faction { return Villagers }

func (r *priestRole) Description() string {
	return "The Priest can protect a player each night, preventing that player from being killed."
}

func (r *priestRole) OnNightBegins(v SessionView) {
	r.target = nil
	v.SendTo(r.owner, "Who do you want to protect? Message me !protect <target>")
}

func (r *priestRole) OnNightEnds(v SessionView) {
	r.lastTarget = r.target
	r.target = nil
}

func (r *priestRole) FinishedNightAction() bool {
	return r.target != nil
}

func (r *priestRole) SpecialTarget() *Player {
	return r.target
}

func (r *priestRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "protect",
		Args:        []string{"target"},
		Description: "Protects the target from being killed by wolves tonight.",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			if v.Setting(SettingRepeatProtection) == "FORBID" && target == r.lastTarget {
				return Rulef("You cannot protect %s twice in a row.", target)
			}
			r.target = target
			v.SendTo(invoker, fmt.Sprintf("Your wish to protect %s has been received.", target))
			return nil
		},
	}}
}
