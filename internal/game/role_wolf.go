package game

import "fmt"

// wolfRole nominates a kill target each night. Nominations are shared
// with the rest of the pack over wolf-chat, and the pack's single
// resolved target is chosen from the distinct nominations at night
// close.
type wolfRole struct {
	baseRole

	killTarget *Player
}

func (r *wolfRole) Type() RoleType   { return Wolf }
func (r *wolfRole) Faction() Faction { return Wolves }

func (r *wolfRole) Description() string {
	return "The Wolves kill a villager every night. They win when their numbers equal those of the villagers."
}

func (r *wolfRole) KillMessage() string {
	return "was torn apart by wolves"
}

func (r *wolfRole) OnGameStart(v SessionView) {
	v.SendTo(r.owner, "The wolves are: "+playerNames(v.PlayersByRole(Wolf)))
}

func (r *wolfRole) OnNightBegins(v SessionView) {
	r.killTarget = nil
	v.SendTo(r.owner, "Who do you want to kill? Message me !kill <target>")
}

func (r *wolfRole) FinishedNightAction() bool {
	return r.killTarget != nil
}

func (r *wolfRole) KillTarget() *Player {
	return r.killTarget
}

func (r *wolfRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "kill",
		Args:        []string{"target"},
		Description: "Feast on their flesh! The target will not awaken in the morning...",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			r.killTarget = target
			r.wolfChat(v, invoker, fmt.Sprintf("%s votes to kill %s", invoker, target))
			v.SendTo(invoker, fmt.Sprintf("Your wish to kill %s has been received.", target))
			return nil
		},
	}}
}

func (r *wolfRole) HandleChat(v SessionView, sender *Player, message string, private bool) {
	if v.IsNight() && private {
		r.wolfChat(v, sender, fmt.Sprintf("%s: %s", sender, message))
	}
}

// wolfChat relays a line to every other living wolf.
func (r *wolfRole) wolfChat(v SessionView, sender *Player, line string) {
	for _, wolf := range v.PlayersByRole(Wolf) {
		if wolf != sender {
			v.SendTo(wolf, "<WolfChat> "+line)
		}
	}
}
