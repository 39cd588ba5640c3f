package game

import "fmt"

// vigilanteRole shoots one player each night on its own authority. A
// Corrupter spoils the shot before resolution.
type vigilanteRole struct {
	baseRole

	target    *Player
	corrupted bool
}

func (r *vigilanteRole) Type() RoleType   { return Vigilante }
func (r *vigilanteRole) Faction() Faction { return Villagers }

func (r *vigilanteRole) Description() string {
	return "The Vigilante takes justice into their own hands, shooting one player each night."
}

func (r *vigilanteRole) KillMessage() string {
	return "was shot through the heart"
}

func (r *vigilanteRole) OnNightBegins(v SessionView) {
	r.target = nil
	r.corrupted = false
	v.SendTo(r.owner, "Who do you want to shoot? Message me !shoot <target>")
}

func (r *vigilanteRole) FinishedNightAction() bool {
	return r.target != nil || r.corrupted
}

func (r *vigilanteRole) KillTarget() *Player {
	return r.target
}

func (r *vigilanteRole) corrupt(v SessionView) {
	r.corrupted = true
	r.target = nil
	v.SendTo(r.owner, "Your hands shake and your aim wanders. Something is wrong with you tonight.")
}

func (r *vigilanteRole) NightActions(v SessionView) []*Action {
	return []*Action{{
		Name:        "shoot",
		Args:        []string{"target"},
		Description: "Puts a bullet in the target. No trial, no appeal.",
		apply: func(invoker *Player, args []string) error {
			target, err := v.FindAlive(args[0])
			if err != nil {
				return err
			}
			if target == invoker {
				return Rulef("You cannot shoot yourself.")
			}
			r.target = target
			v.SendTo(invoker, fmt.Sprintf("You load a round and wait for %s.", target))
			return nil
		},
	}}
}
