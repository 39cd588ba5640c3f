package game

import (
	"fmt"
	"strings"
)

// --- day actions ---

func (g *GameStage) voteAction() *Action {
	return &Action{
		Name:        "vote",
		Args:        []string{"target"},
		Description: "Accuses a player. Re-voting overwrites your accusation.",
		apply: func(invoker *Player, args []string) error {
			if !g.daytime {
				return Rulef("Voting happens during the day.")
			}
			target, err := g.FindAlive(args[0])
			if err != nil {
				return err
			}
			g.votes.Record(invoker, target)
			g.Send(fmt.Sprintf("%s votes to lynch %s.", invoker, target))
			return nil
		},
	}
}

func (g *GameStage) votecountAction() *Action {
	return &Action{
		Name:        "votecount",
		Description: "Shows the current vote tally.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			tally := g.votes.Tally()
			if len(tally) == 0 {
				g.Send("No votes have been cast.")
				return nil
			}
			for _, entry := range tally {
				g.Send(fmt.Sprintf("%s (%d): %s", entry.Accused, len(entry.Voters), playerNames(entry.Voters)))
			}
			return nil
		},
	}
}

func (g *GameStage) clearvoteAction() *Action {
	return &Action{
		Name:        "clearvote",
		Description: "Withdraws your accusation.",
		apply: func(invoker *Player, _ []string) error {
			if !g.votes.Withdraw(invoker) {
				return Rulef("You have no vote to withdraw.")
			}
			g.Send(fmt.Sprintf("%s withdraws their vote.", invoker))
			return nil
		},
	}
}

func (g *GameStage) playersAction() *Action {
	return &Action{
		Name:        "players",
		Description: "Lists the living and the dead.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			alive := g.AlivePlayers()
			g.Send(fmt.Sprintf("Alive (%d): %s", len(alive), playerNames(alive)))
			var dead []*Player
			for _, p := range g.players {
				if !p.Alive() {
					dead = append(dead, p)
				}
			}
			if len(dead) > 0 {
				g.Send(fmt.Sprintf("Dead (%d): %s", len(dead), playerNames(dead)))
			}
			return nil
		},
	}
}

func (g *GameStage) roleAction() *Action {
	return &Action{
		Name:        "role",
		Description: "Privately reminds you of your role.",
		DeadOK:      true,
		apply: func(invoker *Player, _ []string) error {
			role := invoker.Role()
			g.SendTo(invoker, fmt.Sprintf("You are the %s. %s", role.Type(), role.Description()))
			for _, a := range role.NightActions(g) {
				g.SendTo(invoker, fmt.Sprintf("At night: %s - %s", a.Usage(), a.Description))
			}
			return nil
		},
	}
}

func (g *GameStage) statusAction() *Action {
	return &Action{
		Name:        "status",
		Description: "Shows the roles in this game.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			g.Send(fmt.Sprintf("Day %d. Roles in play: %s", g.day, describeRoles(g.cfg.Roles())))
			return nil
		},
	}
}

// --- host actions ---

func (g *GameStage) announceAction() *Action {
	return &Action{
		Name:        "announce",
		Args:        []string{"message"},
		Description: "Makes an announcement to the village.",
		Variadic:    true,
		DeadOK:      true,
		apply: func(_ *Player, args []string) error {
			g.Send("ANNOUNCEMENT - " + strings.Join(args, " "))
			return nil
		},
	}
}

func (g *GameStage) abortAction() *Action {
	return &Action{
		Name:        "abort",
		Description: "Aborts the game without declaring a winner.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			g.abort()
			return nil
		},
	}
}

func (g *GameStage) remindAction() *Action {
	return &Action{
		Name:        "remind",
		Description: "Nudges everyone still choosing a night action.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			if g.daytime {
				return Rulef("There is nothing to remind during the day.")
			}
			for _, p := range g.AlivePlayers() {
				if !p.Role().FinishedNightAction() {
					g.SendTo(p, "The night waits on you. Choose your action.")
				}
			}
			return nil
		},
	}
}

func (g *GameStage) nightfallAction() *Action {
	return &Action{
		Name:        "nightfall",
		Description: "Ends the day and brings on the night.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			if !g.daytime {
				return Rulef("It is already night.")
			}
			g.moveToNight()
			return nil
		},
	}
}

// --- admin actions ---

func (g *GameStage) modkillAction() *Action {
	return &Action{
		Name:        "modkill",
		Args:        []string{"target"},
		Description: "Forcibly eliminates a player.",
		Admin:       true,
		DeadOK:      true,
		apply: func(_ *Player, args []string) error {
			target, err := g.FindAlive(args[0])
			if err != nil {
				return err
			}
			g.applyDeath(target)
			g.Send(fmt.Sprintf("%s has been modkilled.", target))
			g.session.bot.OnPlayersChanged()
			g.checkForWinner()
			return nil
		},
	}
}

func (g *GameStage) votersAction() *Action {
	return &Action{
		Name:        "voters",
		Args:        []string{"target"},
		Description: "Privately lists everyone voting for the target.",
		Admin:       true,
		DeadOK:      true,
		apply: func(invoker *Player, args []string) error {
			target, err := g.FindAlive(args[0])
			if err != nil {
				return err
			}
			voters := g.votes.Voters(target)
			if len(voters) == 0 {
				g.SendTo(invoker, fmt.Sprintf("No one is voting for %s.", target))
				return nil
			}
			g.SendTo(invoker, fmt.Sprintf("Voting for %s: %s", target, playerNames(voters)))
			return nil
		},
	}
}

// --- private chat actions ---

func (g *GameStage) newroomAction() *Action {
	return &Action{
		Name:        "newroom",
		Args:        []string{"room"},
		Description: "Creates a private chat room you control.",
		apply: func(invoker *Player, args []string) error {
			if err := g.chat.Create(invoker, args[0]); err != nil {
				return err
			}
			g.SendTo(invoker, fmt.Sprintf("Room %s created.", args[0]))
			return nil
		},
	}
}

func (g *GameStage) joinroomAction() *Action {
	return &Action{
		Name:        "joinroom",
		Args:        []string{"room"},
		Description: "Joins a room you are authorized for.",
		apply: func(invoker *Player, args []string) error {
			if err := g.chat.Join(invoker, args[0]); err != nil {
				return err
			}
			g.SendTo(invoker, fmt.Sprintf("You joined %s.", args[0]))
			return nil
		},
	}
}

func (g *GameStage) leaveroomAction() *Action {
	return &Action{
		Name:        "leaveroom",
		Args:        []string{"room"},
		Description: "Leaves a room.",
		apply: func(invoker *Player, args []string) error {
			if err := g.chat.Leave(invoker, args[0]); err != nil {
				return err
			}
			g.SendTo(invoker, fmt.Sprintf("You left %s.", args[0]))
			return nil
		},
	}
}

func (g *GameStage) roomsAction() *Action {
	return &Action{
		Name:        "rooms",
		Description: "Lists the rooms you are in.",
		apply: func(invoker *Player, _ []string) error {
			rooms := g.chat.RoomsFor(invoker)
			if len(rooms) == 0 {
				g.SendTo(invoker, "You are not in any rooms.")
				return nil
			}
			g.SendTo(invoker, "Your rooms: "+strings.Join(rooms, ", "))
			return nil
		},
	}
}

func (g *GameStage) authorizeAction() *Action {
	return &Action{
		Name:        "authorize",
		Args:        []string{"player", "room"},
		Description: "Lets a player join your room.",
		apply: func(invoker *Player, args []string) error {
			target, err := g.FindAlive(args[0])
			if err != nil {
				return err
			}
			if err := g.chat.Authorize(invoker, args[1], target); err != nil {
				return err
			}
			g.SendTo(invoker, fmt.Sprintf("%s may now join %s.", target, args[1]))
			g.SendTo(target, fmt.Sprintf("%s has invited you to room %s. Use !joinroom %s", invoker, args[1], args[1]))
			return nil
		},
	}
}

func (g *GameStage) revokeAction() *Action {
	return &Action{
		Name:        "revoke",
		Args:        []string{"player", "room"},
		Description: "Removes a player from your room.",
		apply: func(invoker *Player, args []string) error {
			target := g.playerOrNil(args[0])
			if target == nil {
				return Rulef("No such player: %s", args[0])
			}
			if err := g.chat.Revoke(invoker, args[1], target); err != nil {
				return err
			}
			g.SendTo(invoker, fmt.Sprintf("%s has been removed from %s.", target, args[1]))
			return nil
		},
	}
}

func (g *GameStage) chatAction() *Action {
	return &Action{
		Name:        "chat",
		Args:        []string{"room", "message"},
		Description: "Sends a message to one of your rooms.",
		Variadic:    true,
		apply: func(invoker *Player, args []string) error {
			return g.chat.Deliver(g, invoker, args[0], strings.Join(args[1:], " "))
		},
	}
}
