package game

import (
	"fmt"
	"strings"

	"github.com/lox/werewolfd/internal/randutil"
)

// SetupStage gathers the lobby roster and the game configuration. Once
// a host or admin starts the game, the config freezes and control hands
// off to a GameStage.
type SetupStage struct {
	session *Session
	cfg     *GameConfig
	players map[string]*Player // keyed by lowercased name

	actions []*Action
}

// NewSetupStage creates a fresh lobby for the session.
func NewSetupStage(s *Session) *SetupStage {
	st := &SetupStage{
		session: s,
		cfg:     NewGameConfig(),
		players: make(map[string]*Player),
	}
	st.actions = []*Action{
		helpAction(func(*Player) []*Action { return st.actions }, func(p *Player, text string) {
			s.bot.SendPrivate(p.Name, text)
		}),
		st.joinAction(),
		st.leaveAction(),
		st.playersAction(),
		st.configsAction(),
		st.loadAction(),
		st.setAction(),
		st.sethostAction(),
		st.startAction(),
	}
	return st
}

// Name implements Stage.
func (st *SetupStage) Name() string {
	return "setup"
}

// Players returns the confirmed roster, sorted by name.
func (st *SetupStage) Players() []*Player {
	players := make([]*Player, 0, len(st.players))
	for _, p := range st.players {
		players = append(players, p)
	}
	sortPlayers(players)
	return players
}

// Config exposes the in-progress configuration.
func (st *SetupStage) Config() *GameConfig {
	return st.cfg
}

// Handle implements Stage. Senders that have not joined yet still get a
// player identity, so !join works before membership.
func (st *SetupStage) Handle(sender string, admin bool, command string, args []string) error {
	invoker, ok := st.players[strings.ToLower(sender)]
	if !ok {
		invoker = NewPlayer(sender, admin)
	}
	return dispatch(st.actions, invoker, command, args)
}

// HandleChat implements Stage. Lobby chat flows through the transport
// untouched.
func (st *SetupStage) HandleChat(sender string, message string, private bool) error {
	return nil
}

func (st *SetupStage) joinAction() *Action {
	return &Action{
		Name:        "join",
		Description: "Joins the game.",
		apply: func(invoker *Player, _ []string) error {
			key := strings.ToLower(invoker.Name)
			if _, exists := st.players[key]; exists {
				return Rulef("%s already joined!", invoker)
			}
			st.players[key] = invoker
			st.session.bot.SendMessage(fmt.Sprintf("%s joined the game.", invoker))
			return nil
		},
	}
}

func (st *SetupStage) leaveAction() *Action {
	return &Action{
		Name:        "leave",
		Description: "Leaves the game.",
		apply: func(invoker *Player, _ []string) error {
			key := strings.ToLower(invoker.Name)
			if _, exists := st.players[key]; !exists {
				return Rulef("%s is not in the game!", invoker)
			}
			delete(st.players, key)
			if st.cfg.Host() == invoker {
				st.cfg.SetHost(nil)
			}
			st.session.bot.SendMessage(fmt.Sprintf("%s left the game.", invoker))
			return nil
		},
	}
}

func (st *SetupStage) playersAction() *Action {
	return &Action{
		Name:        "players",
		Description: "Lists everyone who has joined.",
		apply: func(*Player, []string) error {
			players := st.Players()
			st.session.bot.SendMessage(fmt.Sprintf("%d Players: %s", len(players), playerNames(players)))
			return nil
		},
	}
}

func (st *SetupStage) configsAction() *Action {
	return &Action{
		Name:        "configs",
		Description: "Lists the preset configurations.",
		apply: func(*Player, []string) error {
			for _, name := range st.session.registry.Names() {
				preset, _ := st.session.registry.Get(name)
				st.session.bot.SendMessage(fmt.Sprintf("%s: %s", preset.Name, describeRoles(preset.Roles)))
			}
			return nil
		},
	}
}

func (st *SetupStage) loadAction() *Action {
	return &Action{
		Name:        "load",
		Args:        []string{"configName"},
		Description: "Loads a preset configuration of roles.",
		apply: func(_ *Player, args []string) error {
			preset, ok := st.session.registry.Get(args[0])
			if !ok {
				return Rulef("%s is an invalid configuration.", args[0])
			}
			st.cfg.SetRoles(preset.Roles)
			for name, value := range preset.Settings {
				if err := st.cfg.SetSetting(name, value); err != nil {
					return err
				}
			}
			st.session.bot.SendMessage(fmt.Sprintf("%s loaded.", preset.Name))
			return nil
		},
	}
}

func (st *SetupStage) setAction() *Action {
	return &Action{
		Name:        "set",
		Args:        []string{"setting", "value"},
		Description: "Changes a game setting.",
		apply: func(_ *Player, args []string) error {
			if err := st.cfg.SetSetting(args[0], args[1]); err != nil {
				return err
			}
			st.session.bot.SendMessage(fmt.Sprintf("%s is now %s.", strings.ToUpper(args[0]), strings.ToUpper(args[1])))
			return nil
		},
	}
}

func (st *SetupStage) sethostAction() *Action {
	return &Action{
		Name:        "sethost",
		Args:        []string{"player"},
		Description: "Designates the game host.",
		Admin:       true,
		apply: func(_ *Player, args []string) error {
			host, ok := st.players[strings.ToLower(args[0])]
			if !ok {
				return Rulef("No such player: %s", args[0])
			}
			st.cfg.SetHost(host)
			st.session.bot.SendMessage(fmt.Sprintf("%s is now the host of the game.", host))
			return nil
		},
	}
}

func (st *SetupStage) startAction() *Action {
	return &Action{
		Name:        "start",
		Description: "Starts the game with the loaded configuration.",
		apply: func(invoker *Player, _ []string) error {
			if !invoker.Admin && invoker != st.cfg.Host() {
				return Rulef("Only the host or an admin can start the game.")
			}
			needed := st.cfg.PlayersNeeded()
			if needed == 0 {
				return Rulef("Load a configuration first. Use !configs to see the presets.")
			}
			players := st.Players()
			if needed > len(players) {
				return Rulef("The configuration needs %d players but only %d joined.", needed, len(players))
			}

			st.assignRoles(players)

			stage, err := NewGameStage(st.session, st.cfg, players)
			if err != nil {
				st.session.logger.Error("failed to construct game stage", "error", err)
				st.session.bot.SendMessage("There was a server error when initializing the game!")
				st.session.setStage(NewSetupStage(st.session))
				return nil
			}
			st.session.setStage(stage)
			return nil
		},
	}
}

// assignRoles shuffles the roster through the session RNG and deals the
// configured roles in order. Players beyond the configured headcount
// become plain villagers.
func (st *SetupStage) assignRoles(players []*Player) {
	shuffled := append([]*Player(nil), players...)
	randutil.Shuffle(st.session.rng, shuffled)

	var roles []Role
	for _, rc := range st.cfg.Roles() {
		for i := 0; i < rc.Count; i++ {
			roles = append(roles, rc.Type.New())
		}
	}
	for len(roles) < len(shuffled) {
		roles = append(roles, Villager.New())
	}

	for i, p := range shuffled {
		p.AssignRole(roles[i])
	}
}
