package game

import (
	"fmt"
	"strings"
	"time"
)

// GameStage runs the Day/Night loop. It owns the voting ledger, the
// chat rooms, the kill history and the win-condition checks, and hands
// control to a ConcludedStage once a winner emerges.
type GameStage struct {
	session *Session
	id      string
	cfg     *GameConfig

	players []*Player // all players, even dead ones, sorted by name
	daytime bool
	day     int

	votes       *VotingLedger
	killHistory []NightRecord
	chat        *ChatRooms
	startedAt   time.Time
	concluded   bool

	help         *Action
	dayActions   []*Action
	hostActions  []*Action
	adminActions []*Action
	chatActions  []*Action
}

const noneDeadMsg = "The sun dawns and the village finds that no one has died in the night."

// NewGameStage freezes the config, wires the action sets and fires the
// start-of-game hooks. A panicking role hook is contained here: the
// error return lets the caller reset to a fresh Setup stage instead of
// crashing the process.
func NewGameStage(s *Session, cfg *GameConfig, players []*Player) (st *GameStage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("game stage init: %v", r)
		}
	}()

	st = &GameStage{
		session:   s,
		id:        s.id,
		cfg:       cfg,
		players:   append([]*Player(nil), players...),
		daytime:   true,
		day:       1,
		votes:     NewVotingLedger(),
		chat:      NewChatRooms(),
		startedAt: s.clock.Now(),
	}
	sortPlayers(st.players)

	st.help = helpAction(st.AvailableActions, func(p *Player, text string) {
		s.bot.SendPrivate(p.Name, text)
	})

	st.dayActions = []*Action{
		st.help,
		st.voteAction(),
		st.votecountAction(),
	}
	if cfg.Setting(SettingWithdrawVotes) == "YES" {
		st.dayActions = append(st.dayActions, st.clearvoteAction())
	}
	st.dayActions = append(st.dayActions,
		st.playersAction(),
		st.roleAction(),
		st.statusAction(),
	)

	st.adminActions = []*Action{
		st.modkillAction(),
		st.votersAction(),
	}

	st.hostActions = []*Action{
		st.announceAction(),
		st.abortAction(),
		st.remindAction(),
		st.nightfallAction(),
	}

	st.chatActions = []*Action{
		st.newroomAction(),
		st.joinroomAction(),
		st.leaveroomAction(),
		st.roomsAction(),
		st.authorizeAction(),
		st.revokeAction(),
		st.chatAction(),
	}

	st.beginGame()
	return st, nil
}

func (g *GameStage) beginGame() {
	bot := g.session.bot
	bot.SendMessage("If this is your first game, use !help at any time for assistance. You can use !status to see what roles are in the game.")
	bot.SendMessage("Please do NOT copy/paste any text from the moderator as it is private.")

	for _, p := range g.players {
		p.Role().OnGameStart(g)
	}

	g.unmutePlayers()
	bot.SendMessage("Day 1 dawns on the village.")
}

// Name implements Stage.
func (g *GameStage) Name() string {
	if g.daytime {
		return "day"
	}
	return "night"
}

// IsDay reports whether it is currently day.
func (g *GameStage) IsDay() bool {
	return g.daytime
}

// Handle implements Stage. After every handled night command the stage
// checks whether the last required role has finished, which closes the
// night.
func (g *GameStage) Handle(sender string, admin bool, command string, args []string) error {
	invoker := g.playerOrNil(sender)
	if invoker == nil {
		return Rulef("You are not in this game.")
	}

	err := dispatch(g.AvailableActions(invoker), invoker, command, args)

	if !g.daytime && !g.concluded {
		g.checkForEndOfNight()
	}
	return err
}

// HandleChat implements Stage. Living players' lines are routed to
// their role for faction-private chat.
func (g *GameStage) HandleChat(sender string, message string, private bool) error {
	p := g.playerOrNil(sender)
	if p == nil || !p.Alive() {
		return nil
	}
	p.Role().HandleChat(g, p, message, private)
	return nil
}

// AvailableActions computes the action set visible to one player:
// admins see host and admin actions, the host sees host actions, day
// adds the public day set (and chat rooms when enabled), night narrows
// to the player's own role actions plus help.
func (g *GameStage) AvailableActions(p *Player) []*Action {
	var actions []*Action
	if p.Admin {
		actions = append(actions, g.hostActions...)
		actions = append(actions, g.adminActions...)
	} else if p == g.cfg.Host() {
		actions = append(actions, g.hostActions...)
	}
	if g.daytime {
		if g.cfg.Setting(SettingPrivateChat) == "ENABLED" {
			actions = append(actions, g.chatActions...)
		}
		actions = append(actions, g.dayActions...)
	} else {
		actions = append(actions, g.help)
		actions = append(actions, p.Role().NightActions(g)...)
	}
	return actions
}

// --- SessionView ---

// AlivePlayers returns every living player, sorted by name.
func (g *GameStage) AlivePlayers() []*Player {
	var alive []*Player
	for _, p := range g.players {
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	return alive
}

// Players returns everyone in the session, dead or alive.
func (g *GameStage) Players() []*Player {
	return g.players
}

// PlayersByFaction returns the living members of a faction.
func (g *GameStage) PlayersByFaction(f Faction) []*Player {
	var players []*Player
	for _, p := range g.AlivePlayers() {
		if p.Role().Faction() == f {
			players = append(players, p)
		}
	}
	return players
}

// PlayersByRole returns the living players of a role type.
func (g *GameStage) PlayersByRole(t RoleType) []*Player {
	var players []*Player
	for _, p := range g.AlivePlayers() {
		if p.Role().Type() == t {
			players = append(players, p)
		}
	}
	return players
}

// FindAlive resolves a living player by name.
func (g *GameStage) FindAlive(name string) (*Player, error) {
	p := g.playerOrNil(name)
	if p == nil {
		return nil, Rulef("No such player: %s", name)
	}
	if !p.Alive() {
		return nil, Rulef("%s is dead.", p)
	}
	return p, nil
}

// Setting returns a frozen config setting.
func (g *GameStage) Setting(name string) string {
	return g.cfg.Setting(name)
}

// IsNight reports whether it is currently night.
func (g *GameStage) IsNight() bool {
	return !g.daytime
}

// Send broadcasts to the whole session audience.
func (g *GameStage) Send(text string) {
	g.session.bot.SendMessage(text)
}

// SendTo messages one participant privately.
func (g *GameStage) SendTo(p *Player, text string) {
	g.session.bot.SendPrivate(p.Name, text)
}

// playerOrNil finds a player by name, alive or dead.
func (g *GameStage) playerOrNil(name string) *Player {
	for _, p := range g.players {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// --- phase transitions ---

// moveToNight mutes the village, clears the chat rooms and fires the
// night-begins hooks. It closes the night immediately if no living role
// contributes night actions.
func (g *GameStage) moveToNight() {
	g.daytime = false

	g.session.bot.MuteAll()
	g.chat.ClearAll()
	g.session.bot.SendMessage("Night falls on the village.")

	for _, p := range g.AlivePlayers() {
		p.Role().OnNightBegins(g)
	}

	g.checkForEndOfNight()
}

func (g *GameStage) unmutePlayers() {
	if g.cfg.Setting(SettingSilentGame) == "ENABLED" {
		return
	}
	for _, p := range g.AlivePlayers() {
		g.session.bot.Unmute(p.Name)
	}
}

// applyDeath is the single alive-flag mutation path shared by night
// resolution and the admin modkill. Stale votes involving the dead are
// purged so the ledger never holds a dead voter or target.
func (g *GameStage) applyDeath(p *Player) {
	p.SetAlive(false)
	g.votes.PurgeDead()
}

// checkForWinner evaluates the win condition and, on the first
// successful match, concludes the game: results are recorded exactly
// once and the session transitions to the Concluded stage. Safe to call
// repeatedly.
func (g *GameStage) checkForWinner() bool {
	if g.concluded {
		return true
	}
	winner, ok := EvaluateWinner(g.AlivePlayers())
	if !ok {
		return false
	}
	g.concluded = true

	bot := g.session.bot
	bot.SendMessage(fmt.Sprintf("The %s have won the game!", winner.Plural()))
	g.printGameSummary()
	bot.UnmuteAll()

	results := g.results(winner)
	bot.RecordGameResults(results)
	g.session.setStage(NewConcludedStage(g.session, results))
	return true
}

// abort force-concludes the game with no winner. Safe in any phase.
func (g *GameStage) abort() {
	g.concluded = true
	bot := g.session.bot
	bot.SendMessage("The game has been aborted.")
	bot.UnmuteAll()
	g.session.setStage(NewConcludedStage(g.session, nil))
}

func (g *GameStage) printGameSummary() {
	bot := g.session.bot
	bot.SendMessage("The roles were:")
	for _, p := range g.players {
		fate := "survived"
		if !p.Alive() {
			fate = "died"
		}
		bot.SendMessage(fmt.Sprintf("  %s - %s (%s)", p, p.Role().Type(), fate))
	}
	for _, night := range g.killHistory {
		for _, death := range night.Deaths {
			bot.SendMessage(fmt.Sprintf("Night %d: %s killed by %s", night.Night, death.Victim, strings.Join(death.Killers, ", ")))
		}
	}
}

func (g *GameStage) results(winner Faction) *GameResults {
	results := &GameResults{
		SessionID: g.id,
		Winner:    winner.Plural(),
		StartedAt: g.startedAt,
		EndedAt:   g.session.clock.Now(),
		Nights:    append([]NightRecord(nil), g.killHistory...),
	}
	for _, p := range g.players {
		results.Players = append(results.Players, PlayerResult{
			Name:     p.Name,
			Role:     p.Role().Type().String(),
			Faction:  p.Role().Faction().Plural(),
			Survived: p.Alive(),
		})
	}
	return results
}
