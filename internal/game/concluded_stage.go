package game

import "fmt"

// ConcludedStage is the terminal stage. It reports the outcome and lets
// a host or admin open a fresh lobby; nothing from the finished game
// can be replayed or re-entered.
type ConcludedStage struct {
	session *Session
	results *GameResults // nil when the game was aborted

	actions []*Action
}

// NewConcludedStage wraps up a finished (or aborted) game.
func NewConcludedStage(s *Session, results *GameResults) *ConcludedStage {
	st := &ConcludedStage{session: s, results: results}
	st.actions = []*Action{
		helpAction(func(*Player) []*Action { return st.actions }, func(p *Player, text string) {
			s.bot.SendPrivate(p.Name, text)
		}),
		st.outcomeAction(),
		st.newgameAction(),
	}
	return st
}

// Name implements Stage.
func (st *ConcludedStage) Name() string {
	return "concluded"
}

// Results returns the recorded outcome, or nil for an aborted game.
func (st *ConcludedStage) Results() *GameResults {
	return st.results
}

// Players implements Stage. The finished game's roster is gone; only
// the recorded results remain.
func (st *ConcludedStage) Players() []*Player {
	return nil
}

// Handle implements Stage.
func (st *ConcludedStage) Handle(sender string, admin bool, command string, args []string) error {
	return dispatch(st.actions, NewPlayer(sender, admin), command, args)
}

// HandleChat implements Stage. Post-game chat is unmoderated.
func (st *ConcludedStage) HandleChat(sender string, message string, private bool) error {
	return nil
}

func (st *ConcludedStage) outcomeAction() *Action {
	return &Action{
		Name:        "outcome",
		Description: "Shows how the last game ended.",
		DeadOK:      true,
		apply: func(*Player, []string) error {
			if st.results == nil {
				st.session.bot.SendMessage("The last game was aborted with no winner.")
				return nil
			}
			st.session.bot.SendMessage(fmt.Sprintf("The %s won the last game.", st.results.Winner))
			return nil
		},
	}
}

func (st *ConcludedStage) newgameAction() *Action {
	return &Action{
		Name:        "newgame",
		Description: "Opens a fresh lobby.",
		Admin:       true,
		DeadOK:      true,
		apply: func(*Player, []string) error {
			st.session.setStage(NewSetupStage(st.session))
			st.session.bot.SendMessage("A new game is forming. Use !join to play.")
			return nil
		},
	}
}
