package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/werewolfd/internal/randutil"
)

func newTestSession(t *testing.T) (*Session, *TestBot) {
	t.Helper()
	bot := NewTestBot()
	s := NewSession("0123456789abcdefghjkmnpqrs", bot, DefaultRegistry(), log.New(io.Discard), randutil.New(1), quartz.NewMock(t))
	return s, bot
}

// assignment fixes one player's role, bypassing the lobby shuffle so
// scenario tests are fully deterministic.
type assignment struct {
	name  string
	role  RoleType
	admin bool
}

// startGame drops the session straight into a running game with the
// given roster. The startup banter is cleared from the bot log.
func startGame(t *testing.T, s *Session, bot *TestBot, assignments []assignment, settings map[string]string) *GameStage {
	t.Helper()

	cfg := NewGameConfig()
	for name, value := range settings {
		if err := cfg.SetSetting(name, value); err != nil {
			t.Fatalf("SetSetting(%s, %s): %v", name, value, err)
		}
	}

	counts := make(map[RoleType]int)
	var players []*Player
	for _, a := range assignments {
		p := NewPlayer(a.name, a.admin)
		p.AssignRole(a.role.New())
		players = append(players, p)
		counts[a.role]++
	}
	for role, n := range counts {
		cfg.SetRole(role, n)
	}

	stage, err := NewGameStage(s, cfg, players)
	if err != nil {
		t.Fatalf("NewGameStage: %v", err)
	}
	s.setStage(stage)
	bot.Reset()
	return stage
}

// nightfall moves a running game into night and clears the log so tests
// see only what the night itself produces.
func nightfall(t *testing.T, g *GameStage, bot *TestBot) {
	t.Helper()
	if !g.daytime {
		t.Fatal("nightfall called at night")
	}
	g.moveToNight()
	bot.Reset()
}

func wantStage(t *testing.T, s *Session, name string) {
	t.Helper()
	if got := s.StageName(); got != name {
		t.Errorf("stage = %q, want %q", got, name)
	}
}
