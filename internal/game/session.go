package game

import (
	"errors"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Stage is the active phase object. Exactly one stage is live per
// session; the session routes every inbound command and chat line to
// it.
type Stage interface {
	Name() string
	// Handle dispatches one inbound command from a sender. Errors are
	// relayed privately to the sender by the session; they never
	// terminate the session.
	Handle(sender string, admin bool, command string, args []string) error
	// HandleChat routes a non-command chat line. private marks lines
	// whispered to the moderator rather than said in the channel.
	HandleChat(sender string, message string, private bool) error
	// Players returns the stage's full roster, dead players included.
	Players() []*Player
}

// RosterEntry is a read-only roster snapshot row for presence UIs.
type RosterEntry struct {
	Name  string
	Alive bool
	Admin bool
}

// Session owns the current stage and serializes all state-mutating
// operations behind one mutex, so night-close checks and kill-map
// construction can never interleave with a concurrent vote or target
// submission. Independent sessions are fully isolated.
type Session struct {
	mu       sync.Mutex
	id       string
	bot      Bot
	logger   *log.Logger
	clock    quartz.Clock
	rng      *rand.Rand
	registry *ConfigRegistry
	stage    Stage
}

// NewSession creates a session in the Setup stage.
func NewSession(id string, bot Bot, registry *ConfigRegistry, logger *log.Logger, rng *rand.Rand, clock quartz.Clock) *Session {
	s := &Session{
		id:       id,
		bot:      bot,
		logger:   logger.WithPrefix("game"),
		clock:    clock,
		rng:      rng,
		registry: registry,
	}
	s.stage = NewSetupStage(s)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// HandleCommand parses and dispatches one raw chat line. Non-command
// lines (no prefix, or the doubled-prefix escape) are ignored. Rule
// violations are relayed privately to the sender; anything else is
// logged and reported as a generic problem.
func (s *Session) HandleCommand(sender string, admin bool, line string) {
	cmd, args, ok := ParseCommand(line)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.stage.Handle(sender, admin, cmd, args)
	if err == nil {
		return
	}
	var rule *RuleError
	if errors.As(err, &rule) {
		s.bot.SendPrivate(sender, "Problem: "+rule.Message)
		return
	}
	s.logger.Error("command failed", "sender", sender, "command", cmd, "error", err)
	s.bot.SendPrivate(sender, "Problem: something went wrong handling that command.")
}

// HandleChat routes a non-command chat line to the active stage.
func (s *Session) HandleChat(sender string, message string, private bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stage.HandleChat(sender, message, private); err != nil {
		var rule *RuleError
		if errors.As(err, &rule) {
			s.bot.SendPrivate(sender, "Problem: "+rule.Message)
			return
		}
		s.logger.Error("chat failed", "sender", sender, "error", err)
	}
}

// StageName reports the active stage for presence UIs.
func (s *Session) StageName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage.Name()
}

// Roster snapshots the active stage's roster under the session lock,
// so concurrent readers always observe a consistent view.
func (s *Session) Roster() (stage string, roster []RosterEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.stage.Players() {
		roster = append(roster, RosterEntry{Name: p.Name, Alive: p.Alive(), Admin: p.Admin})
	}
	return s.stage.Name(), roster
}

// setStage hands control to the next stage. Callers already hold the
// session lock: stages only transition from within command handlers.
func (s *Session) setStage(st Stage) {
	s.logger.Info("stage transition", "session", s.id, "stage", st.Name())
	s.stage = st
}
