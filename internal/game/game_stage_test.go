package game

import (
	"strings"
	"testing"
)

func standardRoster() []assignment {
	return []assignment{
		{name: "alice", role: Wolf},
		{name: "bob", role: Villager},
		{name: "carol", role: Villager},
		{name: "dave", role: Villager, admin: true},
	}
}

func TestVoteFlow(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!vote bob")
	if !bot.SaidToAll("alice votes to lynch bob.") {
		t.Errorf("missing vote broadcast, log: %v", bot.Log)
	}

	s.HandleCommand("carol", false, "!vote BOB")
	bot.Reset()
	s.HandleCommand("bob", false, "!votecount")
	if !bot.SaidToAll("bob (2): alice, carol") {
		t.Errorf("votecount wrong, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!vote nobody")
	if !bot.SaidTo("alice", "Problem: No such player: nobody") {
		t.Errorf("missing unknown-target problem, log: %v", bot.Log)
	}
}

func TestClearvoteFollowsSetting(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!clearvote")
	if !bot.SaidTo("alice", "Problem: You have no vote to withdraw.") {
		t.Errorf("missing no-vote problem, log: %v", bot.Log)
	}
	s.HandleCommand("alice", false, "!vote bob")
	s.HandleCommand("alice", false, "!clearvote")
	if !bot.SaidToAll("alice withdraws their vote.") {
		t.Errorf("missing withdraw broadcast, log: %v", bot.Log)
	}

	// With withdrawal disabled the command does not exist at all.
	s2, bot2 := newTestSession(t)
	startGame(t, s2, bot2, standardRoster(), map[string]string{SettingWithdrawVotes: "NO"})
	s2.HandleCommand("alice", false, "!vote bob")
	s2.HandleCommand("alice", false, "!clearvote")
	if !bot2.SaidTo("alice", "Unrecognized command: !clearvote") {
		t.Errorf("clearvote should be unrecognized, log: %v", bot2.Log)
	}
}

func TestDeadPlayersCannotVote(t *testing.T) {
	s, bot := newTestSession(t)
	g := startGame(t, s, bot, standardRoster(), nil)

	g.applyDeath(g.playerOrNil("bob"))
	s.HandleCommand("bob", false, "!vote alice")
	if !bot.SaidTo("bob", "Problem: The dead cannot do that.") {
		t.Errorf("missing dead gate, log: %v", bot.Log)
	}

	// The dead can still look at the tally.
	s.HandleCommand("bob", false, "!votecount")
	if !bot.SaidToAll("No votes have been cast.") {
		t.Errorf("dead votecount failed, log: %v", bot.Log)
	}
}

func TestOutsiderCannotAct(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("mallory", false, "!vote bob")
	if !bot.SaidTo("mallory", "Problem: You are not in this game.") {
		t.Errorf("missing outsider gate, log: %v", bot.Log)
	}
}

func TestModkillPurgesVotesAndChecksWinner(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!vote bob")
	s.HandleCommand("bob", false, "!vote carol")
	bot.Reset()

	s.HandleCommand("dave", true, "!modkill bob")
	if !bot.SaidToAll("bob has been modkilled.") {
		t.Errorf("missing modkill broadcast, log: %v", bot.Log)
	}
	if bot.Roster == 0 {
		t.Error("modkill should push a roster update")
	}

	bot.Reset()
	s.HandleCommand("carol", false, "!votecount")
	if !bot.SaidToAll("No votes have been cast.") {
		t.Errorf("votes involving the dead should be purged, log: %v", bot.Log)
	}
	wantStage(t, s, "day")
}

func TestModkillCanEndTheGame(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, []assignment{
		{name: "alice", role: Wolf},
		{name: "bob", role: Villager},
		{name: "carol", role: Villager},
		{name: "dave", role: Villager, admin: true},
	}, nil)

	s.HandleCommand("dave", true, "!modkill bob")
	s.HandleCommand("dave", true, "!modkill carol")
	if !bot.SaidToAll("The Wolves have won the game!") {
		t.Errorf("missing win broadcast, log: %v", bot.Log)
	}
	wantStage(t, s, "concluded")

	if len(bot.Results) != 1 {
		t.Fatalf("results recorded %d times, want 1", len(bot.Results))
	}
	results := bot.Results[0]
	if results.Winner != "Wolves" {
		t.Errorf("winner = %q, want Wolves", results.Winner)
	}
	if results.SessionID != s.ID() {
		t.Errorf("session id = %q, want %q", results.SessionID, s.ID())
	}
	if len(results.Players) != 4 {
		t.Errorf("player results = %d, want 4", len(results.Players))
	}
	for _, pr := range results.Players {
		if pr.Name == "alice" && (!pr.Survived || pr.Role != "Wolf") {
			t.Errorf("alice result = %+v", pr)
		}
		if pr.Name == "bob" && pr.Survived {
			t.Errorf("bob should be recorded dead: %+v", pr)
		}
	}
}

func TestNonAdminCannotModkill(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!modkill bob")
	if !bot.SaidTo("alice", "Unrecognized command: !modkill") {
		t.Errorf("modkill should be invisible to players, log: %v", bot.Log)
	}
}

func TestHostActions(t *testing.T) {
	s, bot := newTestSession(t)
	g := startGame(t, s, bot, standardRoster(), nil)
	g.cfg.SetHost(g.playerOrNil("bob"))

	s.HandleCommand("bob", false, "!announce the moon is full tonight")
	if !bot.SaidToAll("ANNOUNCEMENT - the moon is full tonight") {
		t.Errorf("missing announcement, log: %v", bot.Log)
	}

	// Host actions stay hidden from everyone else.
	s.HandleCommand("carol", false, "!announce fake news")
	if !bot.SaidTo("carol", "Unrecognized command: !announce") {
		t.Errorf("announce should be host-only, log: %v", bot.Log)
	}

	s.HandleCommand("bob", false, "!remind")
	if !bot.SaidTo("bob", "Problem: There is nothing to remind during the day.") {
		t.Errorf("remind should be night-only, log: %v", bot.Log)
	}

	bot.Reset()
	s.HandleCommand("bob", false, "!nightfall")
	if !bot.SaidToAll("Night falls on the village.") {
		t.Errorf("missing nightfall, log: %v", bot.Log)
	}
	if !bot.MutedAll {
		t.Error("nightfall should mute the channel")
	}

	s.HandleCommand("bob", false, "!nightfall")
	if !bot.SaidTo("bob", "Problem: It is already night.") {
		t.Errorf("missing double-nightfall guard, log: %v", bot.Log)
	}

	s.HandleCommand("bob", false, "!remind")
	if !bot.SaidTo("alice", "The night waits on you. Choose your action.") {
		t.Errorf("wolf should be nudged, log: %v", bot.Log)
	}
	if bot.SaidTo("carol", "The night waits on you.") {
		t.Errorf("finished villager should not be nudged, log: %v", bot.Log)
	}
}

func TestAbort(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("dave", true, "!abort")
	if !bot.SaidToAll("The game has been aborted.") {
		t.Errorf("missing abort broadcast, log: %v", bot.Log)
	}
	wantStage(t, s, "concluded")
	if len(bot.Results) != 0 {
		t.Error("aborted games should not record results")
	}

	s.HandleCommand("dave", true, "!outcome")
	if !bot.SaidToAll("The last game was aborted with no winner.") {
		t.Errorf("missing aborted outcome, log: %v", bot.Log)
	}
}

func TestAbortAtNight(t *testing.T) {
	s, bot := newTestSession(t)
	g := startGame(t, s, bot, []assignment{
		{name: "alice", role: Wolf},
		{name: "bob", role: Seer},
		{name: "carol", role: Villager},
		{name: "dave", role: Villager, admin: true},
	}, nil)
	nightfall(t, g, bot)

	// The wolf has nominated; the seer has not, so the night is open.
	s.HandleCommand("alice", false, "!kill carol")
	s.HandleCommand("dave", true, "!abort")

	if !bot.SaidToAll("The game has been aborted.") {
		t.Errorf("missing abort broadcast, log: %v", bot.Log)
	}
	wantStage(t, s, "concluded")
	if bot.SaidToAll("The sun dawns upon the village.") {
		t.Errorf("the night must not resolve after an abort, log: %v", bot.Log)
	}
	if !g.playerOrNil("carol").Alive() {
		t.Error("no nominated kill should land after an abort")
	}
	if len(bot.Results) != 0 {
		t.Error("aborted games should not record results")
	}
	if bot.MutedAll {
		t.Error("channel should be unmuted after an abort")
	}
}

func TestConcludedNewGame(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, []assignment{
		{name: "alice", role: Wolf},
		{name: "bob", role: Villager},
		{name: "dave", role: Villager, admin: true},
	}, nil)

	s.HandleCommand("dave", true, "!modkill bob")
	wantStage(t, s, "concluded")

	s.HandleCommand("dave", true, "!outcome")
	if !bot.SaidToAll("The Wolves won the last game.") {
		t.Errorf("missing outcome, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!newgame")
	if !bot.SaidTo("alice", "Problem: You must be an admin to do that.") {
		t.Errorf("newgame should be admin-gated, log: %v", bot.Log)
	}

	s.HandleCommand("dave", true, "!newgame")
	wantStage(t, s, "setup")
	if !bot.SaidToAll("A new game is forming. Use !join to play.") {
		t.Errorf("missing new-lobby broadcast, log: %v", bot.Log)
	}
}

func TestPrivateChatRoomsFollowSetting(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!newroom den")
	s.HandleCommand("alice", false, "!authorize bob den")
	if !bot.SaidTo("bob", "alice has invited you to room den. Use !joinroom den") {
		t.Errorf("missing invite, log: %v", bot.Log)
	}
	s.HandleCommand("bob", false, "!joinroom den")

	bot.Reset()
	s.HandleCommand("alice", false, "!chat den meet me at the well")
	if !bot.SaidTo("bob", "[den] alice: meet me at the well") {
		t.Errorf("missing room delivery, log: %v", bot.Log)
	}
	if bot.SaidTo("carol", "[den]") {
		t.Errorf("non-member received room chat, log: %v", bot.Log)
	}

	// Rooms vanish at nightfall.
	g := s.stage.(*GameStage)
	g.cfg.SetHost(g.playerOrNil("carol"))
	s.HandleCommand("carol", false, "!nightfall")
	bot.Reset()
	s.HandleCommand("alice", false, "!chat den anyone")
	if !bot.SaidTo("alice", "Unrecognized command: !chat") {
		t.Errorf("chat actions should be gone at night, log: %v", bot.Log)
	}

	// Disabled entirely by setting.
	s2, bot2 := newTestSession(t)
	startGame(t, s2, bot2, standardRoster(), map[string]string{SettingPrivateChat: "DISABLED"})
	s2.HandleCommand("alice", false, "!newroom den")
	if !bot2.SaidTo("alice", "Unrecognized command: !newroom") {
		t.Errorf("rooms should be disabled, log: %v", bot2.Log)
	}
}

func TestRoleAndStatusActions(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), nil)

	s.HandleCommand("alice", false, "!role")
	if !bot.SaidTo("alice", "You are the Wolf.") {
		t.Errorf("missing role reminder, log: %v", bot.Log)
	}
	if !bot.SaidTo("alice", "At night: !kill <target>") {
		t.Errorf("missing night usage, log: %v", bot.Log)
	}

	bot.Reset()
	s.HandleCommand("bob", false, "!status")
	found := false
	for _, line := range bot.Broadcasts() {
		if strings.HasPrefix(line, "Day 1. Roles in play:") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing status line, log: %v", bot.Log)
	}

	bot.Reset()
	s.HandleCommand("carol", false, "!players")
	if !bot.SaidToAll("Alive (4): alice, bob, carol, dave") {
		t.Errorf("players listing wrong, log: %v", bot.Log)
	}
}

func TestSilentGameKeepsPlayersMuted(t *testing.T) {
	s, bot := newTestSession(t)
	startGame(t, s, bot, standardRoster(), map[string]string{SettingSilentGame: "ENABLED"})
	if len(bot.Muted) != 0 {
		t.Errorf("silent game should never unmute individuals, muted: %v", bot.Muted)
	}

	s2, bot2 := newTestSession(t)
	startGame(t, s2, bot2, standardRoster(), nil)
	if _, ok := bot2.Muted["alice"]; !ok {
		t.Errorf("normal game should unmute the living, muted: %v", bot2.Muted)
	}
}
