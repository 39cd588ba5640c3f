package game

import "testing"

func TestSetupJoinAndLeave(t *testing.T) {
	s, bot := newTestSession(t)
	wantStage(t, s, "setup")

	s.HandleCommand("alice", false, "!join")
	if !bot.SaidToAll("alice joined the game.") {
		t.Errorf("missing join broadcast, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!join")
	if !bot.SaidTo("alice", "Problem: alice already joined!") {
		t.Errorf("missing duplicate-join problem, log: %v", bot.Log)
	}

	s.HandleCommand("bob", false, "!leave")
	if !bot.SaidTo("bob", "Problem: bob is not in the game!") {
		t.Errorf("missing not-joined problem, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!leave")
	if !bot.SaidToAll("alice left the game.") {
		t.Errorf("missing leave broadcast, log: %v", bot.Log)
	}
}

func TestSetupListsPlayersAndConfigs(t *testing.T) {
	s, bot := newTestSession(t)
	s.HandleCommand("bob", false, "!join")
	s.HandleCommand("alice", false, "!join")

	bot.Reset()
	s.HandleCommand("alice", false, "!players")
	if !bot.SaidToAll("2 Players: alice, bob") {
		t.Errorf("players listing wrong, log: %v", bot.Log)
	}

	bot.Reset()
	s.HandleCommand("alice", false, "!configs")
	if !bot.SaidToAll("default: Seer (1), Priest (1), Villager (5), Wolf (2)") {
		t.Errorf("configs listing wrong, log: %v", bot.Log)
	}
}

func TestSetupLoadAndSet(t *testing.T) {
	s, bot := newTestSession(t)
	s.HandleCommand("alice", false, "!join")

	s.HandleCommand("alice", false, "!load FIVES")
	if !bot.SaidToAll("fives loaded.") {
		t.Errorf("case-insensitive load failed, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!load nonsense")
	if !bot.SaidTo("alice", "Problem: nonsense is an invalid configuration.") {
		t.Errorf("missing invalid-config problem, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!set silent_game enabled")
	if !bot.SaidToAll("SILENT_GAME is now ENABLED.") {
		t.Errorf("set broadcast wrong, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!set silent_game sometimes")
	if !bot.SaidTo("alice", "Problem: SILENT_GAME must be one of: ENABLED, DISABLED") {
		t.Errorf("missing invalid-value problem, log: %v", bot.Log)
	}

	s.HandleCommand("alice", false, "!set volume 11")
	if !bot.SaidTo("alice", "Problem: VOLUME is not a setting.") {
		t.Errorf("missing unknown-setting problem, log: %v", bot.Log)
	}
}

func TestSetupStartGates(t *testing.T) {
	s, bot := newTestSession(t)
	s.HandleCommand("alice", false, "!join")
	s.HandleCommand("bob", false, "!join")

	// Only a host or admin may start.
	s.HandleCommand("alice", false, "!start")
	if !bot.SaidTo("alice", "Problem: Only the host or an admin can start the game.") {
		t.Errorf("missing host gate, log: %v", bot.Log)
	}

	// sethost itself is admin-gated.
	s.HandleCommand("alice", false, "!sethost alice")
	if !bot.SaidTo("alice", "Problem: You must be an admin to do that.") {
		t.Errorf("missing sethost admin gate, log: %v", bot.Log)
	}
	s.HandleCommand("mod", true, "!sethost alice")
	if !bot.SaidToAll("alice is now the host of the game.") {
		t.Errorf("sethost failed, log: %v", bot.Log)
	}

	// No configuration loaded yet.
	s.HandleCommand("alice", false, "!start")
	if !bot.SaidTo("alice", "Problem: Load a configuration first. Use !configs to see the presets.") {
		t.Errorf("missing config gate, log: %v", bot.Log)
	}

	// Not enough players for the preset.
	s.HandleCommand("alice", false, "!load fives")
	s.HandleCommand("alice", false, "!start")
	if !bot.SaidTo("alice", "Problem: The configuration needs 5 players but only 2 joined.") {
		t.Errorf("missing headcount gate, log: %v", bot.Log)
	}
	wantStage(t, s, "setup")
}

func TestSetupStartDealsRolesAndTransitions(t *testing.T) {
	s, bot := newTestSession(t)
	for _, name := range []string{"alice", "bob", "carol", "dave", "eve", "frank"} {
		s.HandleCommand(name, false, "!join")
	}
	s.HandleCommand("mod", true, "!sethost alice")
	s.HandleCommand("alice", false, "!load fives")

	bot.Reset()
	s.HandleCommand("alice", false, "!start")
	wantStage(t, s, "day")
	if !bot.SaidToAll("Day 1 dawns on the village.") {
		t.Errorf("missing day 1 banner, log: %v", bot.Log)
	}

	// Six players on a five-role preset: the extra player fills in as a
	// plain villager, so the full roster is dealt.
	g, ok := s.stage.(*GameStage)
	if !ok {
		t.Fatalf("stage is %T, want *GameStage", s.stage)
	}
	counts := make(map[RoleType]int)
	for _, p := range g.Players() {
		if p.Role() == nil {
			t.Fatalf("%s has no role", p)
		}
		counts[p.Role().Type()]++
	}
	want := map[RoleType]int{Seer: 1, Villager: 2, Wolf: 1, Minion: 1, Hunter: 1}
	for rt, n := range want {
		if counts[rt] != n {
			t.Errorf("%s count = %d, want %d", rt, counts[rt], n)
		}
	}

	// The wolf learned the pack.
	wolves := g.PlayersByRole(Wolf)
	if len(wolves) != 1 {
		t.Fatalf("wolves = %v", wolves)
	}
	if !bot.SaidTo(wolves[0].Name, "The wolves are: "+wolves[0].Name) {
		t.Errorf("wolf never learned the pack, log: %v", bot.Log)
	}
}

func TestSetupStartIsDeterministicPerSeed(t *testing.T) {
	deal := func() map[string]RoleType {
		s, _ := newTestSession(t)
		for _, name := range []string{"alice", "bob", "carol", "dave", "eve"} {
			s.HandleCommand(name, false, "!join")
		}
		s.HandleCommand("mod", true, "!sethost alice")
		s.HandleCommand("alice", false, "!load fives")
		s.HandleCommand("alice", false, "!start")

		g := s.stage.(*GameStage)
		out := make(map[string]RoleType)
		for _, p := range g.Players() {
			out[p.Name] = p.Role().Type()
		}
		return out
	}

	first := deal()
	second := deal()
	for name, rt := range first {
		if second[name] != rt {
			t.Fatalf("same seed dealt %s %v then %v", name, rt, second[name])
		}
	}
}
