package game

import (
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
		wantOK   bool
	}{
		{"!join", "join", nil, true},
		{"!vote bob", "vote", []string{"bob"}, true},
		{"  !vote   bob  ", "vote", []string{"bob"}, true},
		{"!announce hello there", "announce", []string{"hello", "there"}, true},
		{"hello village", "", nil, false},
		{"!!literally a bang", "", nil, false},
		{"", "", nil, false},
		{"   ", "", nil, false},
	}
	for _, tt := range tests {
		cmd, args, ok := ParseCommand(tt.line)
		if ok != tt.wantOK {
			t.Errorf("ParseCommand(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if cmd != tt.wantCmd {
			t.Errorf("ParseCommand(%q) cmd = %q, want %q", tt.line, cmd, tt.wantCmd)
		}
		if len(args) != len(tt.wantArgs) {
			t.Errorf("ParseCommand(%q) args = %v, want %v", tt.line, args, tt.wantArgs)
			continue
		}
		for i := range args {
			if args[i] != tt.wantArgs[i] {
				t.Errorf("ParseCommand(%q) args = %v, want %v", tt.line, args, tt.wantArgs)
				break
			}
		}
	}
}

func TestActionInvokeGates(t *testing.T) {
	called := false
	action := &Action{
		Name: "probe",
		Args: []string{"target"},
		apply: func(*Player, []string) error {
			called = true
			return nil
		},
	}

	alive := NewPlayer("alice", false)
	if err := action.Invoke(alive, []string{"bob"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !called {
		t.Error("apply was not called")
	}

	err := action.Invoke(alive, nil)
	if !IsRuleError(err) || !strings.Contains(err.Error(), "Usage: !probe <target>") {
		t.Errorf("arity error = %v, want usage rule violation", err)
	}

	dead := NewPlayer("bob", false)
	dead.SetAlive(false)
	err = action.Invoke(dead, []string{"x"})
	if !IsRuleError(err) || !strings.Contains(err.Error(), "The dead cannot do that.") {
		t.Errorf("dead invoker error = %v", err)
	}

	adminOnly := &Action{Name: "smite", Admin: true, apply: func(*Player, []string) error { return nil }}
	err = adminOnly.Invoke(alive, nil)
	if !IsRuleError(err) || !strings.Contains(err.Error(), "You must be an admin") {
		t.Errorf("admin gate error = %v", err)
	}
	admin := NewPlayer("mod", true)
	if err := adminOnly.Invoke(admin, nil); err != nil {
		t.Errorf("admin invoke: %v", err)
	}
}

func TestActionVariadicArity(t *testing.T) {
	action := &Action{
		Name:     "announce",
		Args:     []string{"message"},
		Variadic: true,
		apply:    func(*Player, []string) error { return nil },
	}
	p := NewPlayer("alice", false)

	if err := action.Invoke(p, []string{"hello", "there", "village"}); err != nil {
		t.Errorf("variadic with extra args: %v", err)
	}
	if err := action.Invoke(p, nil); !IsRuleError(err) {
		t.Errorf("variadic below minimum = %v, want rule violation", err)
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	actions := []*Action{
		{Name: "vote", apply: func(*Player, []string) error { return nil }},
		{Name: "players", apply: func(*Player, []string) error { return nil }},
	}
	err := dispatch(actions, NewPlayer("alice", false), "lynch", nil)
	if !IsRuleError(err) {
		t.Fatalf("dispatch = %v, want rule violation", err)
	}
	want := "Unrecognized command: !lynch. Possible commands are: !vote, !players"
	if err.Error() != want {
		t.Errorf("dispatch error = %q, want %q", err.Error(), want)
	}
}

func TestDispatchMatchesCaseInsensitively(t *testing.T) {
	called := false
	actions := []*Action{{Name: "vote", Args: []string{"target"}, apply: func(*Player, []string) error {
		called = true
		return nil
	}}}
	if err := dispatch(actions, NewPlayer("alice", false), "VOTE", []string{"bob"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !called {
		t.Error("action was not invoked")
	}
}
