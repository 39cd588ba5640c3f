package gameid

import (
	"strings"
	"testing"
)

type fixedSource struct{ v int }

func (s fixedSource) Intn(n int) int { return s.v % n }

func TestNewProducesValidIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		if err := Validate(id); err != nil {
			t.Fatalf("Validate(%q): %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewWithRandSource(t *testing.T) {
	id := NewWithRandSource(fixedSource{v: 7})
	if err := Validate(id); err != nil {
		t.Fatalf("Validate(%q): %v", id, err)
	}
	if len(id) != 26 {
		t.Errorf("len = %d, want 26", len(id))
	}
}

func TestIDsSortByTime(t *testing.T) {
	a := New()
	b := New()
	// UUIDv7 leads with the millisecond timestamp, so ids created later
	// never sort before earlier ones.
	if strings.Compare(a, b) > 0 {
		t.Errorf("ids not time-ordered: %q > %q", a, b)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{strings.Repeat("0", 26), false},
		{strings.Repeat("0", 25), true},
		{strings.Repeat("0", 27), true},
		{"z" + strings.Repeat("0", 25), true},  // first char out of range
		{strings.Repeat("0", 25) + "u", true},  // u not in the alphabet
		{strings.Repeat("0", 25) + "O", true},  // uppercase rejected
	}
	for _, tt := range tests {
		err := Validate(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
