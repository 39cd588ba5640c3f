package game

// EvaluateWinner inspects the alive roster and declares a winning
// faction, or reports that the game continues. It is a pure function of
// the roster's faction counts and the presence of a living Hunter, so
// it is cheap and safe to call after every state change.
//
// Policy, first match wins:
//  1. Every living player is a Villager -> Villagers win.
//  2. No Demons remain: if Wolves >= Villagers the Wolves win, unless a
//     Hunter still lives, in which case the Villagers win instead.
//  3. Demons remain: they win once they hold at least half the living
//     players (ceil(alive/2)).
func EvaluateWinner(alive []*Player) (Faction, bool) {
	counts := make(map[Faction]int)
	hunterAlive := false
	for _, p := range alive {
		counts[p.Role().Faction()]++
		if p.Role().Type() == Hunter {
			hunterAlive = true
		}
	}

	n := len(alive)
	switch {
	case counts[Villagers] == n:
		return Villagers, true
	case counts[Demons] == 0:
		if counts[Wolves] >= counts[Villagers] {
			if hunterAlive {
				return Villagers, true
			}
			return Wolves, true
		}
	default:
		if counts[Demons] >= (n+1)/2 {
			return Demons, true
		}
	}
	return 0, false
}
