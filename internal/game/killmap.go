package game

// KillMap is the transient per-night mapping from victim to the set of
// players responsible for that death. It is built fresh each night,
// consumed once when the night closes, and its contents are appended to
// the session's kill history. Victims and killers iterate in name
// order.
type KillMap struct {
	victims []*Player
	killers map[*Player][]*Player
}

func newKillMap() *KillMap {
	return &KillMap{killers: make(map[*Player][]*Player)}
}

// Add records killer as responsible for victim's death. Duplicate
// killer entries for the same victim are dropped.
func (m *KillMap) Add(victim, killer *Player) {
	if _, ok := m.killers[victim]; !ok {
		m.victims = append(m.victims, victim)
		sortPlayers(m.victims)
	}
	for _, k := range m.killers[victim] {
		if k == killer {
			return
		}
	}
	m.killers[victim] = append(m.killers[victim], killer)
	sortPlayers(m.killers[victim])
}

// Empty reports whether no one died tonight.
func (m *KillMap) Empty() bool {
	return len(m.victims) == 0
}

// Victims returns tonight's victims in name order.
func (m *KillMap) Victims() []*Player {
	return m.victims
}

// Killers returns the players responsible for the victim's death, in
// name order.
func (m *KillMap) Killers(victim *Player) []*Player {
	return m.killers[victim]
}

// record converts the kill map into its immutable history form.
func (m *KillMap) record(night int) NightRecord {
	rec := NightRecord{Night: night}
	for _, victim := range m.victims {
		d := DeathRecord{Victim: victim.Name}
		for _, k := range m.killers[victim] {
			d.Killers = append(d.Killers, k.Name)
		}
		rec.Deaths = append(rec.Deaths, d)
	}
	return rec
}
