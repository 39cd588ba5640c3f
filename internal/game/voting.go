package game

// VotingLedger holds the current day-phase accusations: at most one per
// voter, overwritten on re-vote, removed on withdrawal. Iteration is
// stable by first-vote insertion order.
type VotingLedger struct {
	order []*Player
	votes map[*Player]*Player
}

// NewVotingLedger returns an empty ledger.
func NewVotingLedger() *VotingLedger {
	return &VotingLedger{votes: make(map[*Player]*Player)}
}

// Record stores or overwrites the voter's accusation.
func (l *VotingLedger) Record(voter, accused *Player) {
	if _, ok := l.votes[voter]; !ok {
		l.order = append(l.order, voter)
	}
	l.votes[voter] = accused
}

// Withdraw removes the voter's accusation, reporting whether one
// existed.
func (l *VotingLedger) Withdraw(voter *Player) bool {
	if _, ok := l.votes[voter]; !ok {
		return false
	}
	delete(l.votes, voter)
	for i, p := range l.order {
		if p == voter {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Vote returns the voter's current accusation, or nil.
func (l *VotingLedger) Vote(voter *Player) *Player {
	return l.votes[voter]
}

// TallyEntry is one accused player with their voters in insertion
// order.
type TallyEntry struct {
	Accused *Player
	Voters  []*Player
}

// Tally groups the ledger by accused player. Accused players appear in
// the order they first drew a vote; each voter list is stable by
// insertion.
func (l *VotingLedger) Tally() []TallyEntry {
	var entries []TallyEntry
	index := make(map[*Player]int)
	for _, voter := range l.order {
		accused := l.votes[voter]
		i, ok := index[accused]
		if !ok {
			i = len(entries)
			index[accused] = i
			entries = append(entries, TallyEntry{Accused: accused})
		}
		entries[i].Voters = append(entries[i].Voters, voter)
	}
	return entries
}

// Voters returns everyone currently accusing the given player.
func (l *VotingLedger) Voters(accused *Player) []*Player {
	var voters []*Player
	for _, voter := range l.order {
		if l.votes[voter] == accused {
			voters = append(voters, voter)
		}
	}
	return voters
}

// PurgeDead drops ledger entries involving players that have since
// died, as voter or as target.
func (l *VotingLedger) PurgeDead() {
	kept := l.order[:0]
	for _, voter := range l.order {
		accused := l.votes[voter]
		if voter.Alive() && accused.Alive() {
			kept = append(kept, voter)
			continue
		}
		delete(l.votes, voter)
	}
	l.order = kept
}
