package game

// Faction is a named alignment used for win-condition counting and
// private group chat.
type Faction int

const (
	Villagers Faction = iota
	Wolves
	Demons
)

func (f Faction) String() string {
	switch f {
	case Villagers:
		return "Villager"
	case Wolves:
		return "Wolf"
	case Demons:
		return "Demon"
	}
	return "Unknown"
}

// Plural returns the display plural form used in announcements.
func (f Faction) Plural() string {
	switch f {
	case Villagers:
		return "Villagers"
	case Wolves:
		return "Wolves"
	case Demons:
		return "Demons"
	}
	return "Unknown"
}
