package game

import (
	"fmt"
	"strings"
)

// Action is a player-issued command. The dispatch path checks the admin
// flag, the liveness requirement and the argument arity before apply
// runs; apply may mutate session state and send messages through the
// transport boundary.
type Action struct {
	Name        string
	Args        []string // argument names, for usage strings
	Description string
	Admin       bool // requires the invoker's admin flag
	DeadOK      bool // most actions require a living invoker
	Variadic    bool // len(Args) is a minimum, not an exact count

	apply func(invoker *Player, args []string) error
}

// Matches reports whether cmd names this action, case-insensitively.
func (a *Action) Matches(cmd string) bool {
	return strings.EqualFold(a.Name, cmd)
}

// Usage renders the "!name <arg> <arg>" form shown in help and errors.
func (a *Action) Usage() string {
	parts := []string{"!" + a.Name}
	for _, arg := range a.Args {
		parts = append(parts, "<"+arg+">")
	}
	return strings.Join(parts, " ")
}

// Invoke validates the invoker and arguments, then executes the action.
// All failures come back as rule violations for the invoker.
func (a *Action) Invoke(invoker *Player, args []string) error {
	if invoker == nil {
		return fmt.Errorf("action %q invoked with nil invoker", a.Name)
	}
	if a.Admin && !invoker.Admin {
		return Rulef("You must be an admin to do that.")
	}
	if !a.DeadOK && !invoker.Alive() {
		return Rulef("The dead cannot do that.")
	}
	if a.Variadic {
		if len(args) < len(a.Args) {
			return Rulef("Usage: %s", a.Usage())
		}
	} else if len(args) != len(a.Args) {
		return Rulef("Usage: %s", a.Usage())
	}
	return a.apply(invoker, args)
}

// ParseCommand splits a raw chat line into a command name and arguments.
// Lines that don't start with the command prefix are not commands; a
// doubled prefix ("!!") escapes a literal line and is not a command
// either.
func ParseCommand(line string) (cmd string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, false
	}
	first := fields[0]
	if !strings.HasPrefix(first, "!") || strings.HasPrefix(first, "!!") {
		return "", nil, false
	}
	return strings.TrimPrefix(first, "!"), fields[1:], true
}

// dispatch finds the first matching action among those available to the
// invoker and invokes it. An unrecognized command enumerates the
// available command names in their stable iteration order.
func dispatch(actions []*Action, invoker *Player, cmd string, args []string) error {
	for _, a := range actions {
		if a.Matches(cmd) {
			return a.Invoke(invoker, args)
		}
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = "!" + a.Name
	}
	return Rulef("Unrecognized command: !%s. Possible commands are: %s", cmd, strings.Join(names, ", "))
}

// helpAction lists the actions currently available to the invoker.
func helpAction(available func(p *Player) []*Action, send func(p *Player, text string)) *Action {
	return &Action{
		Name:        "help",
		Description: "Lists the commands available to you.",
		DeadOK:      true,
		apply: func(invoker *Player, _ []string) error {
			for _, a := range available(invoker) {
				send(invoker, fmt.Sprintf("%s - %s", a.Usage(), a.Description))
			}
			return nil
		},
	}
}
