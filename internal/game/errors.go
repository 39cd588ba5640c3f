package game

import (
	"errors"
	"fmt"
)

// RuleError is the single recoverable error kind for everything a player
// can get wrong: unknown commands, bad argument counts, missing
// permissions, dead invokers, invalid targets. It is relayed privately to
// the invoker and never terminates the session.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Rulef creates a RuleError with a formatted user-facing message.
func Rulef(format string, args ...any) error {
	return &RuleError{Message: fmt.Sprintf(format, args...)}
}

// IsRuleError reports whether err is a game rule violation.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
