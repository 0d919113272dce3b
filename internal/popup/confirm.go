package popup

import "strings"

// Decision is the result of a confirmation prompt. Cancelled is a normal
// outcome, not an error.
type Decision int

const (
	Cancelled Decision = iota
	Confirmed
)

func (d Decision) String() string {
	if d == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

type Confirmer interface {
	Confirm(prompt string) Decision
}

type ConfirmFunc func(prompt string) Decision

func (f ConfirmFunc) Confirm(prompt string) Decision { return f(prompt) }

// Confirm asks c, treating a missing confirmer as a refusal.
func Confirm(c Confirmer, prompt string) Decision {
	if c == nil {
		return Cancelled
	}
	return c.Confirm(prompt)
}

// JoinPayload builds a delimited return value from several selections.
func JoinPayload(values []string, sep string) string {
	return strings.Join(values, sep)
}

func SplitPayload(payload, sep string) []string {
	if payload == "" {
		return nil
	}
	return strings.Split(payload, sep)
}
