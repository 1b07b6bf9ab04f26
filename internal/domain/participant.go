package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Participant is a connection that successfully claimed a unique display name.
type Participant struct {
	ConnectionID string
	Name         string
	JoinedAt     time.Time
}

func NewParticipant(connectionID string, name string) *Participant {
	return &Participant{
		ConnectionID: connectionID,
		Name:         name,
		JoinedAt:     time.Now().UTC(),
	}
}

// NormalizeName trims surrounding whitespace and upper-cases the first rune.
// The normalized form is the uniqueness key for the roster. An empty result
// means the raw name was unusable.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
