package util

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDeadline parses a deadline with calendar-date semantics. A bare
// ISO date or a full RFC3339 timestamp are accepted; anything else is
// rejected rather than guessed at.
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid deadline: %q", s)
}
