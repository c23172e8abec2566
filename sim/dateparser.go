package sim

import (
	"fmt"
	"time"
)

// ParseStartTime parses a "HH:MM" string into minutes since midnight.
func ParseStartTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q, want HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
