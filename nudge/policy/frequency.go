package policy

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Immediately disables throttling: every qualifying check presents an alert.
	Immediately Frequency = 0
	Daily       Frequency = 1
	Weekly      Frequency = 7
)

// Frequency is the minimum number of whole days between two presentations of an alert.
type Frequency int

// ParseFrequency accepts "immediately", "daily", "weekly", "<N>" or "<N>d".
func ParseFrequency(userStr string) (Frequency, error) {
	s := strings.ToLower(strings.TrimSpace(userStr))
	switch s {
	case "", "immediately", "always":
		return Immediately, nil
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	}

	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || days < 0 {
		return Immediately, fmt.Errorf("invalid frequency %q: expected immediately, daily, weekly, or a number of days", userStr)
	}
	return Frequency(days), nil
}

func (f Frequency) Days() int {
	return int(f)
}

func (f Frequency) IsImmediate() bool {
	return f <= Immediately
}

func (f Frequency) String() string {
	switch f {
	case Immediately:
		return "immediately"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	default:
		return fmt.Sprintf("%dd", int(f))
	}
}

func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
