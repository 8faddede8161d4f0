package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is the lookback used when no window is given.
const DefaultWindow = "1w"

const day = 24 * time.Hour

type windowUnit struct {
	label   string
	aliases []string
	size    time.Duration
}

// Largest first; FormatWindow relies on the order. A month is thirty days.
var windowUnits = []windowUnit{
	{"mo", []string{"mon", "month", "months"}, 30 * day},
	{"w", []string{"wk", "wks", "week", "weeks"}, 7 * day},
	{"d", []string{"day", "days"}, day},
	{"h", []string{"hr", "hrs", "hour", "hours"}, time.Hour},
	{"m", []string{"min", "mins", "minute", "minutes"}, time.Minute},
	{"s", []string{"sec", "secs", "second", "seconds"}, time.Second},
}

func unitSize(name string) (time.Duration, bool) {
	for _, u := range windowUnits {
		if u.label == name {
			return u.size, true
		}
		for _, a := range u.aliases {
			if a == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow reads a lookback such as "3d", "1w2d" or "2 weeks" and returns
// the duration with its compact label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for i := 0; i < len(s); {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i == len(s) {
			break
		}

		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if start == i {
			return 0, "", fmt.Errorf("timeutil: window %q: expected a number at %q", input, s[start:])
		}
		n, err := strconv.ParseInt(s[start:i], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: window %q: %w", input, err)
		}

		for i < len(s) && s[i] == ' ' {
			i++
		}
		ustart := i
		for i < len(s) && unicode.IsLetter(rune(s[i])) {
			i++
		}
		name := s[ustart:i]
		size, ok := unitSize(name)
		if !ok {
			return 0, "", fmt.Errorf("timeutil: window %q: unknown unit %q", input, name)
		}
		if n > math.MaxInt64/int64(size) {
			return 0, "", fmt.Errorf("timeutil: window %q is too long", input)
		}
		part := time.Duration(n) * size
		if total > math.MaxInt64-part {
			return 0, "", fmt.Errorf("timeutil: window %q is too long", input)
		}
		total += part
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window %q must be positive", input)
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with the largest units first, e.g. "1d12h".
func FormatWindow(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	var b strings.Builder
	for _, u := range windowUnits {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	return b.String()
}
