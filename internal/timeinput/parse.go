package timeinput

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/ottotimer/internal/domain"
)

// ParseDuration reads a duration typed on the command line or in the
// config file. Three forms are accepted:
//
//	1h30m    Go duration syntax
//	1:30     clock syntax, m:ss or h:mm:ss
//	130      compact digits, split by ParseDigits
func ParseDuration(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", domain.ErrInvalidDuration)
	}

	switch {
	case isDigits(trimmed):
		if len(trimmed) > MaxDigits {
			return 0, fmt.Errorf("%w: %q has more than %d digits", domain.ErrInvalidDuration, s, MaxDigits)
		}
		return ParseDigits(trimmed).Duration(), nil
	case strings.Contains(trimmed, ":"):
		return parseClock(trimmed)
	}

	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q is negative", domain.ErrInvalidDuration, s)
	}
	return d, nil
}

func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
	}

	units := []time.Duration{time.Second, time.Minute, time.Hour}
	var total time.Duration
	for i := range parts {
		// Walk from the seconds end.
		p := parts[len(parts)-1-i]
		if !isDigits(p) {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
		}
		leading := i == len(parts)-1
		if !leading && (len(p) != 2 || n > 59) {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
		}
		total += time.Duration(n) * units[i]
	}
	return total, nil
}
