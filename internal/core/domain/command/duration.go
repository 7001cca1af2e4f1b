package command

import (
	"errors"
	"math"
	"strconv"
)

// ErrInvalidDuration is returned when a duration token does not add up to a positive number of seconds.
var ErrInvalidDuration = errors.New("invalid duration")

var unitSeconds = map[rune]int{
	's': 1,
	'm': 60,
	'h': 3600,
}

// ParseDuration converts a token such as "1h30m" into seconds. Each run of digits must be closed by s, m or h;
// unknown characters are skipped and a trailing run without a unit is ignored. Repeated units add up.
func ParseDuration(token string) (int, error) {
	total := 0
	pending := ""

	for _, r := range token {
		if r >= '0' && r <= '9' {
			pending += string(r)
			continue
		}

		multiplier, ok := unitSeconds[r]
		if !ok || pending == "" {
			continue
		}

		n, err := strconv.Atoi(pending)
		if err != nil || n > (math.MaxInt-total)/multiplier {
			return 0, ErrInvalidDuration
		}

		total += n * multiplier
		pending = ""
	}

	if total <= 0 {
		return 0, ErrInvalidDuration
	}

	return total, nil
}
