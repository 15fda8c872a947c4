package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

const (
	// vendor timestamps are "2020-01-01T00:00:00.000Z"
	vendorLayout     = "2006-01-02T15:04:05"
	normalizedLayout = time.DateTime

	maxFractionDigits = 6
)

// ParseVendorTimestamp parses YYYY-MM-DDTHH:MM:SS.fffZ with one to six
// fractional digits and a literal Z.
func ParseVendorTimestamp(s string) (time.Time, error) {
	value, ok := strings.CutSuffix(s, "Z")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q: missing Z suffix", ErrInvalidTimestamp, s)
	}

	dot := strings.LastIndexByte(value, '.')
	if dot < 0 {
		return time.Time{}, fmt.Errorf("%w: %q: missing fractional seconds", ErrInvalidTimestamp, s)
	}

	fraction := value[dot+1:]
	if len(fraction) == 0 || len(fraction) > maxFractionDigits {
		return time.Time{}, fmt.Errorf("%w: %q: fractional seconds must have 1 to %d digits", ErrInvalidTimestamp, s, maxFractionDigits)
	}

	nsec := 0
	for _, r := range fraction {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("%w: %q: non-digit in fractional seconds", ErrInvalidTimestamp, s)
		}
		nsec = nsec*10 + int(r-'0')
	}
	for i := len(fraction); i < 9; i++ {
		nsec *= 10
	}

	// time.Parse tolerates a fraction after the seconds field, so a second
	// dot would otherwise slip through
	if dot != len(vendorLayout) {
		return time.Time{}, fmt.Errorf("%w: %q: malformed date or time", ErrInvalidTimestamp, s)
	}

	t, err := time.ParseInLocation(vendorLayout, value[:dot], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}

	return t.Add(time.Duration(nsec)), nil
}

// FormatTimestamp drops sub-second precision and the zone designator.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(normalizedLayout)
}
