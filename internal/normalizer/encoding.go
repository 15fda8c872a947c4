package normalizer

import (
	"errors"
	"unicode/utf8"

	"github.com/0xc0d3d00d/candleconv/internal/domain"
)

// trailing vendor columns such as the trade count are ignored
const minSourceFields = 7

const (
	fieldTimestamp = iota
	fieldOpen
	fieldHigh
	fieldLow
	fieldClose
	fieldVolume
)

var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

type skipReason int

const (
	skipNone skipReason = iota
	skipShortRow
	skipBadTimestamp
)

func (r skipReason) String() string {
	switch r {
	case skipShortRow:
		return "short_row"
	case skipBadTimestamp:
		return "bad_timestamp"
	default:
		return "none"
	}
}

// rowResult is either a decoded candle or the reason the row was dropped.
type rowResult struct {
	candle domain.Candle
	skip   skipReason
	err    error
}

func decodeRow(fields []string) rowResult {
	if len(fields) < minSourceFields {
		return rowResult{skip: skipShortRow}
	}

	ts, err := domain.ParseVendorTimestamp(fields[fieldTimestamp])
	if err != nil {
		return rowResult{skip: skipBadTimestamp, err: err}
	}

	return rowResult{
		candle: domain.Candle{
			Timestamp: ts,
			Open:      fields[fieldOpen],
			High:      fields[fieldHigh],
			Low:       fields[fieldLow],
			Close:     fields[fieldClose],
			Volume:    fields[fieldVolume],
		},
	}
}

func validUTF8(fields []string) bool {
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return false
		}
	}
	return true
}
