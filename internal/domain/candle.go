package domain

import "time"

// Header is the first line of every normalized file.
var Header = []string{"timestamp", "open", "high", "low", "close", "volume"}

// Candle carries prices and volume as the vendor wrote them, so textual
// precision survives the conversion.
type Candle struct {
	Timestamp time.Time
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
}

// Record fills buf with the normalized fields and returns it.
func (c *Candle) Record(buf []string) []string {
	buf = append(buf[:0],
		FormatTimestamp(c.Timestamp),
		c.Open,
		c.High,
		c.Low,
		c.Close,
		c.Volume,
	)
	return buf
}
