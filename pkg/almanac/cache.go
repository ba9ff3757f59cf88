package almanac

import (
	"github.com/chrissnell/skyalmanac/internal/constants"
)

// Display cells for days without a usable event time. All cache payloads are
// exactly five bytes so the finalState glyph packing below stays positional.
const (
	CellAboveAllDay = "=====" // open rectangle: body above horizon all day
	CellBelowAllDay = "#####" // solid bar: body below horizon all day
	CellAdjacent    = "  .. " // event occurs on an adjacent day
)

// packFinal encodes a final horizon state into the middle byte of a set-event
// string, replacing the hh:mm separator. Non-time cells pass through.
func packFinal(set string, s HorizonState) string {
	if len(set) != 5 || set[2] != ':' {
		return set
	}
	b := []byte(set)
	b[2] = s.Glyph()
	return string(b)
}

// unpackFinal reverses packFinal, restoring the ':' separator.
func unpackFinal(set string) (string, HorizonState) {
	if len(set) != 5 {
		return set, Unknown
	}
	var s HorizonState
	switch set[2] {
	case 'n':
		s = Above
	case 'v':
		s = Below
	default:
		return set, Unknown
	}
	b := []byte(set)
	b[2] = ':'
	return string(b), s
}

// cacheSlot is one latitude's cached pair.
type cacheSlot struct {
	rise, set string
	filled    bool
}

// transitCache is a transient ring of per-date, per-latitude rise/set
// results. It exists to absorb the redundant recomputation the 3-day page
// layout would otherwise do: each date is queried for up to three pages and
// by the adjacent-day searches. Minute precision only; seconds mode bypasses
// it entirely.
type transitCache struct {
	dates [constants.TransitCacheLen]Date
	used  [constants.TransitCacheLen]bool
	slots [constants.TransitCacheLen][32]cacheSlot
}

// slotFor returns the ring index holding d, or -1.
func (c *transitCache) slotFor(d Date) int {
	for i := range c.dates {
		if c.used[i] && c.dates[i] == d {
			return i
		}
	}
	return -1
}

// claim returns the ring index to use for a new date, evicting the oldest
// entry when the ring is full.
func (c *transitCache) claim(d Date) int {
	for i := range c.used {
		if !c.used[i] {
			c.used[i] = true
			c.dates[i] = d
			return i
		}
	}
	oldest := 0
	for i := 1; i < len(c.dates); i++ {
		if c.dates[i].Before(c.dates[oldest]) {
			oldest = i
		}
	}
	c.dates[oldest] = d
	c.slots[oldest] = [32]cacheSlot{}
	return oldest
}

// lookup returns the cached strings for (d, latIdx).
func (c *transitCache) lookup(d Date, latIdx int) (rise, set string, ok bool) {
	i := c.slotFor(d)
	if i < 0 || !c.slots[i][latIdx].filled {
		return "", "", false
	}
	return c.slots[i][latIdx].rise, c.slots[i][latIdx].set, true
}

// store caches the strings for (d, latIdx).
func (c *transitCache) store(d Date, latIdx int, rise, set string) {
	i := c.slotFor(d)
	if i < 0 {
		i = c.claim(d)
	}
	c.slots[i][latIdx] = cacheSlot{rise: rise, set: set, filled: true}
}
