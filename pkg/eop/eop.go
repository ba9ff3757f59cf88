// Package eop loads IERS Earth Orientation Parameters from a rolling
// finals2000A.all file and answers UT1-UTC (DUT1) and Delta-T queries for the
// ephemeris time scale. When no usable file is available the package falls
// back to a built-in long-term model with coarser accuracy.
package eop

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrParseIncomplete indicates the finals file has no measured (I-flagged)
// record after 2000. The file is likely truncated or corrupt and should be
// deleted so it gets re-downloaded.
var ErrParseIncomplete = errors.New("finals2000A.all has no measured record after 2000; delete the file to force a fresh download")

// mjd2000 is the Modified Julian Date of 2000-01-01.
const mjd2000 = 51544.0

// Fixed byte offsets of the measured/predicted flags in a finals2000A line:
// polar motion, UT1-UTC, and nutation respectively.
const (
	flagPolarCol = 16
	flagDUT1Col  = 57
	flagNutCol   = 95
)

// record is one per-MJD line of the finals file that carried a UT1-UTC value.
type record struct {
	MJD  float64
	DUT1 float64 // seconds
	Flag byte    // 'I' measured, 'P' predicted
}

// Table holds the parsed EOP series plus the boundary dates advertised to the
// page footer.
type Table struct {
	Records       []record
	LastMeasured  time.Time // most recent I-flagged UT1-UTC record
	LastPredicted time.Time // last record of any kind
	Source        string    // path the table was parsed from, "" for built-in
}

// Parse reads a finals2000A.all stream. Lines too short to carry a UT1-UTC
// value (the predicted tail thins out) are skipped.
func Parse(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{Source: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) <= 68 {
			continue
		}
		flag := line[flagDUT1Col]
		if flag != 'I' && flag != 'P' {
			continue
		}
		mjd, err := strconv.ParseFloat(strings.TrimSpace(line[7:15]), 64)
		if err != nil {
			continue
		}
		dut1, err := strconv.ParseFloat(strings.TrimSpace(line[58:68]), 64)
		if err != nil {
			continue
		}
		t.Records = append(t.Records, record{MJD: mjd, DUT1: dut1, Flag: flag})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := t.resolveBoundaries(); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveBoundaries locates the measured/predicted transition: the first
// post-2000 predicted record, then the last measured record before it.
func (t *Table) resolveBoundaries() error {
	firstP := -1
	for i, r := range t.Records {
		if r.MJD >= mjd2000 && r.Flag == 'P' {
			firstP = i
			break
		}
	}
	lastI := -1
	if firstP < 0 {
		// Entire series measured; take the final record.
		for i := len(t.Records) - 1; i >= 0; i-- {
			if t.Records[i].Flag == 'I' {
				lastI = i
				break
			}
		}
	} else {
		for i := firstP - 1; i >= 0; i-- {
			if t.Records[i].Flag == 'I' {
				lastI = i
				break
			}
		}
	}
	if lastI < 0 {
		return ErrParseIncomplete
	}
	t.LastMeasured = mjdToTime(t.Records[lastI].MJD)
	t.LastPredicted = mjdToTime(t.Records[len(t.Records)-1].MJD)
	return nil
}

// DUT1 returns UT1-UTC in seconds at the given MJD, linearly interpolated
// between tabulated records. The second return is false when the MJD is
// outside the table, in which case the caller should use the built-in model.
func (t *Table) DUT1(mjd float64) (float64, bool) {
	n := len(t.Records)
	if n == 0 || mjd < t.Records[0].MJD || mjd > t.Records[n-1].MJD {
		return 0, false
	}
	// Records are daily and ordered; index directly.
	i := int(mjd - t.Records[0].MJD)
	if i >= n-1 {
		return t.Records[n-1].DUT1, true
	}
	a, b := t.Records[i], t.Records[i+1]
	if b.MJD == a.MJD {
		return a.DUT1, true
	}
	f := (mjd - a.MJD) / (b.MJD - a.MJD)
	return a.DUT1 + f*(b.DUT1-a.DUT1), true
}

// Covers reports whether the table spans the given MJD.
func (t *Table) Covers(mjd float64) bool {
	_, ok := t.DUT1(mjd)
	return ok
}

func mjdToTime(mjd float64) time.Time {
	// MJD 40587 is the Unix epoch.
	sec := (mjd - 40587.0) * 86400.0
	return time.Unix(int64(sec), 0).UTC()
}
