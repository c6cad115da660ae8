// Package ids holds the pure mappings between the show's fixed-width
// identifiers: a tid embeds its epid, an epid embeds its air date, and the
// air date determines the sid. Malformed ids are hard errors; they mean a
// page-format assumption broke and the page needs hand inspection.
package ids

import (
	"time"

	"github.com/pkg/errors"
)

const (
	epidLen   = 8 // yyyymmdd
	firstYear = 1975
)

// ErrAugustBoundary is returned for air dates in August. The season boundary
// falls in Aug-Sep and no episode has ever aired in August; one doing so
// would make the season assignment ambiguous.
var ErrAugustBoundary = errors.New("air date falls in August, season ambiguous")

// EpidFromTid truncates a title id to its embedded episode id.
func EpidFromTid(tid string) (string, error) {
	if len(tid) <= epidLen {
		return "", errors.Errorf("malformed tid %q: want >%d chars", tid, epidLen)
	}
	return tid[:epidLen], nil
}

// DateFromEpid parses the air date embedded in an episode id.
func DateFromEpid(epid string) (time.Time, error) {
	if len(epid) != epidLen {
		return time.Time{}, errors.Errorf("malformed epid %q: want %d chars", epid, epidLen)
	}
	d, err := time.Parse("20060102", epid)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "malformed epid %q", epid)
	}
	return d, nil
}

// SidFromDate maps an air date to its season. Seasons start around Sep-Oct
// and usually end around May, though at least one ran into July.
func SidFromDate(d time.Time) (int, error) {
	if d.Month() == time.August {
		return 0, errors.Wrapf(ErrAugustBoundary, "date %s", d.Format("2006-01-02"))
	}
	sid := 1 + (d.Year() - firstYear)
	if d.Month() <= time.July {
		sid--
	}
	return sid, nil
}

// SidFromEpid composes DateFromEpid and SidFromDate.
func SidFromEpid(epid string) (int, error) {
	d, err := DateFromEpid(epid)
	if err != nil {
		return 0, err
	}
	return SidFromDate(d)
}

// SidFromTid composes EpidFromTid and SidFromEpid.
func SidFromTid(tid string) (int, error) {
	epid, err := EpidFromTid(tid)
	if err != nil {
		return 0, err
	}
	return SidFromEpid(epid)
}

// SidFromYear maps a season's starting year to its sid (season 1 began in
// 1975). Used for the season links on cast-history pages.
func SidFromYear(year int) int {
	return year - (firstYear - 1)
}

// YearFromSid is the inverse of SidFromYear.
func YearFromSid(sid int) int {
	return sid + (firstYear - 1)
}
