package calendar

import (
	"strconv"
	"time"

	"github.com/clinicops/backoffice/internal/backend"
)

// ColorToken is the display color attached to a schedule entry in the grid.
type ColorToken string

const (
	ColorLightBlue   ColorToken = "light-blue"
	ColorLightYellow ColorToken = "light-yellow"
	ColorGrayDark    ColorToken = "gray-dark"
	ColorGrayLight   ColorToken = "gray-light"
	ColorNeutral     ColorToken = "neutral"
)

// FulltimeThreshold separates fulltime from part-time shifts.
const FulltimeThreshold = 8 * time.Hour

// IsFulltime reports whether a shift spans at least eight hours. Both clock
// times are anchored to the same reference day before subtracting so the
// duration never picks up a DST artifact. Unparseable times count as
// part-time.
func IsFulltime(startTime, endTime string) bool {
	start, err := parseClock(startTime)
	if err != nil {
		return false
	}
	end, err := parseClock(endTime)
	if err != nil {
		return false
	}
	return end.Sub(start) >= FulltimeThreshold
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(2000, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// Classify maps an entry to its display color under the given person-type
// context. The function is total: every input lands on exactly one of the
// five tokens. Day parity is read in loc, the same zone BuildGrid buckets
// by, so the color always matches the cell the entry renders in. A nil loc
// means UTC.
//
// Doctors alternate by day parity alone. For staff, receptionists on odd
// days and storekeepers on even days get the doctor palette; every other
// staff combination falls through to the gray fulltime/part-time pair. The
// asymmetry (receptionist-even and storekeeper-odd also land on gray) is the
// established display convention, not an oversight.
func Classify(e backend.ScheduleEntry, personCtx backend.PersonType, loc *time.Location) ColorToken {
	odd := isOddDay(e.Date, loc)

	switch personCtx {
	case backend.PersonDoctor:
		if odd {
			return ColorLightBlue
		}
		return ColorLightYellow
	case backend.PersonStaff:
		if e.StaffRole == backend.RoleReceptionist && odd {
			return ColorLightBlue
		}
		if e.StaffRole == backend.RoleStorekeeper && !odd {
			return ColorLightYellow
		}
		if IsFulltime(e.StartTime, e.EndTime) {
			return ColorGrayDark
		}
		return ColorGrayLight
	default:
		return ColorNeutral
	}
}

// isOddDay reports whether the entry's day-of-month is odd. The day number
// is taken from the bucketed day key, never from an instant, matching the
// grid's day-bucketing rule.
func isOddDay(date string, loc *time.Location) bool {
	key := DayKey(date, loc)
	if len(key) < 10 {
		return false
	}
	day, err := strconv.Atoi(key[8:10])
	if err != nil {
		return false
	}
	return day%2 == 1
}
