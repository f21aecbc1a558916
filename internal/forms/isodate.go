package forms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date forms: calendar (2024, 2024-05, 2024-05-01, 20240501), week
// (2024-W01, 2024-W01-1, 2024W011) and ordinal (2024-032, 2024032).
var (
	isoCalendarDate = regexp.MustCompile(`^([+-]?\d{4})(?:-(\d{2})(?:-(\d{2}))?|(\d{2})(\d{2}))?$`)
	isoWeekDate     = regexp.MustCompile(`^([+-]?\d{4})(-?)W(\d{2})(?:(-?)([1-7]))?$`)
	isoOrdinalDate  = regexp.MustCompile(`^([+-]?\d{4})-?(\d{3})$`)

	// hh, hh:mm, hhmm, hh:mm:ss, hhmmss; optional fraction of the last
	// component and optional zone.
	isoTime = regexp.MustCompile(`^(\d{2})(?:(:?)(\d{2})(?:(:?)(\d{2}))?)?(?:[.,](\d+))?(Z|z|[+-]\d{2}(?::?\d{2})?)?$`)
)

// ParseISODate parses an ISO-8601 date or date-time. Date and time may be
// separated by "T" or a space. Values without a zone are read as UTC, and
// the result is always returned in UTC.
func ParseISODate(value string) (time.Time, bool) {
	datePart, timePart, hasTime := value, "", false
	if i := strings.IndexAny(value, "Tt "); i >= 0 {
		datePart, timePart, hasTime = value[:i], value[i+1:], true
	}

	year, month, day, yearOnly, ok := parseISODatePart(datePart)
	if !ok || (hasTime && yearOnly) {
		return time.Time{}, false
	}
	if !hasTime {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	clock, loc, ok := parseISOTimePart(timePart)
	if !ok {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc).Add(clock)
	return t.UTC(), true
}

// parseISODatePart resolves any of the date forms to a calendar date.
func parseISODatePart(s string) (year int, month time.Month, day int, yearOnly bool, ok bool) {
	if m := isoCalendarDate.FindStringSubmatch(s); m != nil {
		year = atoi(m[1])
		mm, dd := m[2], m[3]
		if m[4] != "" {
			mm, dd = m[4], m[5]
		}
		if mm == "" {
			return year, time.January, 1, true, true
		}
		month = time.Month(atoi(mm))
		day = 1
		if dd != "" {
			day = atoi(dd)
		}
		if month < time.January || month > time.December || day < 1 {
			return 0, 0, 0, false, false
		}
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if t.Month() != month || t.Day() != day {
			return 0, 0, 0, false, false
		}
		return year, month, day, false, true
	}

	if m := isoWeekDate.FindStringSubmatch(s); m != nil {
		year = atoi(m[1])
		week, weekday := atoi(m[3]), 1
		if m[5] != "" {
			if m[2] != m[4] {
				return 0, 0, 0, false, false
			}
			weekday = atoi(m[5])
		}
		if week < 1 || week > 53 {
			return 0, 0, 0, false, false
		}
		// January 4th always falls in week 1.
		jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
		monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
		t := monday.AddDate(0, 0, (week-1)*7+weekday-1)
		if y, w := t.ISOWeek(); y != year || w != week {
			return 0, 0, 0, false, false
		}
		return t.Year(), t.Month(), t.Day(), false, true
	}

	if m := isoOrdinalDate.FindStringSubmatch(s); m != nil {
		year = atoi(m[1])
		n := atoi(m[2])
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
		if n < 1 || t.Year() != year {
			return 0, 0, 0, false, false
		}
		return t.Year(), t.Month(), t.Day(), false, true
	}

	return 0, 0, 0, false, false
}

// parseISOTimePart returns the time of day as an offset from midnight and
// the zone it is expressed in.
func parseISOTimePart(s string) (time.Duration, *time.Location, bool) {
	m := isoTime.FindStringSubmatch(s)
	if m == nil {
		return 0, nil, false
	}
	if m[5] != "" && m[2] != m[4] {
		return 0, nil, false
	}

	hour, minute, second := atoi(m[1]), 0, 0
	unit := time.Hour
	if m[3] != "" {
		minute, unit = atoi(m[3]), time.Minute
	}
	if m[5] != "" {
		second, unit = atoi(m[5]), time.Second
	}
	if minute > 59 || second > 59 {
		return 0, nil, false
	}

	var fraction time.Duration
	if m[6] != "" {
		f, err := strconv.ParseFloat("0."+m[6], 64)
		if err != nil {
			return 0, nil, false
		}
		fraction = time.Duration(f * float64(unit))
	}

	// 24:00 is midnight at the end of the day.
	if hour > 24 || (hour == 24 && (minute != 0 || second != 0 || fraction != 0)) {
		return 0, nil, false
	}

	loc, ok := parseISOZone(m[7])
	if !ok {
		return 0, nil, false
	}

	clock := time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second +
		fraction
	return clock, loc, true
}

func parseISOZone(zone string) (*time.Location, bool) {
	switch zone {
	case "", "Z", "z":
		return time.UTC, true
	}

	sign := 1
	if zone[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(zone[1:], ":", "")
	hours, minutes := atoi(digits[:2]), 0
	if len(digits) == 4 {
		minutes = atoi(digits[2:])
	}
	if hours > 23 || minutes > 59 {
		return nil, false
	}
	return time.FixedZone("", sign*(hours*3600+minutes*60)), true
}

// atoi is only called on regexp-matched digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
