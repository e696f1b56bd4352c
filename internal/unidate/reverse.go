package unidate

import (
	"fmt"
	"strings"
	"time"
)

// ReverseYear converts a Unified year back to its Gregorian year.
// Negative Unified years fall before recorded time and fail with
// ErrPrehistoricDate.
func ReverseYear(unifiedYear int) (int, error) {
	if unifiedYear < 0 {
		return 0, fmt.Errorf("cannot convert unified year %d: %w", unifiedYear, ErrPrehistoricDate)
	}
	return unifiedYear - yearOffset, nil
}

// ReverseUnidate converts a Unified ISO string (YYYY-QM-DD) back to a
// Gregorian date, then repopulates the instance from it in Long style.
//
// The middle field is a quarter digit followed by a month digit. Month
// 0 marks a festive day; its quarter (1..6) selects the fixed yearday
// directly and the day field is ignored. Regular dates invert the
// forward arithmetic and add one compensating day per elapsed quarter
// marker.
func (d *Date) ReverseUnidate(unifiedDate string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(unifiedDate), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date %q must be ISO 8601U (YYYY-QM-DD): %w", unifiedDate, ErrInvalidDate)
	}

	year, err := parseDigits(parts[0], "year")
	if err != nil {
		return time.Time{}, err
	}
	if len(parts[1]) != 2 {
		return time.Time{}, fmt.Errorf("quarter/month field %q must be two digits: %w", parts[1], ErrInvalidDate)
	}
	quarterMonth, err := parseDigits(parts[1], "quarter/month")
	if err != nil {
		return time.Time{}, err
	}
	day, err := parseDigits(parts[2], "day")
	if err != nil {
		return time.Time{}, err
	}
	quarter, month := quarterMonth/10, quarterMonth%10

	gregorianYear, err := ReverseYear(year)
	if err != nil {
		return time.Time{}, err
	}
	if gregorianYear < 1 {
		return time.Time{}, fmt.Errorf("unified year %d falls before Gregorian year 1: %w", year, ErrPrehistoricDate)
	}

	var yearDay int
	if month == 0 {
		if quarter < 1 || quarter > 6 {
			return time.Time{}, fmt.Errorf("festive quarter %d out of range: %w", quarter, ErrInvalidDate)
		}
		yearDay = festiveDays[quarter-1]
	} else {
		if quarter < 1 || quarter > 4 || month > 5 || day < 1 || day > 18 {
			return time.Time{}, fmt.Errorf("quarter/month/day out of range in %q: %w", unifiedDate, ErrInvalidDate)
		}
		// Invert the forward arithmetic, then compensate for the
		// festive markers inserted ahead of this quarter.
		yearDay = 90*(quarter-1) + 18*(month-1) + day + quarter
	}

	g, err := dateOfYearDay(gregorianYear, yearDay)
	if err != nil {
		return time.Time{}, err
	}

	if _, err := d.Unify(g.Format(isoDate), StyleLong); err != nil {
		return time.Time{}, err
	}
	return g, nil
}

// parseDigits parses a strictly numeric field; signs, spaces, and
// anything non-digit fail with ErrInvalidDate.
func parseDigits(field, name string) (int, error) {
	if field == "" {
		return 0, fmt.Errorf("empty %s field: %w", name, ErrInvalidDate)
	}
	n := 0
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%s field %q is not numeric: %w", name, field, ErrInvalidDate)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// dateOfYearDay maps a day-of-year onto a concrete Gregorian date.
// Days that roll past the year's end (such as day 366 in a non-leap
// year) are rejected.
func dateOfYearDay(year, yearDay int) (time.Time, error) {
	if yearDay < 1 {
		return time.Time{}, fmt.Errorf("day of year %d out of range: %w", yearDay, ErrInvalidDate)
	}
	g := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, yearDay-1)
	if g.Year() != year {
		return time.Time{}, fmt.Errorf("day of year %d does not exist in %d: %w", yearDay, year, ErrInvalidDate)
	}
	return g, nil
}
