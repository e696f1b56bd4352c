package unidate

import (
	"fmt"
	"strconv"
)

// classify splits the year into four 90-day quarters plus up to six
// single-day festive markers. Regular days have the festive markers
// already passed subtracted from their yearday, so the result feeds the
// week and month arithmetic directly.
func classify(yearDay int) (WeekInfo, error) {
	for i, d := range festiveDays {
		if yearDay == d {
			return WeekInfo{Regular: false, Weekday: i, YearDay: yearDay}, nil
		}
	}

	adjusted := yearDay
	switch {
	case yearDay > 1 && yearDay <= 91:
		adjusted--
	case yearDay > 92 && yearDay <= 182:
		adjusted -= 2
	case yearDay > 183 && yearDay <= 273:
		adjusted -= 3
	case yearDay > 274 && yearDay <= 364:
		adjusted -= 4
	default:
		return WeekInfo{}, fmt.Errorf("day of year %d out of range: %w", yearDay, ErrInvalidDate)
	}

	weekday := ((adjusted % 90) % 18) % 6
	if weekday == 0 {
		weekday = 6
	}

	return WeekInfo{Regular: true, Weekday: weekday, YearDay: adjusted}, nil
}

// dayInfo derives the day name and day-of-month number. Festive days
// keep their short code in every style. Only Long produces weekday
// names; Short and ISO both use the "D<n>" form.
func dayInfo(week WeekInfo, style Style) (DayInfo, error) {
	if !week.Regular {
		return DayInfo{Name: festiveShort[week.Weekday], Number: 0}, nil
	}

	monthDay := (week.YearDay % 90) % 18
	if monthDay == 0 {
		monthDay = 18
	}
	if monthDay < 1 || monthDay > 18 {
		return DayInfo{}, fmt.Errorf("day %d of month out of range: %w", monthDay, ErrInvalidDate)
	}

	if style != StyleLong {
		return DayInfo{Name: "D" + strconv.Itoa(monthDay), Number: monthDay}, nil
	}

	for _, wd := range weekdayNames {
		for _, offset := range wd.Offsets {
			if offset == week.Weekday {
				return DayInfo{Name: wd.Name, Number: monthDay}, nil
			}
		}
	}
	return DayInfo{}, fmt.Errorf("weekday %d has no name: %w", week.Weekday, ErrInvalidDate)
}

// monthInfo derives the month number from the yearday and resolves it
// in the table for the requested variant and style. Short style always
// uses the Unified short table; no short tables exist for the regional
// variants. Festive markers resolve by short code, falling back to the
// Unified long names for variants without festive entries.
func monthInfo(week WeekInfo, variant Variant, style Style) (MonthInfo, error) {
	if !week.Regular {
		code := festiveShort[week.Weekday]
		if style == StyleShort {
			return monthsUnifiedShort.festiveEntry(code), nil
		}
		return longTable(variant).festiveEntry(code), nil
	}

	number := (week.YearDay-1)/18 + 1
	if number > 20 {
		number = 20
	}
	if number < 1 {
		return MonthInfo{}, fmt.Errorf("month %d out of range: %w", number, ErrInvalidDate)
	}

	if style == StyleShort {
		return monthsUnifiedShort.month(number), nil
	}
	return longTable(variant).month(number), nil
}
