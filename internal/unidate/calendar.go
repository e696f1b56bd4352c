package unidate

import (
	"fmt"
	"time"
)

// CalendarDay is one day of a calendar listing: the Gregorian date, the
// Unified ISO form, the rendering for the requested variant and style,
// and the full date structure behind it.
type CalendarDay struct {
	Gregorian string      `json:"gregorian"`
	ISO       string      `json:"iso"`
	Rendered  string      `json:"rendered"`
	Date      UnifiedDate `json:"date"`
}

// FestiveDay is one festive marker of a Gregorian year.
type FestiveDay struct {
	YearDay   int    `json:"yearday"`
	Gregorian string `json:"gregorian"`
	ISO       string `json:"iso"`
	Name      string `json:"name"`
	Short     string `json:"short"`
}

// YearCalendar lists every day of a Gregorian year in the requested
// variant and style: 365 entries, or 366 in a leap year.
func YearCalendar(year int, variant Variant, style Style) ([]CalendarDay, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if !variant.valid() {
		return nil, fmt.Errorf("unknown variant %q: %w", variant, ErrInvalidVariant)
	}

	length := 365
	if isLeapYear(year) {
		length = 366
	}

	d := New()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, length)
	for i := 0; i < length; i++ {
		day, err := calendarDay(d, start.AddDate(0, 0, i), variant, style)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// MonthView lists the days of one Gregorian month in the requested
// variant and style.
func MonthView(year int, month int, variant Variant, style Style) ([]CalendarDay, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range: %w", month, ErrInvalidDate)
	}
	if !variant.valid() {
		return nil, fmt.Errorf("unknown variant %q: %w", variant, ErrInvalidVariant)
	}

	d := New()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var days []CalendarDay
	for cur := start; cur.Month() == start.Month(); cur = cur.AddDate(0, 0, 1) {
		day, err := calendarDay(d, cur, variant, style)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// FestiveDates lists the festive markers of a Gregorian year with their
// Gregorian dates: the four quarter markers and year end, plus leap day
// in leap years.
func FestiveDates(year int) ([]FestiveDay, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}

	count := 5
	if isLeapYear(year) {
		count = 6
	}

	days := make([]FestiveDay, 0, count)
	for i := 0; i < count; i++ {
		yearDay := festiveDays[i]
		g, err := dateOfYearDay(year, yearDay)
		if err != nil {
			return nil, err
		}
		code := festiveShort[i]
		long := monthsUnifiedLong.festiveEntry(code)
		short := monthsUnifiedShort.festiveEntry(code)
		days = append(days, FestiveDay{
			YearDay:   yearDay,
			Gregorian: g.Format(isoDate),
			ISO:       fmt.Sprintf("%d-%d%d-%02d", year+yearOffset, long.Quarter, long.Month, 0),
			Name:      long.Name,
			Short:     short.Name,
		})
	}
	return days, nil
}

func calendarDay(d *Date, g time.Time, variant Variant, style Style) (CalendarDay, error) {
	iso := g.Format(isoDate)
	if _, err := d.Unify(iso, style); err != nil {
		return CalendarDay{}, err
	}
	uniISO, err := d.Format(VariantUnified, StyleISO)
	if err != nil {
		return CalendarDay{}, err
	}
	rendered, err := d.Format(variant, style)
	if err != nil {
		return CalendarDay{}, err
	}
	snap, err := d.Snapshot(variant)
	if err != nil {
		return CalendarDay{}, err
	}
	return CalendarDay{Gregorian: iso, ISO: uniISO, Rendered: rendered, Date: snap}, nil
}

func checkYear(year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("year %d out of range: %w", year, ErrInvalidDate)
	}
	return nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
