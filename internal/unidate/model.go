package unidate

// WeekInfo classifies a single day of the year as regular or festive.
type WeekInfo struct {
	// Regular is false for the five or six festive markers of a year.
	Regular bool `json:"regular"`

	// Weekday is the day of the six-day week (1..6) for regular days.
	// For festive days it is the festive index (0..5), not a weekday.
	Weekday int `json:"weekday"`

	// YearDay is the day of the year. For regular days the festive
	// markers already passed are subtracted out, so the value feeds the
	// quarter/month arithmetic directly; festive days keep the raw value.
	YearDay int `json:"yearday"`
}

// DayInfo names a day within its 18-day month.
type DayInfo struct {
	// Name is the weekday name ("Sixthday", or "D18" in short style).
	// Festive days carry their short festive code instead.
	Name string `json:"name"`

	// Number is the day of the month (1..18), or 0 for festive days.
	Number int `json:"number"`
}

// MonthInfo names a month and places it on the quarter grid.
type MonthInfo struct {
	Name string `json:"name"`

	// Quarter is 1..4 for regular months. Festive pseudo-months carry
	// their marker's quarter (1..4), 5 for year end, or 6 for leap day.
	Quarter int `json:"quarter"`

	// Month is the month within the quarter (1..5), or 0 for festive
	// pseudo-months.
	Month int `json:"month"`
}

// UnifiedDate is one full Unified representation of a Gregorian date.
type UnifiedDate struct {
	Week  WeekInfo  `json:"week"`
	Day   DayInfo   `json:"day"`
	Month MonthInfo `json:"month"`

	// Year is the Unified year: Gregorian year + 5600.
	Year int `json:"year"`
}

// IsFestive reports whether this date is a festive marker rather than a
// regular month day.
func (u UnifiedDate) IsFestive() bool {
	return !u.Week.Regular
}
