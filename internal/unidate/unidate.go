// Package unidate converts Gregorian dates to and from the Unified
// calendar: four 90-day quarters of five 18-day months each, separated
// by single-day festive markers, with six-day weeks. The Unified year
// is the Gregorian year plus 5600. Month names come in three regional
// variants (Unified, Territorian, Austral) and three rendering styles
// (Long, Short, ISO); variants share the full date structure and differ
// only in month names.
//
// The package is pure calendar arithmetic: no I/O, no clocks except
// where the caller asks for "today", and all name tables are immutable,
// so values are safe to share across goroutines. A Date instance itself
// is not synchronized; Unify is its only mutator.
package unidate

import (
	"fmt"
	"time"
)

// yearOffset is the calendar's epoch offset: Unified year = Gregorian
// year + 5600.
const yearOffset = 5600

// isoDate is the Gregorian input layout (ISO 8601).
const isoDate = "2006-01-02"

// Date converts Gregorian dates and holds the three variant snapshots
// of the most recent conversion. The zero value is ready to use; Format
// and Snapshot fail with ErrNoDate until the first successful Unify.
type Date struct {
	gregorian    time.Time
	gregorianRaw string
	style        Style

	unified     UnifiedDate
	territorian UnifiedDate
	austral     UnifiedDate

	populated bool
}

// New returns an empty Date.
func New() *Date {
	return &Date{}
}

// Today converts the current system date in the given style.
func Today(style Style) (*Date, error) {
	d := New()
	if _, err := d.Unify("", style); err != nil {
		return nil, err
	}
	return d, nil
}

// Unify converts a Gregorian ISO date string (YYYY-MM-DD; empty means
// the current system date) and stores all three variant snapshots. The
// Unified snapshot is built in the requested style; the Territorian and
// Austral snapshots always carry long month names because no short
// tables exist for them. The shared day tuple follows the requested
// style. On error the previous state is left untouched.
func (d *Date) Unify(userDate string, style Style) (UnifiedDate, error) {
	g, raw, err := parseGregorian(userDate)
	if err != nil {
		return UnifiedDate{}, err
	}

	week, err := classify(g.YearDay())
	if err != nil {
		return UnifiedDate{}, err
	}
	day, err := dayInfo(week, style)
	if err != nil {
		return UnifiedDate{}, err
	}
	monthUni, err := monthInfo(week, VariantUnified, style)
	if err != nil {
		return UnifiedDate{}, err
	}
	monthSWT, err := monthInfo(week, VariantTerritorian, StyleLong)
	if err != nil {
		return UnifiedDate{}, err
	}
	monthAus, err := monthInfo(week, VariantAustral, StyleLong)
	if err != nil {
		return UnifiedDate{}, err
	}

	year := g.Year() + yearOffset

	d.gregorian = g
	d.gregorianRaw = raw
	d.style = style
	d.unified = UnifiedDate{Week: week, Day: day, Month: monthUni, Year: year}
	d.territorian = UnifiedDate{Week: week, Day: day, Month: monthSWT, Year: year}
	d.austral = UnifiedDate{Week: week, Day: day, Month: monthAus, Year: year}
	d.populated = true

	return d.unified, nil
}

// Format renders the stored date for a variant and style.
//
// ISO renders "YYYY-QM-DD" from the stored numbers. Long and Short
// re-derive the day and month names for the requested combination on
// regular days; festive days render as "<stored month name> <year>" in
// every style, so a snapshot unified in short style keeps its short
// festive name. Style values outside the known set fall back to Long.
func (d *Date) Format(variant Variant, style Style) (string, error) {
	snap, err := d.Snapshot(variant)
	if err != nil {
		return "", err
	}

	if style == StyleISO {
		return fmt.Sprintf("%d-%d%d-%02d", snap.Year, snap.Month.Quarter, snap.Month.Month, snap.Day.Number), nil
	}

	if !snap.Week.Regular {
		return fmt.Sprintf("%s %d", snap.Month.Name, snap.Year), nil
	}

	dayStyle := StyleLong
	if style == StyleShort {
		dayStyle = StyleShort
	}
	day, err := dayInfo(snap.Week, dayStyle)
	if err != nil {
		return "", err
	}
	month, err := monthInfo(snap.Week, variant, style)
	if err != nil {
		return "", err
	}

	if style == StyleShort {
		return fmt.Sprintf("%s %d, %s %d", day.Name, day.Number, month.Name, snap.Year), nil
	}
	return fmt.Sprintf("%s %02d, %s %d", day.Name, day.Number, month.Name, snap.Year), nil
}

// Snapshot returns the stored representation for a variant.
func (d *Date) Snapshot(variant Variant) (UnifiedDate, error) {
	if !variant.valid() {
		return UnifiedDate{}, fmt.Errorf("unknown variant %q: %w", variant, ErrInvalidVariant)
	}
	if !d.populated {
		return UnifiedDate{}, fmt.Errorf("unify a date first: %w", ErrNoDate)
	}
	switch variant {
	case VariantTerritorian:
		return d.territorian, nil
	case VariantAustral:
		return d.austral, nil
	default:
		return d.unified, nil
	}
}

// Populated reports whether a successful Unify has run.
func (d *Date) Populated() bool {
	return d.populated
}

// GregorianString returns the stored Gregorian date in ISO form, or ""
// before the first Unify.
func (d *Date) GregorianString() string {
	return d.gregorianRaw
}

// GregorianTime returns the stored Gregorian date. The zero time is
// returned before the first Unify.
func (d *Date) GregorianTime() time.Time {
	return d.gregorian
}

// Style returns the style the current snapshots were unified in.
func (d *Date) Style() Style {
	return d.style
}

// Display renders the full multi-line summary of the stored date: the
// Gregorian date, the Unified ISO form, and the long and short
// renderings of every variant. Returns "" before the first Unify.
func (d *Date) Display() string {
	if !d.populated {
		return ""
	}

	iso, _ := d.Format(VariantUnified, StyleISO)
	short, _ := d.Format(VariantUnified, StyleShort)
	long, _ := d.Format(VariantUnified, StyleLong)
	swt, _ := d.Format(VariantTerritorian, StyleLong)
	aus, _ := d.Format(VariantAustral, StyleLong)

	return fmt.Sprintf(
		"%-15s%s - %s\n%-15s%s\n%-15s%s\n%-15s%s\n%-15s%s\n%-15s%s\n",
		"Gregorian:", d.gregorianRaw, d.gregorian.Format("Monday 02 of January, 2006"),
		"Unified ISO:", iso,
		"Unified Short:", short,
		"Unified Long:", long,
		"Territorian:", swt,
		"Austral:", aus,
	)
}

// parseGregorian validates a Gregorian ISO date string. An empty string
// means the current system date. Years before 1 are rejected; the
// four-digit layout caps input at year 9999.
func parseGregorian(userDate string) (time.Time, string, error) {
	if userDate == "" {
		now := time.Now()
		g := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return g, g.Format(isoDate), nil
	}

	g, err := time.Parse(isoDate, userDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("date %q must be ISO 8601 (YYYY-MM-DD): %w", userDate, ErrInvalidDate)
	}
	if g.Year() < 1 {
		return time.Time{}, "", fmt.Errorf("year %d before Gregorian year 1: %w", g.Year(), ErrInvalidDate)
	}
	return g, g.Format(isoDate), nil
}
