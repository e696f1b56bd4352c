package unidate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// --- Test Helpers ---

// assertErrIs checks that err wraps the expected sentinel.
func assertErrIs(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

// mustUnify converts or fails the test.
func mustUnify(t *testing.T, d *Date, userDate string, style Style) UnifiedDate {
	t.Helper()
	u, err := d.Unify(userDate, style)
	if err != nil {
		t.Fatalf("Unify(%q, %q) failed: %v", userDate, style, err)
	}
	return u
}

// mustFormat renders or fails the test.
func mustFormat(t *testing.T, d *Date, variant Variant, style Style) string {
	t.Helper()
	s, err := d.Format(variant, style)
	if err != nil {
		t.Fatalf("Format(%q, %q) failed: %v", variant, style, err)
	}
	return s
}

// --- Unify Tests ---

func TestUnify_KnownDate(t *testing.T) {
	d := New()
	u := mustUnify(t, d, "2019-12-30", StyleLong)

	want := UnifiedDate{
		Week:  WeekInfo{Regular: true, Weekday: 6, YearDay: 360},
		Day:   DayInfo{Name: "Sixthday", Number: 18},
		Month: MonthInfo{Name: "Quarter four-E", Quarter: 4, Month: 5},
		Year:  7619,
	}
	if u != want {
		t.Errorf("Unify = %+v, want %+v", u, want)
	}
	if d.GregorianString() != "2019-12-30" {
		t.Errorf("GregorianString = %q", d.GregorianString())
	}
	if !d.Populated() {
		t.Error("expected populated instance")
	}

	swt, err := d.Snapshot(VariantTerritorian)
	if err != nil {
		t.Fatalf("Snapshot(territorian) failed: %v", err)
	}
	if swt.Month.Name != "Winter chill" {
		t.Errorf("territorian month = %q, want Winter chill", swt.Month.Name)
	}
	aus, err := d.Snapshot(VariantAustral)
	if err != nil {
		t.Fatalf("Snapshot(austral) failed: %v", err)
	}
	if aus.Month.Name != "Summer break" {
		t.Errorf("austral month = %q, want Summer break", aus.Month.Name)
	}

	// The variants differ in month names only.
	if swt.Week != u.Week || aus.Week != u.Week {
		t.Error("expected identical week info across variants")
	}
	if swt.Day != u.Day || aus.Day != u.Day {
		t.Error("expected identical day info across variants")
	}
	if swt.Year != u.Year || aus.Year != u.Year {
		t.Error("expected identical year across variants")
	}
	if swt.Month.Quarter != u.Month.Quarter || swt.Month.Month != u.Month.Month {
		t.Error("expected identical month position across variants")
	}
}

func TestUnify_LeapDayOfFebruary(t *testing.T) {
	d := New()
	u := mustUnify(t, d, "2020-02-29", StyleLong)

	want := UnifiedDate{
		Week:  WeekInfo{Regular: true, Weekday: 5, YearDay: 59},
		Day:   DayInfo{Name: "Fifthday", Number: 5},
		Month: MonthInfo{Name: "Quarter one-D", Quarter: 1, Month: 4},
		Year:  7620,
	}
	if u != want {
		t.Errorf("Unify = %+v, want %+v", u, want)
	}
}

func TestUnify_YearEndAndLeapDay(t *testing.T) {
	d := New()

	// In a leap year the 365th day is year end and the 366th leap day.
	u := mustUnify(t, d, "2020-12-30", StyleLong)
	if u.Week != (WeekInfo{Regular: false, Weekday: 4, YearDay: 365}) {
		t.Errorf("week = %+v", u.Week)
	}
	if u.Day != (DayInfo{Name: "YE", Number: 0}) {
		t.Errorf("day = %+v", u.Day)
	}
	if u.Month != (MonthInfo{Name: "Year end", Quarter: 5, Month: 0}) {
		t.Errorf("month = %+v", u.Month)
	}
	if u.Year != 7620 {
		t.Errorf("year = %d", u.Year)
	}

	u = mustUnify(t, d, "2020-12-31", StyleLong)
	if u.Week != (WeekInfo{Regular: false, Weekday: 5, YearDay: 366}) {
		t.Errorf("week = %+v", u.Week)
	}
	if u.Day != (DayInfo{Name: "LD", Number: 0}) {
		t.Errorf("day = %+v", u.Day)
	}
	if u.Month != (MonthInfo{Name: "Leap day", Quarter: 6, Month: 0}) {
		t.Errorf("month = %+v", u.Month)
	}

	// Outside leap years December 31st is year end itself.
	u = mustUnify(t, d, "2019-12-31", StyleLong)
	if u.Month.Name != "Year end" || u.Week.YearDay != 365 {
		t.Errorf("2019-12-31 = %+v, want year end on day 365", u)
	}
	if !u.IsFestive() {
		t.Error("expected festive date")
	}
}

func TestUnify_EmptyInputUsesToday(t *testing.T) {
	d := New()
	before := time.Now().Format("2006-01-02")
	mustUnify(t, d, "", StyleLong)
	after := time.Now().Format("2006-01-02")
	if got := d.GregorianString(); got != before && got != after {
		t.Errorf("GregorianString = %q, want today", got)
	}
}

func TestUnify_RejectsMalformedInput(t *testing.T) {
	d := New()
	for _, input := range []string{
		"not a date",
		"2019-13-01",
		"2019-02-30",
		"30-12-2019",
		"2019/12/30",
		"2019-12-30T00:00:00Z",
		"0000-05-10", // year zero predates the calendar
	} {
		_, err := d.Unify(input, StyleLong)
		assertErrIs(t, err, ErrInvalidDate)
	}
}

func TestUnify_ErrorLeavesStateUntouched(t *testing.T) {
	d := New()
	mustUnify(t, d, "2019-12-30", StyleLong)

	if _, err := d.Unify("bogus", StyleLong); err == nil {
		t.Fatal("expected error")
	}

	if d.GregorianString() != "2019-12-30" {
		t.Errorf("GregorianString = %q after failed Unify", d.GregorianString())
	}
	if got := mustFormat(t, d, VariantUnified, StyleISO); got != "7619-45-18" {
		t.Errorf("ISO = %q after failed Unify", got)
	}
}

func TestUnify_SameYearDayRepeatsAcrossYears(t *testing.T) {
	// Every field but the year depends only on the day of the year.
	years := []int{2017, 2018, 2019, 2020, 2021}
	d := New()
	for yearDay := 1; yearDay <= 365; yearDay++ {
		var first UnifiedDate
		for i, year := range years {
			g := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, yearDay-1)
			u := mustUnify(t, d, g.Format("2006-01-02"), StyleLong)
			if u.Year != year+5600 {
				t.Fatalf("year %d day %d: unified year %d", year, yearDay, u.Year)
			}
			u.Year = 0
			if i == 0 {
				first = u
				continue
			}
			if u != first {
				t.Fatalf("day %d differs between %d and %d: %+v vs %+v", yearDay, years[0], year, first, u)
			}
		}
	}
}

// --- Format Tests ---

func TestFormat_StylesAndVariants(t *testing.T) {
	d := New()
	mustUnify(t, d, "2020-02-29", StyleLong)

	tests := []struct {
		variant Variant
		style   Style
		want    string
	}{
		{VariantUnified, StyleLong, "Fifthday 05, Quarter one-D 7620"},
		{VariantUnified, StyleShort, "D5 5, Q1D 7620"},
		{VariantUnified, StyleISO, "7620-14-05"},
		{VariantTerritorian, StyleLong, "Fifthday 05, Spring low 7620"},
		{VariantTerritorian, StyleShort, "D5 5, Q1D 7620"},
		{VariantTerritorian, StyleISO, "7620-14-05"},
		{VariantAustral, StyleLong, "Fifthday 05, Autumn start 7620"},
		{VariantAustral, StyleShort, "D5 5, Q1D 7620"},
	}
	for _, tt := range tests {
		if got := mustFormat(t, d, tt.variant, tt.style); got != tt.want {
			t.Errorf("Format(%q, %q) = %q, want %q", tt.variant, tt.style, got, tt.want)
		}
	}
}

func TestFormat_RederivesRegularNames(t *testing.T) {
	// A snapshot unified in short style still renders long on request.
	d := New()
	mustUnify(t, d, "2019-12-30", StyleShort)

	if got := mustFormat(t, d, VariantUnified, StyleLong); got != "Sixthday 18, Quarter four-E 7619" {
		t.Errorf("long = %q", got)
	}
	if got := mustFormat(t, d, VariantUnified, StyleShort); got != "D18 18, Q4E 7619" {
		t.Errorf("short = %q", got)
	}
	if got := mustFormat(t, d, VariantUnified, StyleISO); got != "7619-45-18" {
		t.Errorf("iso = %q", got)
	}
}

func TestFormat_FestiveRendersStoredName(t *testing.T) {
	// Festive days keep the month name captured at Unify time; only the
	// ISO form is style-independent.
	d := New()
	mustUnify(t, d, "2019-01-01", StyleShort)

	if got := mustFormat(t, d, VariantUnified, StyleShort); got != "Q10 7619" {
		t.Errorf("short = %q", got)
	}
	if got := mustFormat(t, d, VariantUnified, StyleLong); got != "Q10 7619" {
		t.Errorf("long after short unify = %q", got)
	}
	if got := mustFormat(t, d, VariantUnified, StyleISO); got != "7619-10-00" {
		t.Errorf("iso = %q", got)
	}
	// Regional snapshots are always built with long names.
	if got := mustFormat(t, d, VariantTerritorian, StyleLong); got != "Quarter one 7619" {
		t.Errorf("territorian = %q", got)
	}

	mustUnify(t, d, "2019-01-01", StyleLong)
	if got := mustFormat(t, d, VariantUnified, StyleShort); got != "Quarter one 7619" {
		t.Errorf("short after long unify = %q", got)
	}
}

func TestFormat_UnknownStyleFallsBackToLong(t *testing.T) {
	d := New()
	mustUnify(t, d, "2019-12-30", StyleLong)
	got, err := d.Format(VariantUnified, Style("fancy"))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got != "Sixthday 18, Quarter four-E 7619" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormat_UnknownVariant(t *testing.T) {
	d := New()
	mustUnify(t, d, "2019-12-30", StyleLong)
	_, err := d.Format(Variant("lunar"), StyleLong)
	assertErrIs(t, err, ErrInvalidVariant)
}

func TestFormat_BeforeUnify(t *testing.T) {
	d := New()
	_, err := d.Format(VariantUnified, StyleLong)
	assertErrIs(t, err, ErrNoDate)

	// The variant is checked before the populated state.
	_, err = d.Format(Variant("lunar"), StyleLong)
	assertErrIs(t, err, ErrInvalidVariant)
}

// --- Snapshot / Today / Display Tests ---

func TestSnapshot_BeforeUnify(t *testing.T) {
	d := New()
	_, err := d.Snapshot(VariantUnified)
	assertErrIs(t, err, ErrNoDate)
}

func TestToday(t *testing.T) {
	d, err := Today(StyleLong)
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if !d.Populated() {
		t.Error("expected populated instance")
	}
	if d.Style() != StyleLong {
		t.Errorf("style = %q", d.Style())
	}
	u, err := d.Snapshot(VariantUnified)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	// The year may roll over between the call and the check.
	if want := time.Now().Year() + 5600; u.Year != want && u.Year != want-1 {
		t.Errorf("unified year = %d, want about %d", u.Year, want)
	}
}

func TestDisplay(t *testing.T) {
	d := New()
	mustUnify(t, d, "2019-12-30", StyleLong)

	out := d.Display()
	for _, want := range []string{
		"2019-12-30",
		"Monday 30 of December, 2019",
		"7619-45-18",
		"D18 18, Q4E 7619",
		"Sixthday 18, Quarter four-E 7619",
		"Winter chill",
		"Summer break",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Display output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplay_BeforeUnify(t *testing.T) {
	if out := New().Display(); out != "" {
		t.Errorf("Display = %q, want empty", out)
	}
}
