// Package main is the Unical command-line tool. It drives the calendar
// engine directly, without a server: convert a Gregorian date, reverse a
// Unified one, or print calendar listings to the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/keyxmakerx/unical/internal/unidate"
	"github.com/keyxmakerx/unical/internal/variants"
)

const usage = `Usage: unical <command> [flags]

Commands:
  today                     show today's date in the Unified calendar
  convert <YYYY-MM-DD>      convert a Gregorian date
  reverse <YYYY-QM-DD>      convert a Unified ISO date back to Gregorian
  reverse-year <year>       convert a Unified year back to Gregorian
  calendar <year>           list every day of a Gregorian year
  month <year> <month>      list the days of one Gregorian month
  festive <year>            list the festive markers of a Gregorian year
  variants                  list the regional naming variants

Flags for calendar, month and convert:
  -variant   unified | territorian | austral   (default unified)
  -style     long | short | iso                (default long)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "today":
		err = runToday()
	case "convert":
		err = runConvert(args)
	case "reverse":
		err = runReverse(args)
	case "reverse-year":
		err = runReverseYear(args)
	case "calendar":
		err = runCalendar(args)
	case "month":
		err = runMonth(args)
	case "festive":
		err = runFestive(args)
	case "variants":
		err = runVariants()
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unical: unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "unical: %v\n", err)
		os.Exit(1)
	}
}

// renderFlags parses the shared -variant and -style flags from args and
// returns the remaining positional arguments.
func renderFlags(name string, args []string) (unidate.Variant, unidate.Style, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	variantFlag := fs.String("variant", "unified", "naming variant: unified, territorian, austral")
	styleFlag := fs.String("style", "long", "rendering style: long, short, iso")
	if err := fs.Parse(args); err != nil {
		return "", "", nil, err
	}

	variant, err := unidate.ParseVariant(*variantFlag)
	if err != nil {
		return "", "", nil, err
	}
	style, err := unidate.ParseStyle(*styleFlag)
	if err != nil {
		return "", "", nil, err
	}
	return variant, style, fs.Args(), nil
}

func runToday() error {
	d, err := unidate.Today(unidate.StyleShort)
	if err != nil {
		return err
	}
	short, err := d.Format(unidate.VariantUnified, unidate.StyleShort)
	if err != nil {
		return err
	}
	fmt.Printf("G'day! Today is: %s\n\n%s", short, d.Display())
	return nil
}

func runConvert(args []string) error {
	variant, style, rest, err := renderFlags("convert", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("convert needs exactly one Gregorian date (YYYY-MM-DD)")
	}

	d := unidate.New()
	if _, err := d.Unify(rest[0], style); err != nil {
		return err
	}
	if variant != unidate.VariantUnified {
		rendered, err := d.Format(variant, style)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}
	fmt.Print(d.Display())
	return nil
}

func runReverse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("reverse needs exactly one Unified ISO date (YYYY-QM-DD)")
	}

	d := unidate.New()
	g, err := d.ReverseUnidate(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s is Gregorian %s\n\n%s", args[0], g.Format("2006-01-02"), d.Display())
	return nil
}

func runReverseYear(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("reverse-year needs exactly one Unified year")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not a valid year", args[0])
	}

	g, err := unidate.ReverseYear(year)
	if err != nil {
		return err
	}
	fmt.Printf("Unified year %d is Gregorian year %d\n", year, g)
	return nil
}

func runCalendar(args []string) error {
	variant, style, rest, err := renderFlags("calendar", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("calendar needs exactly one Gregorian year")
	}
	year, err := strconv.Atoi(rest[0])
	if err != nil {
		return fmt.Errorf("%q is not a valid year", rest[0])
	}

	days, err := unidate.YearCalendar(year, variant, style)
	if err != nil {
		return err
	}
	printDays(days)
	return nil
}

func runMonth(args []string) error {
	variant, style, rest, err := renderFlags("month", args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("month needs a Gregorian year and month")
	}
	year, err := strconv.Atoi(rest[0])
	if err != nil {
		return fmt.Errorf("%q is not a valid year", rest[0])
	}
	month, err := strconv.Atoi(rest[1])
	if err != nil {
		return fmt.Errorf("%q is not a valid month", rest[1])
	}

	days, err := unidate.MonthView(year, month, variant, style)
	if err != nil {
		return err
	}
	printDays(days)
	return nil
}

func runFestive(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("festive needs exactly one Gregorian year")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not a valid year", args[0])
	}

	days, err := unidate.FestiveDates(year)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GREGORIAN\tISO\tNAME\tSHORT")
	for _, day := range days {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", day.Gregorian, day.ISO, day.Name, day.Short)
	}
	return w.Flush()
}

func runVariants() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHEMISPHERE\tSTATUS\tDESCRIPTION")
	for _, v := range variants.Registry() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Hemisphere, v.Status, v.Description)
	}
	return w.Flush()
}

func printDays(days []unidate.CalendarDay) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GREGORIAN\tISO\tRENDERED")
	for _, day := range days {
		fmt.Fprintf(w, "%s\t%s\t%s\n", day.Gregorian, day.ISO, day.Rendered)
	}
	w.Flush()
}
