package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"bikeshare/internal/statistics"
	"bikeshare/pkg/contracts/domain"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// SeparatorWidth is the width of the rule printed after every section
const SeparatorWidth = 40

// Printer writes human-readable output
type Printer struct {
	out     io.Writer
	heading *color.Color
	label   *color.Color
	warn    *color.Color
	failure *color.Color
	prompt  *color.Color
}

// NewPrinter creates a printer; useColor=false strips every escape sequence
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Bold),
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		prompt:  color.New(color.FgGreen),
	}
	if !useColor {
		for _, c := range []*color.Color{p.heading, p.label, p.warn, p.failure, p.prompt} {
			c.DisableColor()
		}
	}
	return p
}

// Welcome prints the greeting shown once per program run
func (p *Printer) Welcome() {
	p.heading.Fprintln(p.out, "Hello! Let's explore some US bikeshare data!")
}

// Prompt prints a question without a trailing newline
func (p *Printer) Prompt(question string) {
	p.prompt.Fprintf(p.out, "\n%s\n> ", question)
}

// Warn prints a recoverable problem, such as an unrecognised answer
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintf(p.out, format+"\n", args...)
}

// Error prints a failure that ended the current session
func (p *Printer) Error(format string, args ...any) {
	p.failure.Fprintf(p.out, format+"\n", args...)
}

// Separator prints the section rule
func (p *Printer) Separator() {
	fmt.Fprintln(p.out, strings.Repeat("-", SeparatorWidth))
}

// Selection summarises what was loaded
func (p *Printer) Selection(cityName string, table *domain.Table) {
	sel := table.Selection
	fmt.Fprintf(p.out, "\n%s | month: %s | day: %s | %d trips\n", cityName, orAll(sel.Month), orAll(sel.Day), table.Len())
	p.Separator()
}

// Time prints the most frequent times of travel
func (p *Printer) Time(res *statistics.TimeResult) {
	p.section("Calculating The Most Frequent Times of Travel...")
	p.field("Most Popular Month", res.Month.String())
	p.field("Most Popular Day", res.Weekday.String())
	p.field("Most Popular Start Hour", strconv.Itoa(res.Hour))
	p.elapsed(res.Elapsed)
}

// Stations prints the most popular stations and trip
func (p *Printer) Stations(res *statistics.StationResult) {
	p.section("Calculating The Most Popular Stations and Trip...")
	p.field("Most Popular Start Station", res.StartStation)
	p.field("Most Popular End Station", res.EndStation)
	p.field("Most Popular Trip", res.Route)
	p.elapsed(res.Elapsed)
}

// Durations prints total and average trip duration
func (p *Printer) Durations(res *statistics.DurationResult) {
	p.section("Calculating Trip Duration...")
	p.field("Total Time", res.Total.String())
	p.field("Average Time", res.Mean.String())
	p.elapsed(res.Elapsed)
}

// Users prints the user type and gender breakdowns and birth year summary
func (p *Printer) Users(res *statistics.UserResult) {
	p.section("Calculating User Stats...")
	p.counts("User Type", res.UserTypes)
	p.counts("Gender", res.Genders)

	by := res.BirthYear
	if by.Available {
		p.field("Earliest Birth Year", strconv.Itoa(by.Earliest))
		p.field("Most Recent Birth Year", strconv.Itoa(by.MostRecent))
		p.field("Most Common Birth Year", strconv.Itoa(by.MostCommon))
	} else {
		p.field("Birth Year", "no data")
	}
	if by.Unspecified > 0 {
		p.field("Unspecified Birth Year", fmt.Sprintf("%d trips", by.Unspecified))
	}
	p.elapsed(res.Elapsed)
}

// Record prints one raw trip record
func (p *Printer) Record(rec statistics.RawRecord) {
	fmt.Fprintln(p.out)
	p.field("Birth Year", strconv.Itoa(rec.BirthYear))
	p.field("Gender", rec.Gender)
	p.field("Start Station", rec.StartStation)
	p.field("Trip Duration in Seconds", strconv.FormatInt(int64(math.Floor(rec.Duration)), 10))
	p.field("User Type", rec.UserType)
}

func (p *Printer) section(title string) {
	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, title)
	fmt.Fprintln(p.out)
}

func (p *Printer) field(name, value string) {
	p.label.Fprintf(p.out, "%s:", name)
	fmt.Fprintf(p.out, " %s\n", value)
}

func (p *Printer) elapsed(d time.Duration) {
	fmt.Fprintf(p.out, "\nThis took %f seconds.\n", d.Seconds())
	p.Separator()
}

func (p *Printer) counts(name string, counts []statistics.Count[string]) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{name, "Count"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, c := range counts {
		value := c.Value
		if value == "" {
			value = "(blank)"
		}
		table.Append([]string{value, strconv.Itoa(c.Count)})
	}
	table.Render()
}

func orAll(code string) string {
	if code == "" {
		return domain.AllCode
	}
	return code
}
