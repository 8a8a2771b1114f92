package dataset

import (
	"math"
	"sort"
	"time"
)

// AgeUnknown marks a record whose age could not be derived because either
// the notification date or the birth date is missing.
const AgeUnknown = -1

// AgeBracket is an ordered, mutually exclusive partition of the age domain.
type AgeBracket struct {
	Label string
	// Min and Max bound the bracket, right-closed.
	Min, Max int
}

// ageBrackets holds the five brackets in ascending order. Ages outside
// [0,120] receive no bracket.
var ageBrackets = []AgeBracket{
	{Label: "Child (0-9)", Min: 0, Max: 9},
	{Label: "Adolescent (10-19)", Min: 10, Max: 19},
	{Label: "Young adult (20-24)", Min: 20, Max: 24},
	{Label: "Adult (25-59)", Min: 25, Max: 59},
	{Label: "Elderly (60+)", Min: 60, Max: 120},
}

// AgeBracketLabels returns the bracket labels in ascending age order.
func AgeBracketLabels() []string {
	labels := make([]string, len(ageBrackets))
	for i, b := range ageBrackets {
		labels[i] = b.Label
	}
	return labels
}

// BracketForAge maps an age in whole years to its bracket label. The empty
// string means the age falls outside the bracketed domain (or is unknown).
func BracketForAge(age int) string {
	if age == AgeUnknown {
		return ""
	}
	for _, b := range ageBrackets {
		if age >= b.Min && age <= b.Max {
			return b.Label
		}
	}
	return ""
}

// AgeAt computes the age in whole years between birth and a reference date,
// as the floor of the elapsed days divided by the mean year length.
func AgeAt(birth, ref time.Time) int {
	days := ref.Sub(birth).Hours() / 24
	return int(math.Floor(days / 365.25))
}

// Record is one enriched notification row: the normalized raw cells keyed by
// column header, plus the derived fields computed by the pipeline. Zero-value
// dates mean the source value was missing or unparseable.
type Record struct {
	cells map[string]string

	NotificationDate time.Time
	BirthDate        time.Time
	OccurrenceDate   time.Time

	// Year is the calendar year of the notification date, 0 when the date
	// could not be parsed. Such records never match a year filter.
	Year int

	// Age at notification in whole years, AgeUnknown when underivable.
	Age int

	// AgeBracket is empty when the age is unknown or outside [0,120].
	AgeBracket string

	MaritalStatus      string
	PerpetratorSex     string
	PerpetratorAlcohol string
}

// Cell returns the normalized raw cell for a column, empty when absent.
func (r Record) Cell(column string) string {
	return r.cells[column]
}

// Dataset is the enriched table. It is immutable after construction;
// presentation code reads it exclusively through View queries.
type Dataset struct {
	columns   []string
	columnSet map[string]bool
	records   []Record
}

// Columns returns the source column headers in workbook order.
func (d *Dataset) Columns() []string { return d.columns }

// HasColumn reports whether the source carried the named column. Derivations
// and charts that depend on an absent column are skipped, not failed.
func (d *Dataset) HasColumn(name string) bool { return d.columnSet[name] }

// Len returns the number of enriched records.
func (d *Dataset) Len() int { return len(d.records) }

// All returns a view over every record.
func (d *Dataset) All() View {
	return View{dataset: d, records: d.records}
}

// Years returns the distinct derived notification years in ascending order.
// Records without a parseable notification date contribute nothing.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	for _, r := range d.records {
		if r.Year != 0 {
			seen[r.Year] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
