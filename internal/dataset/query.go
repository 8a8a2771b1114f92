package dataset

import (
	"math"
	"sort"
	"strings"
)

// CategoryCount is one label/count pair produced by the grouping queries.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// View is a read-only subset of a Dataset. Views share the underlying
// records and are cheap to derive.
type View struct {
	dataset *Dataset
	records []Record
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.records) }

// Records exposes the view's records for read-only iteration.
func (v View) Records() []Record { return v.records }

// HasColumn reports whether the underlying source carried the named column.
func (v View) HasColumn(name string) bool { return v.dataset.HasColumn(name) }

// FilterYears narrows the view to records whose derived year is in the
// selection. A nil selection means "no filter"; an empty non-nil selection
// matches nothing, mirroring a fully-deselected year control. Records
// without a derived year never match.
func (v View) FilterYears(years []int) View {
	if years == nil {
		return v
	}
	selected := make(map[int]bool, len(years))
	for _, y := range years {
		selected[y] = true
	}
	var records []Record
	for _, r := range v.records {
		if r.Year != 0 && selected[r.Year] {
			records = append(records, r)
		}
	}
	return View{dataset: v.dataset, records: records}
}

// Years returns the distinct derived years present in the view, ascending.
func (v View) Years() []int {
	seen := make(map[int]bool)
	for _, r := range v.records {
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

// HasIndicatorFamily reports whether the source carried at least one
// aggregatable column of the prefixed indicator family.
func (v View) HasIndicatorFamily(prefix, excludedColumn string) bool {
	for _, col := range v.dataset.Columns() {
		if strings.HasPrefix(col, prefix) && col != excludedColumn {
			return true
		}
	}
	return false
}

// CountWhere counts records whose normalized cell in the given column holds
// the "present" code.
func (v View) CountWhere(column, code string) int {
	n := 0
	for _, r := range v.records {
		if r.Cell(column) == code {
			n++
		}
	}
	return n
}

// CountBy groups records by the label the extractor yields and counts each
// group in descending count order. Records yielding an empty label are
// skipped; zero-count groups cannot occur by construction.
func (v View) CountBy(label func(Record) string) []CategoryCount {
	counts := make(map[string]int)
	for _, r := range v.records {
		if l := label(r); l != "" {
			counts[l]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, CategoryCount{Label: l, Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// CountByOrdered groups like CountBy but returns one entry per label in the
// given natural order, zero counts included, for ordered categoricals such
// as age brackets.
func (v View) CountByOrdered(label func(Record) string, order []string) []CategoryCount {
	counts := make(map[string]int)
	for _, r := range v.records {
		if l := label(r); l != "" {
			counts[l]++
		}
	}
	out := make([]CategoryCount, 0, len(order))
	for _, l := range order {
		out = append(out, CategoryCount{Label: l, Count: counts[l]})
	}
	return out
}

// IndicatorGroup aggregates a family of binary indicator columns sharing a
// prefix: one count per column holding the "present" code, labeled by the
// prefix-stripped, title-cased column name. Zero-count entries are dropped.
// A positive topN truncates to the N largest counts; ordering is by strictly
// non-increasing count, ties broken by label for stable output.
func (v View) IndicatorGroup(prefix, excludedColumn string, topN int) []CategoryCount {
	var out []CategoryCount
	for _, col := range v.dataset.Columns() {
		if !strings.HasPrefix(col, prefix) || col == excludedColumn {
			continue
		}
		n := v.CountWhere(col, PresentCode)
		if n == 0 {
			continue
		}
		out = append(out, CategoryCount{Label: indicatorLabel(col, prefix), Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// IndicatorCounts counts the "present" code per listed column, dropping
// absent columns and zero counts, preserving the given order. Used for the
// fixed violence-type group where labels are curated rather than derived.
func (v View) IndicatorCounts(columns []ColumnLabel) []CategoryCount {
	var out []CategoryCount
	for _, cl := range columns {
		if !v.HasColumn(cl.Column) {
			continue
		}
		if n := v.CountWhere(cl.Column, PresentCode); n > 0 {
			out = append(out, CategoryCount{Label: cl.Label, Count: n})
		}
	}
	return out
}

// Percent expresses n as a percentage of the view size, rounded to one
// decimal place. An empty view yields exactly 0, never a division by zero.
func (v View) Percent(n int) float64 {
	if len(v.records) == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(len(v.records))*1000) / 10
}

// indicatorLabel strips the family prefix and title-cases the remainder,
// with underscores read as word breaks: "AG_ARMA_FOGO" -> "Arma Fogo".
func indicatorLabel(column, prefix string) string {
	words := strings.Split(strings.TrimPrefix(column, prefix), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
