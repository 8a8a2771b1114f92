package dataset

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date cell. SINAN exports
// carry either ISO or Brazilian day-first forms depending on the exporting
// tool; Excel date cells read as text may also surface as serial numbers,
// handled separately in parseDate.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2-Jan-06",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate parses a normalized date cell, returning the zero time when the
// value is empty or unparseable. Unparseable dates never fail the row.
func parseDate(cell string) time.Time {
	if cell == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	// Excel serial date, days since the 1900 epoch.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 60 && serial < 200000 {
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	}
	return time.Time{}
}

// normalizeCell trims a raw cell and collapses integral floats ("2.0") to
// their integer form so code lookups see a single encoding.
func normalizeCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" || !strings.Contains(cell, ".") {
		return cell
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return cell
}

// Build runs the preparation pipeline over an already-extracted table:
// population filter, date normalization, year/age/bracket derivation and
// categorical decoding. Rows longer than the header are truncated, shorter
// ones padded with empty cells. Build is total: malformed cells degrade to
// the explicit unknown markers instead of failing the row.
func Build(columns []string, rows [][]string) *Dataset {
	columnSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		columnSet[c] = true
	}

	d := &Dataset{
		columns:   columns,
		columnSet: columnSet,
		records:   make([]Record, 0, len(rows)),
	}

	for _, row := range rows {
		cells := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				cells[col] = normalizeCell(row[i])
			} else {
				cells[col] = ""
			}
		}

		// Population filter: female-coded records only. When the source has
		// no sex column the filter is skipped entirely, a defined permissive
		// fallback rather than an error.
		if columnSet[ColSex] && !IsFemaleCode(cells[ColSex]) {
			continue
		}

		r := Record{
			cells:            cells,
			NotificationDate: parseDate(cells[ColNotificationDate]),
			BirthDate:        parseDate(cells[ColBirthDate]),
			OccurrenceDate:   parseDate(cells[ColOccurrenceDate]),
			Age:              AgeUnknown,
		}

		if !r.NotificationDate.IsZero() {
			r.Year = r.NotificationDate.Year()
		}
		if !r.NotificationDate.IsZero() && !r.BirthDate.IsZero() {
			r.Age = AgeAt(r.BirthDate, r.NotificationDate)
		}
		r.AgeBracket = BracketForAge(r.Age)

		if columnSet[ColPerpetratorAlcohol] {
			r.PerpetratorAlcohol = DecodeYesNo(cells[ColPerpetratorAlcohol])
		}
		if columnSet[ColMaritalStatus] {
			r.MaritalStatus = DecodeMaritalStatus(cells[ColMaritalStatus])
		}
		if columnSet[ColPerpetratorSex] {
			r.PerpetratorSex = DecodePerpetratorSex(cells[ColPerpetratorSex])
		}

		d.records = append(d.records, r)
	}

	return d
}
