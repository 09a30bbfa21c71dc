package record

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-day format used everywhere a record
// stores a date.
const DateLayout = "2006-01-02"

// dateLayouts are the accepted input shapes, tried in order. The canonical
// layout comes first so normalized values pass through untouched.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// NormalizeDate coerces timestamps, date strings, and numeric epoch values
// into YYYY-MM-DD. Unparseable input yields the empty string, never an error.
func NormalizeDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return NormalizeDate(*v)
	case string:
		return normalizeDateString(v)
	case int64:
		return epochToDate(v)
	case int:
		return epochToDate(int64(v))
	case float64:
		return epochToDate(int64(v))
	default:
		return ""
	}
}

func normalizeDateString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return epochToDate(n)
	}
	return ""
}

// epochToDate treats values above 1e11 as epoch milliseconds, otherwise as
// epoch seconds.
func epochToDate(n int64) string {
	if n <= 0 {
		return ""
	}
	if n > 1e11 {
		return time.UnixMilli(n).UTC().Format(DateLayout)
	}
	return time.Unix(n, 0).UTC().Format(DateLayout)
}

// AddOneYear returns the same month and day one calendar year after d.
// Feb-29 inputs roll over to Mar-1 by standard date normalization. An empty
// or unparseable input yields the empty string.
func AddOneYear(d string) string {
	day := normalizeDateString(d)
	if day == "" {
		return ""
	}
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return time.Date(t.Year()+1, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// CombineInspectors joins the non-blank inspector names with ", ",
// preserving their 1-2-3 order.
func CombineInspectors(first, second, third string) string {
	names := make([]string, 0, 3)
	for _, name := range []string{first, second, third} {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return strings.Join(names, ", ")
}

// Refresh recomputes every derived field in place. It is the single
// consolidation point for auto-derivation and is invoked at each mutation
// boundary (create, update, renew, import) so the persisted values can never
// drift from their sources.
func Refresh(r *Record) {
	r.DateInspected = NormalizeDate(r.DateInspected)
	r.DateReinspected = NormalizeDate(r.DateReinspected)
	r.ORDate = NormalizeDate(r.ORDate)
	r.FSICValidity = AddOneYear(r.DateInspected)
	r.Inspectors = CombineInspectors(r.Inspector1, r.Inspector2, r.Inspector3)
}
