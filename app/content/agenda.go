package content

import (
	"regexp"
	"sort"
	"strings"
)

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyDateRe   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	digitsPadRe = regexp.MustCompile(`^\d$`)
)

// NormalizeAgendaDate reduces the loose date formats found in agenda rows
// to yyyy-mm-dd: ISO dates pass through, ISO timestamps are truncated, and
// dd/mm/yyyy (or dd-mm-yyyy) is reordered. Anything else is returned as is.
func NormalizeAgendaDate(value string) string {
	v := strings.TrimSpace(value)
	if isoDateRe.MatchString(v) {
		return v
	}
	if idx := strings.IndexByte(v, 'T'); idx == 10 && isoDateRe.MatchString(v[:10]) {
		return v[:10]
	}
	if m := dmyDateRe.FindStringSubmatch(v); m != nil {
		return m[3] + "-" + pad2(m[2]) + "-" + pad2(m[1])
	}
	return v
}

func pad2(s string) string {
	if digitsPadRe.MatchString(s) {
		return "0" + s
	}
	return s
}

// agendaSortValue is a lexicographically sortable key for an agenda event.
// Events whose date does not normalize to yyyy-mm-dd sort after every dated
// event.
func agendaSortValue(e AgendaEvent) string {
	d := NormalizeAgendaDate(e.Date)
	if isoDateRe.MatchString(d) {
		return d
	}
	return "9999-99-99|" + d
}

// SortAgendaByDate returns a copy sorted soonest first, undated rows last.
func SortAgendaByDate(events []AgendaEvent) []AgendaEvent {
	out := make([]AgendaEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return agendaSortValue(out[i]) < agendaSortValue(out[j])
	})
	return out
}

// UpcomingAgenda returns at most n events on or after today (yyyy-mm-dd),
// soonest first. Undated rows never qualify as upcoming.
func UpcomingAgenda(events []AgendaEvent, today string, n int) []AgendaEvent {
	sorted := SortAgendaByDate(events)
	out := make([]AgendaEvent, 0, n)
	for _, e := range sorted {
		d := NormalizeAgendaDate(e.Date)
		if !isoDateRe.MatchString(d) || d < today {
			continue
		}
		out = append(out, e)
		if len(out) == n {
			break
		}
	}
	return out
}
