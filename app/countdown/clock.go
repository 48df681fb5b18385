package countdown

import (
	"fmt"
	"time"

	// Target dates are always rendered in Europe/Rome; bundle the timezone
	// database so that holds on hosts without zoneinfo.
	_ "time/tzdata"
)

// ExpiredLabel is the fixed display string for a target that has passed.
const ExpiredLabel = "Evento concluso"

// displayZone is the single canonical zone for all target-date rendering,
// independent of the viewer's local time zone.
var displayZone *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		loc = time.FixedZone("CET", 60*60)
	}
	displayZone = loc
}

// DisplayZone returns the fixed zone used for all target-date rendering.
func DisplayZone() *time.Location {
	return displayZone
}

var monthNames = [12]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// MonthName returns the Italian name of a month.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// Remaining is the decomposed time left until a target instant.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Totals holds the same delta as whole-unit counts, not decomposed.
type Totals struct {
	Hours   int `json:"total_hours"`
	Minutes int `json:"total_minutes"`
	Seconds int `json:"total_seconds"`
}

// ParseTarget parses an absolute target instant. ok is false for values that
// do not parse; callers treat those exactly like already passed targets and
// never as errors. Date-only and zoneless values are read in Europe/Rome.
func ParseTarget(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, displayZone); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, displayZone); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// RemainingAt computes the breakdown of the time left until target. ok is
// false when the target has passed or does not parse.
func RemainingAt(target string, now time.Time) (Remaining, bool) {
	t, ok := ParseTarget(target)
	if !ok {
		return Remaining{}, false
	}
	delta := t.Sub(now)
	if delta <= 0 {
		return Remaining{}, false
	}
	total := int64(delta / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}, true
}

// TotalsAt computes the same delta as whole hours, minutes and seconds,
// under the same expiry rule as RemainingAt.
func TotalsAt(target string, now time.Time) (Totals, bool) {
	t, ok := ParseTarget(target)
	if !ok {
		return Totals{}, false
	}
	delta := t.Sub(now)
	if delta <= 0 {
		return Totals{}, false
	}
	total := int64(delta / time.Second)
	return Totals{
		Hours:   int(total / 3600),
		Minutes: int(total / 60),
		Seconds: int(total),
	}, true
}

// FormatRemainingAt renders the remaining time as "N giorni HH:MM:SS", or
// the concluded label once the target has passed.
func FormatRemainingAt(target string, now time.Time) string {
	r, ok := RemainingAt(target, now)
	if !ok {
		return ExpiredLabel
	}
	return fmt.Sprintf("%d giorni %02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// FormatTarget renders the absolute target instant in the display zone, e.g.
// "08 giugno 2026, 00:00". Unparseable targets render empty.
func FormatTarget(target string) string {
	t, ok := ParseTarget(target)
	if !ok {
		return ""
	}
	t = t.In(displayZone)
	return fmt.Sprintf("%02d %s %d, %02d:%02d", t.Day(), MonthName(t.Month()), t.Year(), t.Hour(), t.Minute())
}
