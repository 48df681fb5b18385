package search

import (
	"fmt"
	"strings"

	"github.com/01001010100011/scolamia.it/app/countdown"
)

// DateTokens renders one instant in the written forms a user may type when
// searching for a date: zero-padded numeric, plain numeric, and two long
// spellings with the Italian month name, space-joined. Everything is
// rendered in the site display zone. Unparseable input yields "".
func DateTokens(value string) string {
	t, ok := countdown.ParseTarget(value)
	if !ok {
		return ""
	}
	t = t.In(countdown.DisplayZone())

	day, month, year := t.Day(), int(t.Month()), t.Year()
	monthName := countdown.MonthName(t.Month())

	return strings.Join([]string{
		fmt.Sprintf("%02d/%02d/%d", day, month, year),
		fmt.Sprintf("%d/%d/%d", day, month, year),
		fmt.Sprintf("%d %s %d", day, monthName, year),
		fmt.Sprintf("%d %s", day, monthName),
	}, " ")
}
