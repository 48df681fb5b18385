package countdown

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func TestRemainingAt_Decomposition(t *testing.T) {
	cases := []struct {
		name    string
		offset  time.Duration
		want    Remaining
	}{
		{"one second", time.Second, Remaining{0, 0, 0, 1}},
		{"one minute", time.Minute, Remaining{0, 0, 1, 0}},
		{"90 seconds", 90 * time.Second, Remaining{0, 0, 1, 30}},
		{"one day", 24 * time.Hour, Remaining{1, 0, 0, 0}},
		{"mixed", 49*time.Hour + 61*time.Second, Remaining{2, 1, 1, 1}},
	}

	for _, tc := range cases {
		target := testNow.Add(tc.offset).Format(time.RFC3339)
		got, ok := RemainingAt(target, testNow)
		if !ok {
			t.Errorf("%s: expected a future breakdown, got expired", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestRemainingAt_RecomposesToTotalSeconds(t *testing.T) {
	offsets := []time.Duration{
		time.Second,
		17 * time.Minute,
		3*time.Hour + 2*time.Second,
		100*24*time.Hour + 5*time.Hour + 59*time.Minute + 59*time.Second,
	}

	for _, offset := range offsets {
		target := testNow.Add(offset).Format(time.RFC3339)
		r, ok := RemainingAt(target, testNow)
		if !ok {
			t.Fatalf("offset %v: unexpectedly expired", offset)
		}
		recomposed := r.Days*86400 + r.Hours*3600 + r.Minutes*60 + r.Seconds
		if int64(recomposed) != int64(offset/time.Second) {
			t.Errorf("offset %v: recomposed %d seconds, expected %d", offset, recomposed, int64(offset/time.Second))
		}
		if r.Hours < 0 || r.Hours > 23 || r.Minutes < 0 || r.Minutes > 59 || r.Seconds < 0 || r.Seconds > 59 {
			t.Errorf("offset %v: component out of range: %+v", offset, r)
		}
	}
}

func TestRemainingAt_Expired(t *testing.T) {
	past := testNow.Add(-time.Hour).Format(time.RFC3339)
	if _, ok := RemainingAt(past, testNow); ok {
		t.Error("past target should be expired")
	}
	same := testNow.Format(time.RFC3339)
	if _, ok := RemainingAt(same, testNow); ok {
		t.Error("target equal to now should be expired")
	}
}

func TestRemainingAt_Unparseable(t *testing.T) {
	for _, target := range []string{"", "not-a-date", "2026-13-45T99:00:00Z"} {
		if _, ok := RemainingAt(target, testNow); ok {
			t.Errorf("unparseable target %q should behave as expired", target)
		}
		if _, ok := TotalsAt(target, testNow); ok {
			t.Errorf("unparseable target %q should behave as expired for totals", target)
		}
	}
}

func TestTotalsAt(t *testing.T) {
	target := testNow.Add(25*time.Hour + 30*time.Minute).Format(time.RFC3339)
	totals, ok := TotalsAt(target, testNow)
	if !ok {
		t.Fatal("expected totals for a future target")
	}
	if totals.Hours != 25 {
		t.Errorf("expected 25 total hours, got %d", totals.Hours)
	}
	if totals.Minutes != 25*60+30 {
		t.Errorf("expected %d total minutes, got %d", 25*60+30, totals.Minutes)
	}
	if totals.Seconds != (25*60+30)*60 {
		t.Errorf("expected %d total seconds, got %d", (25*60+30)*60, totals.Seconds)
	}

	if _, ok := TotalsAt(testNow.Add(-time.Minute).Format(time.RFC3339), testNow); ok {
		t.Error("past target should be expired for totals")
	}
}

func TestFormatRemainingAt(t *testing.T) {
	target := testNow.Add(49*time.Hour + 5*time.Minute + 7*time.Second).Format(time.RFC3339)
	got := FormatRemainingAt(target, testNow)
	if got != "2 giorni 01:05:07" {
		t.Errorf("expected '2 giorni 01:05:07', got %q", got)
	}

	if got := FormatRemainingAt("2000-01-01T00:00:00Z", testNow); got != ExpiredLabel {
		t.Errorf("expected %q for a past target, got %q", ExpiredLabel, got)
	}
	if got := FormatRemainingAt("garbage", testNow); got != ExpiredLabel {
		t.Errorf("expected %q for an unparseable target, got %q", ExpiredLabel, got)
	}
}

func TestFormatTarget_FixedDisplayZone(t *testing.T) {
	// Same instant written with two different offsets renders identically.
	got := FormatTarget("2026-06-08T00:00:00+02:00")
	if got != "08 giugno 2026, 00:00" {
		t.Errorf("expected '08 giugno 2026, 00:00', got %q", got)
	}
	alt := FormatTarget("2026-06-07T22:00:00Z")
	if alt != got {
		t.Errorf("expected identical rendering regardless of input offset, got %q and %q", got, alt)
	}

	if got := FormatTarget("nonsense"); got != "" {
		t.Errorf("expected empty rendering for unparseable target, got %q", got)
	}
}

func TestParseTarget_DateOnlyInDisplayZone(t *testing.T) {
	parsed, ok := ParseTarget("2026-06-08")
	if !ok {
		t.Fatal("date-only value should parse")
	}
	if parsed.Location() != DisplayZone() {
		t.Errorf("date-only value should be read in the display zone, got %v", parsed.Location())
	}
}
