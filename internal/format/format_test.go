package format

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0 min"},
		{29999, "0 min"},
		{180000, "3 min"},
		{59 * 60000, "59 min"},
		{60 * 60000, "1h"},
		{(2*60 + 5) * 60000, "2h 5m"},
		{23*3600000 + 59*60000, "23h 59m"},
		{24 * 3600000, "1 days"},
		{(2*24 + 4) * 3600000, "2d 4h"},
		{(3*24)*3600000 + 30*60000, "3 days"},
	}
	for _, tc := range tests {
		if got := Duration(tc.ms); got != tc.want {
			t.Errorf("Duration(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	if got := Number(1234567); got != "1,234,567" {
		t.Errorf("Number(1234567) = %q", got)
	}
	if got := Number(int64(999)); got != "999" {
		t.Errorf("Number(999) = %q", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)
	if got := Date(d); got != "Mar 5, 2024" {
		t.Errorf("Date = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(33.333); got != "33.3%" {
		t.Errorf("Percent = %q", got)
	}
}
