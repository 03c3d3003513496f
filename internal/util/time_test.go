package util

import (
	"testing"
	"time"
)

func TestTomorrowCutoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "Mid-day",
			now:  time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC),
			hour: 16,
			want: time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC),
		},
		{
			name: "Month rollover",
			now:  time.Date(2026, 10, 31, 23, 59, 0, 0, time.UTC),
			hour: 12,
			want: time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "Year rollover",
			now:  time.Date(2026, 12, 31, 8, 0, 0, 0, time.UTC),
			hour: 22,
			want: time.Date(2027, 1, 1, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TomorrowCutoff(tt.now, tt.hour); !got.Equal(tt.want) {
				t.Errorf("TomorrowCutoff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCutoffCaption(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	got := CutoffCaption(now, 16, "")
	want := "Cutoff set to 16:00 tomorrow (2026-10-20)."
	if got != want {
		t.Errorf("CutoffCaption() = %q, want %q", got, want)
	}

	got = CutoffCaption(now, 12, "02/01/2006")
	want = "Cutoff set to 12:00 tomorrow (20/10/2026)."
	if got != want {
		t.Errorf("CutoffCaption() = %q, want %q", got, want)
	}
}

func TestClocks(t *testing.T) {
	fixed := FixedClock{T: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	if !fixed.Now().Equal(fixed.T) {
		t.Error("FixedClock should return its instant")
	}

	before := time.Now()
	got := SystemClock{}.Now()
	if got.Before(before) {
		t.Error("SystemClock returned a time in the past")
	}
}
