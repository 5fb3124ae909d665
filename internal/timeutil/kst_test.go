package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("parsed %v, want 2025-03-15", got)
	}
	if _, offset := got.Zone(); offset != 9*60*60 {
		t.Errorf("offset = %d, want +9h", offset)
	}

	if _, err := ParseDate("15/03/2025"); err == nil {
		t.Error("non-ISO date accepted")
	}
}

func TestToKSTPreservesInstant(t *testing.T) {
	utc := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	kst := ToKST(utc)

	if !kst.Equal(utc) {
		t.Error("ToKST changed the instant")
	}
	// 23:00 UTC is 08:00 the next day in Seoul
	if kst.Day() != 15 || kst.Hour() != 8 {
		t.Errorf("ToKST = %v, want 2025-03-15 08:00 KST", kst)
	}
}

func TestStartOfDay(t *testing.T) {
	// 23:00 UTC on the 14th falls on the 15th in KST
	utc := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	start := StartOfDay(utc)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay time = %v, want midnight", start)
	}
	if start.Day() != 15 {
		t.Errorf("StartOfDay day = %d, want 15 (KST date)", start.Day())
	}
}
