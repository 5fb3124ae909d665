package timeutil

import (
	"time"
)

// KST is the Korea Standard Time location (UTC+9). All business
// timestamps (order dates, receipt dates, issuance stamps) use KST.
var KST *time.Location

func init() {
	var err error
	KST, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		// Fallback: create fixed zone if Asia/Seoul not available
		KST = time.FixedZone("KST", 9*60*60)
	}
}

// Now returns the current time in KST
func Now() time.Time {
	return time.Now().In(KST)
}

// ToKST converts any time to KST
func ToKST(t time.Time) time.Time {
	return t.In(KST)
}

// ParseDate parses a YYYY-MM-DD date string in KST
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, KST)
}

// StartOfDay returns the start of day (00:00:00) in KST for the given time
func StartOfDay(t time.Time) time.Time {
	kst := t.In(KST)
	return time.Date(kst.Year(), kst.Month(), kst.Day(), 0, 0, 0, 0, KST)
}
