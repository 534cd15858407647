package utils

import "time"

const ISODate = "2006-01-02"

// AddDaysISO shifts an ISO date (YYYY-MM-DD) by the given number of days.
// A date that does not parse is returned unchanged; callers are expected to
// have validated form input before deriving day dates.
func AddDaysISO(date string, days int) string {
	t, err := time.Parse(ISODate, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(ISODate)
}

// ValidISODate reports whether the value parses as YYYY-MM-DD.
func ValidISODate(date string) bool {
	_, err := time.Parse(ISODate, date)
	return err == nil
}
