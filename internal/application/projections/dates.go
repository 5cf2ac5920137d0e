// Package projections derives read-only views from the mirrors:
// filtered lists, the birthday board and the CSV reports. Everything
// here is a pure function over snapshots.
package projections

import (
	"fmt"
	"time"
)

// FormatDisplayDate converts an ISO date (yyyy-mm-dd) to the display
// form dd/mm/yyyy. Anything unparseable is returned unchanged.
func FormatDisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// ParseCalendarDate accepts both stored date shapes, dd/mm/yyyy and
// yyyy-mm-dd. ok is false when neither parses.
func ParseCalendarDate(s string) (time.Time, bool) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameCalendarDay compares two date strings as calendar dates, so
// "05/03/2025" and "2025-03-05" match.
func SameCalendarDay(a, b string) bool {
	ta, okA := ParseCalendarDate(a)
	tb, okB := ParseCalendarDate(b)
	if !okA || !okB {
		return false
	}
	return ta.Year() == tb.Year() && ta.Month() == tb.Month() && ta.Day() == tb.Day()
}

// WhatsAppCountryCode prefixes every greeting link. Phones are stored
// as national numbers (Brazil).
const WhatsAppCountryCode = "55"

// WhatsAppLink builds a wa.me link from a free-form phone, keeping
// digits only. Empty when the phone has no digits.
func WhatsAppLink(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) == 0 {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s%s", WhatsAppCountryCode, digits)
}
