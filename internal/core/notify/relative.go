package notify

import (
	"strconv"
	"time"
)

// DateLayout is the layout used for timestamps older than a day before yesterday.
const DateLayout = "1/2/2006"

// FormatRelativeTime renders ts relative to now:
//
//	under 1 minute   "Just now"
//	under 1 hour     "N minute(s) ago"
//	under 1 day      "N hour(s) ago"
//	previous day     "Yesterday"
//	anything older   "M/D/YYYY"
//
// Timestamps after now render as "Just now". The calendar comparison for
// "Yesterday" uses now's location.
func FormatRelativeTime(ts, now time.Time) string {
	diff := now.Sub(ts)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour") + " ago"
	}

	local := ts.In(now.Location())
	y, m, d := now.AddDate(0, 0, -1).Date()
	ly, lm, ld := local.Date()
	if y == ly && m == lm && d == ld {
		return "Yesterday"
	}

	return local.Format(DateLayout)
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
