package cache

import (
	"time"
	_ "time/tzdata" // America/New_York must resolve on hosts without zoneinfo
)

// refreshHour is when the previous session's daily closes are final.
const refreshHour = 6

var marketLocation = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// TimeUntilNextRefresh returns the time from now until the next 06:00 in New York.
func TimeUntilNextRefresh(now time.Time) time.Duration {
	local := now.In(marketLocation)
	next := time.Date(local.Year(), local.Month(), local.Day(), refreshHour, 0, 0, 0, marketLocation)

	// Use tomorrow when today's refresh has already passed
	if !local.Before(next) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, refreshHour, 0, 0, 0, marketLocation)
	}
	return next.Sub(now)
}
