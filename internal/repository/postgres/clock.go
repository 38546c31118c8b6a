package postgres

import "time"

// dbNow is the current time at the precision timestamptz stores, so values
// handed back to callers equal what a later read returns.
func dbNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
