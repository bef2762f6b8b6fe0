package user

import "time"

// tokenExpired reports whether a lazily checked token deadline has passed.
// Expired tokens stay inert in the document until the next request touches
// them; there is no background sweep.
func tokenExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// withinRateWindow reports whether a record was mutated recently enough to
// reject a repeated sensitive request. The record's updatedAt doubles as the
// rate-limit basis instead of a dedicated counter store.
func withinRateWindow(updatedAt time.Time, window time.Duration, now time.Time) bool {
	return now.Sub(updatedAt) < window
}
