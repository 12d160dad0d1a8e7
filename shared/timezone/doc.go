// Package timezone pins the application to one IANA zone, configured through APP_TIMEZONE.
//
// Booking dates are calendar days and carry no zone of their own. The zone only decides which
// day "today" is when a service asks its Clock, e.g. whether a check-in is already in the past
// or a confirmed stay has ended. Services never call time.Now directly:
//
//	clock := timezone.NewClock()          // production
//	clock := timezone.FixedClock(someDay) // tests
//
// Timestamps in API responses go through Format so they render in the same zone.
package timezone
