package leave

import "time"

// Pure validation helpers for the request workflow. All comparisons are at
// day granularity; time-of-day never participates.

const dateLayout = "2006-01-02"

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDayCount counts calendar days in [start, end], both ends
// included. A single-day request yields 1.
func InclusiveDayCount(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	return int(end.Sub(start).Hours()/24) + 1
}

// ValidateDateRange reports whether both ends of the range are today or
// later. It intentionally does NOT require end >= start: the range-order
// check belongs to the Apply entry point, and existing callers rely on
// this function accepting inverted ranges whose ends are in the future.
func ValidateDateRange(start, end, today time.Time) bool {
	start = truncateToDay(start)
	end = truncateToDay(end)
	today = truncateToDay(today)

	return !start.Before(today) && !end.Before(today)
}

// BalanceYearPolicy picks which annual balance a request is checked and
// debited against. The historical behavior checks the year current at call
// time even for requests whose dates fall in another year; deployments
// that want year-spanning requests bound to their start year can swap the
// policy.
type BalanceYearPolicy func(now, start time.Time) int

func CurrentYearPolicy(now, _ time.Time) int {
	return now.Year()
}

func StartDateYearPolicy(_, start time.Time) int {
	return start.Year()
}
