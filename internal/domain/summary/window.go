package summary

import "time"

// Window is a half-open time range [Start, End). All windows produced here
// are midnight-aligned in the zone they were computed for, so boundary
// membership is deterministic regardless of when within the trigger minute a
// run actually starts.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. Start is inclusive,
// End is exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Midnight truncates ref to 00:00 of its day in loc.
func Midnight(ref time.Time, loc *time.Location) time.Time {
	local := ref.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Today returns the day window containing ref: [today 00:00, tomorrow 00:00).
func Today(ref time.Time, loc *time.Location) Window {
	start := Midnight(ref, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Tomorrow returns the day window one day after ref.
func Tomorrow(ref time.Time, loc *time.Location) Window {
	start := Midnight(ref, loc).AddDate(0, 0, 1)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// CurrentMonth returns [first of ref's month, first of the next month).
func CurrentMonth(ref time.Time, loc *time.Location) Window {
	local := ref.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// PreviousMonth returns the last full calendar month before ref.
func PreviousMonth(ref time.Time, loc *time.Location) Window {
	end := CurrentMonth(ref, loc).Start
	return Window{Start: end.AddDate(0, -1, 0), End: end}
}
