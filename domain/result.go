package domain

import "time"

// Result is the outcome of a write against the store.
type Result int

const (
	// ResultFault means the statement itself failed; an error accompanies it.
	ResultFault Result = iota
	// ResultNotFound means the statement ran but affected no rows.
	ResultNotFound
	ResultSuccess
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultNotFound:
		return "not_found"
	default:
		return "fault"
	}
}

func (r Result) OK() bool {
	return r == ResultSuccess
}

// DateLayout is the calendar-day format used for storage and input.
const DateLayout = "2006-01-02"

// Today truncates t to midnight UTC of its calendar day.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
