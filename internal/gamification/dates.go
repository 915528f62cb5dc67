package gamification

import "time"

// dateLayout is the calendar day format used for all streak comparisons
const dateLayout = "2006-01-02"

// completionRetention is how long completion log entries are kept
const completionRetention = 30 * 24 * time.Hour

func formatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// localNow returns the clock time in the engine's location
func (e *Engine) localNow() time.Time {
	return e.now().In(e.loc)
}

// Today returns the current local calendar day as YYYY-MM-DD
func (e *Engine) Today() string {
	return formatDay(e.localNow())
}

// yesterday subtracts one calendar day, so DST transitions don't shift the result
func (e *Engine) yesterday() string {
	return formatDay(e.localNow().AddDate(0, 0, -1))
}
