package league

import (
	"time"

	"github.com/mhruby/rinkside/internal/db"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	StatusScheduled = "scheduled"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// MatchStart parses a match's date and time in the given location.
func MatchStart(m db.Match, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, m.MatchDate+" "+m.MatchTime, loc)
}

// LastFinished returns the most recently played finished match, or nil.
// Matches are expected in chronological order, as returned by the store.
func LastFinished(matches []db.MatchWithTeams) *db.MatchWithTeams {
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Status == StatusFinished {
			return &matches[i]
		}
	}
	return nil
}

// NextScheduled returns the first scheduled match starting at or after now,
// or nil when nothing is on the calendar.
func NextScheduled(matches []db.MatchWithTeams, now time.Time) *db.MatchWithTeams {
	for i := range matches {
		m := &matches[i]
		if m.Status != StatusScheduled {
			continue
		}
		start, err := MatchStart(m.Match, now.Location())
		if err != nil {
			continue
		}
		if !start.Before(now) {
			return m
		}
	}
	return nil
}

// UpcomingMatches returns up to limit scheduled matches starting at or after
// now, in chronological order.
func UpcomingMatches(matches []db.MatchWithTeams, now time.Time, limit int) []db.MatchWithTeams {
	var upcoming []db.MatchWithTeams
	for _, m := range matches {
		if m.Status != StatusScheduled {
			continue
		}
		start, err := MatchStart(m.Match, now.Location())
		if err != nil || start.Before(now) {
			continue
		}
		upcoming = append(upcoming, m)
		if limit > 0 && len(upcoming) == limit {
			break
		}
	}
	return upcoming
}

// FormatDate renders a stored match date as "Sat 14 Mar".
func FormatDate(dateStr string) string {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	return d.Format("Mon 2 Jan")
}

// FormatFullDate renders a stored match date as "Saturday 14 March 2026".
func FormatFullDate(dateStr string) string {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	return d.Format("Monday 2 January 2006")
}
