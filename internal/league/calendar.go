package league

import (
	"net/url"
	"time"

	"github.com/mhruby/rinkside/internal/db"
)

const (
	calendarBaseURL    = "https://calendar.google.com/calendar/render"
	calendarTimeFormat = "20060102T150405Z"
	matchDuration      = 2 * time.Hour
)

// CalendarURL builds a Google Calendar "add event" link for a match. The
// event spans two hours from the scheduled start; timestamps are UTC in
// basic format as the render endpoint requires.
func CalendarURL(m db.MatchWithTeams, leagueName string, loc *time.Location) string {
	start, err := MatchStart(m.Match, loc)
	if err != nil {
		return ""
	}
	end := start.Add(matchDuration)

	title := m.HomeTeamName + " vs " + m.AwayTeamName + " - " + leagueName
	details := leagueName + " hockey match\n" + m.HomeTeamName + " vs " + m.AwayTeamName

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", start.UTC().Format(calendarTimeFormat)+"/"+end.UTC().Format(calendarTimeFormat))
	params.Set("details", details)
	if m.VenueName.Valid {
		params.Set("location", m.VenueName.String)
	}
	return calendarBaseURL + "?" + params.Encode()
}
