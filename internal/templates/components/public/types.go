package public

import "github.com/mhruby/rinkside/internal/league"

// MatchCard is the display form of a match used across the public pages.
type MatchCard struct {
	ID          int64
	HomeName    string
	HomeCode    string
	HomeColor   string
	AwayName    string
	AwayCode    string
	AwayColor   string
	Date        string
	FullDate    string
	Time        string
	Venue       string
	Status      string
	Score       string // empty until the match is finished
	Decided     string // "OT", "SO" or empty
	CalendarURL string
}

type TeamCard struct {
	ID          int64
	Name        string
	Code        string
	Color       string
	Founded     string
	Description string
}

type RosterPlayer struct {
	Name     string
	Number   string
	Position string
}

type GoalLine struct {
	Scorer string
	Number string
	Team   string
}

type PeriodRow struct {
	Label string
	Home  int64
	Away  int64
}

type HomeView struct {
	LastResult *MatchCard
	NextMatch  *MatchCard
	Standings  []league.TeamStanding
	Scorers    []league.Scorer
}

// TeamRoster groups a team's active players for the players page.
type TeamRoster struct {
	TeamID   int64
	TeamName string
	Color    string
	Players  []RosterPlayer
}

type PlayersView struct {
	Scorers []league.Scorer
	Rosters []TeamRoster
}

type MatchesView struct {
	Upcoming []MatchCard
	Results  []MatchCard
}

type MatchDetailView struct {
	Card      MatchCard
	HasResult bool
	Periods   []PeriodRow
	Goals     []GoalLine
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Day     int
	InMonth bool
	Matches []MatchCard
}

type CalendarView struct {
	MonthLabel string
	PrevMonth  string // "2006-01" query values for the nav links
	NextMonth  string
	Weeks      [][]CalendarDay
}

type StandingsView struct {
	Rows    []league.TeamStanding
	Scorers []league.Scorer
}
