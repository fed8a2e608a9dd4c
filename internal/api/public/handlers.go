package public

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/api/apiutil"
	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/league"
	publictempl "github.com/mhruby/rinkside/internal/templates/components/public"
	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var (
	queries   *db.Queries
	appConfig *config.Config
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(cfg *config.Config, q *db.Queries) {
	appConfig = cfg
	queries = q
}

func leagueName() string {
	if appConfig != nil && appConfig.App.Name != "" {
		return appConfig.App.Name
	}
	return "Rinkside"
}

func matchCard(m db.MatchWithTeams) publictempl.MatchCard {
	card := publictempl.MatchCard{
		ID:        m.ID,
		HomeName:  m.HomeTeamName,
		HomeCode:  m.HomeShortCode,
		HomeColor: m.HomeColor,
		AwayName:  m.AwayTeamName,
		AwayCode:  m.AwayShortCode,
		AwayColor: m.AwayColor,
		Date:      league.FormatDate(m.MatchDate),
		FullDate:  league.FormatFullDate(m.MatchDate),
		Time:      m.MatchTime,
		Venue:     m.VenueName.String,
		Status:    m.Status,
	}
	switch m.Status {
	case league.StatusFinished:
		card.Score = fmt.Sprintf("%d : %d", m.HomeScore.Int64, m.AwayScore.Int64)
		if m.HasOvertime {
			card.Decided = "OT"
		} else if m.HasShootout {
			card.Decided = "SO"
		}
	case league.StatusScheduled:
		card.CalendarURL = league.CalendarURL(m, leagueName(), time.Local)
	}
	return card
}

func teamCard(t db.Team) publictempl.TeamCard {
	card := publictempl.TeamCard{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.ShortCode,
		Color:       t.Color,
		Description: t.Description.String,
	}
	if t.Founded.Valid {
		card.Founded = strconv.FormatInt(t.Founded.Int64, 10)
	}
	return card
}

func renderError(w http.ResponseWriter, r *http.Request, err error, what string) {
	log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load " + what)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// GET /
func HandleHomePage(w http.ResponseWriter, r *http.Request) {
	matches, err := queries.ListPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "matches")
		return
	}

	var v publictempl.HomeView
	if last := league.LastFinished(matches); last != nil {
		card := matchCard(*last)
		v.LastResult = &card
	}
	if next := league.NextScheduled(matches, time.Now()); next != nil {
		card := matchCard(*next)
		v.NextMatch = &card
	}

	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		renderError(w, r, err, "teams")
		return
	}
	finished, err := queries.ListFinishedPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "results")
		return
	}
	standings := league.ComputeStandings(teams, finished)
	if len(standings) > 5 {
		standings = standings[:5]
	}
	v.Standings = standings

	tallies, err := queries.ListScorerTallies(r.Context())
	if err != nil {
		renderError(w, r, err, "scorers")
		return
	}
	v.Scorers = league.TopScorers(league.ScorersFromTallies(tallies), 5)

	page := layouts.Base("Home", leagueName(), "home", publictempl.HomeBody(v))
	page.Render(r.Context(), w)
}

// GET /teams
func HandleTeamsPage(w http.ResponseWriter, r *http.Request) {
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		renderError(w, r, err, "teams")
		return
	}
	cards := make([]publictempl.TeamCard, 0, len(teams))
	for _, t := range teams {
		cards = append(cards, teamCard(t))
	}
	page := layouts.Base("Teams", leagueName(), "teams", publictempl.TeamsBody(cards))
	page.Render(r.Context(), w)
}

// GET /teams/{id}
func HandleTeamDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	team, err := queries.GetTeamByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	players, err := queries.ListActivePlayersByTeam(r.Context(), id)
	if err != nil {
		renderError(w, r, err, "roster")
		return
	}
	roster := make([]publictempl.RosterPlayer, 0, len(players))
	for _, p := range players {
		rp := publictempl.RosterPlayer{Name: p.Name, Position: p.Position}
		if p.Number.Valid {
			rp.Number = strconv.FormatInt(p.Number.Int64, 10)
		}
		roster = append(roster, rp)
	}
	page := layouts.Base(team.Name, leagueName(), "teams", publictempl.TeamDetailBody(teamCard(team), roster))
	page.Render(r.Context(), w)
}

// GET /players
func HandlePlayersPage(w http.ResponseWriter, r *http.Request) {
	tallies, err := queries.ListScorerTallies(r.Context())
	if err != nil {
		renderError(w, r, err, "scorers")
		return
	}
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		renderError(w, r, err, "teams")
		return
	}

	v := publictempl.PlayersView{
		Scorers: league.TopScorers(league.ScorersFromTallies(tallies), 10),
	}
	for _, t := range teams {
		players, err := queries.ListActivePlayersByTeam(r.Context(), t.ID)
		if err != nil {
			renderError(w, r, err, "roster")
			return
		}
		roster := publictempl.TeamRoster{TeamID: t.ID, TeamName: t.Name, Color: t.Color}
		for _, p := range players {
			rp := publictempl.RosterPlayer{Name: p.Name, Position: p.Position}
			if p.Number.Valid {
				rp.Number = strconv.FormatInt(p.Number.Int64, 10)
			}
			roster.Players = append(roster.Players, rp)
		}
		v.Rosters = append(v.Rosters, roster)
	}

	page := layouts.Base("Players", leagueName(), "players", publictempl.PlayersBody(v))
	page.Render(r.Context(), w)
}

// GET /matches
func HandleMatchesPage(w http.ResponseWriter, r *http.Request) {
	matches, err := queries.ListPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "matches")
		return
	}

	var v publictempl.MatchesView
	for _, m := range league.UpcomingMatches(matches, time.Now(), 0) {
		v.Upcoming = append(v.Upcoming, matchCard(m))
	}
	// Results newest first.
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Status == league.StatusFinished {
			v.Results = append(v.Results, matchCard(matches[i]))
		}
	}

	page := layouts.Base("Matches", leagueName(), "matches", publictempl.MatchesBody(v))
	page.Render(r.Context(), w)
}

// GET /matches/{id}
func HandleMatchDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	m, err := queries.GetMatchByID(r.Context(), id)
	if err != nil || !m.IsPublished {
		http.NotFound(w, r)
		return
	}

	v := publictempl.MatchDetailView{Card: matchCard(m)}
	if m.Status == league.StatusFinished {
		v.HasResult = true
		v.Periods = []publictempl.PeriodRow{
			{Label: "1st", Home: m.Period1Home.Int64, Away: m.Period1Away.Int64},
			{Label: "2nd", Home: m.Period2Home.Int64, Away: m.Period2Away.Int64},
			{Label: "3rd", Home: m.Period3Home.Int64, Away: m.Period3Away.Int64},
		}

		goals, err := queries.ListGoalsByMatch(r.Context(), id)
		if err != nil {
			renderError(w, r, err, "goals")
			return
		}
		for _, g := range goals {
			line := publictempl.GoalLine{Scorer: g.ScorerName, Team: g.TeamName}
			if g.ScorerNumber.Valid {
				line.Number = strconv.FormatInt(g.ScorerNumber.Int64, 10)
			}
			v.Goals = append(v.Goals, line)
		}
	}

	title := m.HomeTeamName + " vs " + m.AwayTeamName
	page := layouts.Base(title, leagueName(), "matches", publictempl.MatchDetailBody(v))
	page.Render(r.Context(), w)
}

// GET /calendar
//
// Month grid of published matches; ?month=2006-01 picks the month, default
// is the current one. Weeks start on Monday.
func HandleCalendarPage(w http.ResponseWriter, r *http.Request) {
	month := time.Now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if m, err := time.Parse("2006-01", raw); err == nil {
			month = m
		}
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)

	matches, err := queries.ListPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "matches")
		return
	}
	byDay := make(map[string][]publictempl.MatchCard)
	prefix := first.Format("2006-01")
	for _, m := range matches {
		if strings.HasPrefix(m.MatchDate, prefix) {
			byDay[m.MatchDate] = append(byDay[m.MatchDate], matchCard(m))
		}
	}

	v := publictempl.CalendarView{
		MonthLabel: first.Format("January 2006"),
		PrevMonth:  first.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth:  first.AddDate(0, 1, 0).Format("2006-01"),
	}
	day := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
	for day.Before(first) || day.Month() == first.Month() {
		week := make([]publictempl.CalendarDay, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, publictempl.CalendarDay{
				Day:     day.Day(),
				InMonth: day.Month() == first.Month(),
				Matches: byDay[day.Format("2006-01-02")],
			})
			day = day.AddDate(0, 0, 1)
		}
		v.Weeks = append(v.Weeks, week)
	}

	page := layouts.Base("Calendar", leagueName(), "calendar", publictempl.CalendarBody(v))
	page.Render(r.Context(), w)
}

// GET /standings
func HandleStandingsPage(w http.ResponseWriter, r *http.Request) {
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		renderError(w, r, err, "teams")
		return
	}
	finished, err := queries.ListFinishedPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "results")
		return
	}
	tallies, err := queries.ListScorerTallies(r.Context())
	if err != nil {
		renderError(w, r, err, "scorers")
		return
	}

	v := publictempl.StandingsView{
		Rows:    league.ComputeStandings(teams, finished),
		Scorers: league.TopScorers(league.ScorersFromTallies(tallies), 10),
	}
	page := layouts.Base("Standings", leagueName(), "standings", publictempl.StandingsBody(v))
	page.Render(r.Context(), w)
}

// GET /api/v1/standings
func HandleStandingsJSON(w http.ResponseWriter, r *http.Request) {
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		renderError(w, r, err, "teams")
		return
	}
	finished, err := queries.ListFinishedPublishedMatches(r.Context())
	if err != nil {
		renderError(w, r, err, "results")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, league.ComputeStandings(teams, finished)); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write standings")
	}
}

// GET /api/v1/scorers
func HandleScorersJSON(w http.ResponseWriter, r *http.Request) {
	tallies, err := queries.ListScorerTallies(r.Context())
	if err != nil {
		renderError(w, r, err, "scorers")
		return
	}
	scorers := league.TopScorers(league.ScorersFromTallies(tallies), 0)
	if err := apiutil.WriteJSON(w, http.StatusOK, scorers); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write scorers")
	}
}

// GET /gallery
func HandleGalleryPage(w http.ResponseWriter, r *http.Request) {
	page := layouts.Base("Gallery", leagueName(), "gallery", publictempl.GalleryBody())
	page.Render(r.Context(), w)
}

// GET /about
func HandleAboutPage(w http.ResponseWriter, r *http.Request) {
	page := layouts.Base("About", leagueName(), "about", publictempl.AboutBody(leagueName()))
	page.Render(r.Context(), w)
}
