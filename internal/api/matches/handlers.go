package matches

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/api/htmx"
	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/email"
	"github.com/mhruby/rinkside/internal/league"
	matchestempl "github.com/mhruby/rinkside/internal/templates/components/matches"
	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var (
	appConfig   *config.Config
	database    *db.DB
	queries     *db.Queries
	emailSender email.EmailSender
)

// InitHandlers must be called during server startup before handling requests.
// The sender may be nil; result notifications are skipped then.
func InitHandlers(cfg *config.Config, d *db.DB, sender email.EmailSender) {
	appConfig = cfg
	database = d
	queries = d.Queries
	emailSender = sender
}

func leagueName() string {
	if appConfig != nil && appConfig.App.Name != "" {
		return appConfig.App.Name
	}
	return "Rinkside"
}

func adminRows(matches []db.MatchWithTeams) []matchestempl.AdminRow {
	rows := make([]matchestempl.AdminRow, 0, len(matches))
	for _, m := range matches {
		row := matchestempl.AdminRow{
			ID:        m.ID,
			Date:      league.FormatDate(m.MatchDate),
			Time:      m.MatchTime,
			HomeName:  m.HomeTeamName,
			AwayName:  m.AwayTeamName,
			Status:    m.Status,
			Published: m.IsPublished,
		}
		if m.Status == league.StatusFinished {
			row.Score = fmt.Sprintf("%d : %d", m.HomeScore.Int64, m.AwayScore.Int64)
		}
		rows = append(rows, row)
	}
	return rows
}

// GET /admin/matches
func HandleMatchesPage(w http.ResponseWriter, r *http.Request) {
	matches, err := queries.ListMatches(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	page := layouts.Admin("Matches", leagueName(), "matches", matchestempl.ListPageBody(adminRows(matches)))
	page.Render(r.Context(), w)
}

func renderList(w http.ResponseWriter, r *http.Request) {
	matches, err := queries.ListMatches(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	matchestempl.List(adminRows(matches)).Render(r.Context(), w)
}

// GET /api/v1/admin/matches
func HandleList(w http.ResponseWriter, r *http.Request) {
	renderList(w, r)
}

// GET /admin/matches/new
func HandleNewMatchPage(w http.ResponseWriter, r *http.Request) {
	body := matchestempl.WizardPageBody("Enter match result", "/api/v1/admin/matches/wizard/start")
	layouts.Admin("Enter match result", leagueName(), "matches", body).Render(r.Context(), w)
}

// GET /admin/matches/schedule
func HandleScheduleMatchPage(w http.ResponseWriter, r *http.Request) {
	body := matchestempl.WizardPageBody("Schedule match", "/api/v1/admin/matches/wizard/start?schedule_only=1")
	layouts.Admin("Schedule match", leagueName(), "matches", body).Render(r.Context(), w)
}

// GET /admin/matches/{id}/result
func HandleEditResultPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}
	start := fmt.Sprintf("/api/v1/admin/matches/wizard/start?match_id=%d", id)
	body := matchestempl.WizardPageBody("Edit result", start)
	layouts.Admin("Edit result", leagueName(), "matches", body).Render(r.Context(), w)
}

// GET /api/v1/admin/matches/wizard/start
//
// Starts a fresh wizard, or seeds one from an existing match when match_id
// is given. Editing starts on the score step; the teams stay fixed.
func HandleWizardStart(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("match_id"); raw != "" {
		matchID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid match id", http.StatusBadRequest)
			return
		}
		d, err := draftFromMatch(r, matchID)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Int64("match_id", matchID).Msg("Failed to load match for editing")
			http.Error(w, "Match not found", http.StatusNotFound)
			return
		}
		renderStep(w, r, d, league.StepEnterScore, matchID, "")
		return
	}

	d := league.NewDraft(r.URL.Query().Get("schedule_only") == "1")
	renderStep(w, r, d, league.StepSelectTeamsAndDate, 0, "")
}

// POST /api/v1/admin/matches/wizard
func HandleWizard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	d := draftFromForm(r)
	step := league.Step(formInt(r, "step"))
	if step < league.StepSelectTeamsAndDate || step > league.StepReviewAndPublish {
		step = league.StepSelectTeamsAndDate
	}
	matchID, _ := strconv.ParseInt(r.FormValue("match_id"), 10, 64)

	switch r.FormValue("action") {
	case "back":
		prev := d.Prev(step)
		if matchID > 0 && prev == league.StepSelectTeamsAndDate {
			// Teams and date are fixed when editing; the score step is the floor.
			prev = league.StepEnterScore
		}
		renderStep(w, r, d, prev, matchID, "")
	case "save":
		saveDraft(w, r, d, matchID)
	default:
		if err := d.CanAdvance(step); err != nil {
			renderStep(w, r, d, step, matchID, err.Error())
			return
		}
		next, ok := d.Next(step)
		if !ok {
			next = step
		}
		renderStep(w, r, d, next, matchID, "")
	}
}

func saveDraft(w http.ResponseWriter, r *http.Request, d *league.Draft, matchID int64) {
	logger := log.Ctx(r.Context())

	// Checkboxes on the review form replace the hidden-field round trip.
	d.Publish = r.FormValue("publish") == "1"
	d.Notify = r.FormValue("notify") == "1"

	var err error
	if matchID > 0 {
		err = league.UpdateResult(r.Context(), database, matchID, d)
	} else {
		matchID, err = league.PublishDraft(r.Context(), database, d)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Match save rejected")
		renderStep(w, r, d, league.StepReviewAndPublish, matchID, err.Error())
		return
	}
	logger.Info().Int64("match_id", matchID).Bool("published", d.Publish).Msg("Match saved")

	if d.Publish && d.Notify && !d.ScheduleOnly && emailSender != nil {
		notifyResult(r, d)
	}

	htmx.Redirect(w, r, "/admin/matches")
}

// notifyResult emails confirmed subscribers about a freshly published result.
// Failures are logged, never surfaced to the admin.
func notifyResult(r *http.Request, d *league.Draft) {
	logger := log.Ctx(r.Context())

	home, err := queries.GetTeamByID(r.Context(), d.HomeTeamID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load home team for notification")
		return
	}
	away, err := queries.GetTeamByID(r.Context(), d.AwayTeamID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load away team for notification")
		return
	}
	details := email.ResultDetails{
		LeagueName: leagueName(),
		HomeTeam:   home.Name,
		AwayTeam:   away.Name,
		HomeScore:  int64(d.HomeScore),
		AwayScore:  int64(d.AwayScore),
		Date:       league.FormatFullDate(d.Date),
	}
	switch d.EndType {
	case league.EndOvertime:
		details.Decided = "overtime"
	case league.EndShootout:
		details.Decided = "shootout"
	}
	if d.VenueID != 0 {
		if venue, err := queries.GetVenueByID(r.Context(), d.VenueID); err == nil {
			details.Venue = venue.Name
		}
	}

	email.NotifySubscribers(r.Context(), queries, emailSender, email.BuildResultNotification(details), logger)
}

// POST /api/v1/admin/matches/{id}/cancel
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}
	m, err := queries.GetMatchByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	if m.Status != league.StatusScheduled {
		http.Error(w, "Only scheduled matches can be cancelled", http.StatusConflict)
		return
	}
	err = queries.UpdateMatch(r.Context(), db.UpdateMatchParams{
		ID:          m.ID,
		MatchDate:   m.MatchDate,
		MatchTime:   m.MatchTime,
		VenueID:     m.VenueID,
		Status:      league.StatusCancelled,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Period1Home: m.Period1Home,
		Period1Away: m.Period1Away,
		Period2Home: m.Period2Home,
		Period2Away: m.Period2Away,
		Period3Home: m.Period3Home,
		Period3Away: m.Period3Away,
		HasOvertime: m.HasOvertime,
		HasShootout: m.HasShootout,
		IsPublished: m.IsPublished,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("match_id", id).Msg("Failed to cancel match")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

// DELETE /api/v1/admin/matches/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return
	}
	if err := queries.DeleteMatch(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("match_id", id).Msg("Failed to delete match")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.FormValue(name))
	return n
}

// draftFromForm rebuilds the full draft from one wizard POST. Every step
// form carries all draft fields, visible or hidden.
func draftFromForm(r *http.Request) *league.Draft {
	d := league.NewDraft(r.FormValue("schedule_only") == "1")

	d.HomeTeamID, _ = strconv.ParseInt(r.FormValue("home_team_id"), 10, 64)
	d.AwayTeamID, _ = strconv.ParseInt(r.FormValue("away_team_id"), 10, 64)
	d.VenueID, _ = strconv.ParseInt(r.FormValue("venue_id"), 10, 64)
	d.Date = strings.TrimSpace(r.FormValue("date"))
	d.Time = strings.TrimSpace(r.FormValue("time"))

	d.HomeScore = formInt(r, "home_score")
	d.AwayScore = formInt(r, "away_score")
	switch league.EndType(r.FormValue("end_type")) {
	case league.EndOvertime:
		d.EndType = league.EndOvertime
	case league.EndShootout:
		d.EndType = league.EndShootout
	default:
		d.EndType = league.EndRegulation
	}
	for i := 0; i < 3; i++ {
		d.Periods[i].Home = formInt(r, fmt.Sprintf("p%d_home", i+1))
		d.Periods[i].Away = formInt(r, fmt.Sprintf("p%d_away", i+1))
	}

	for name, values := range r.Form {
		var target map[int64]int
		switch {
		case strings.HasPrefix(name, "hs_"):
			target = d.HomeScorers
		case strings.HasPrefix(name, "as_"):
			target = d.AwayScorers
		default:
			continue
		}
		playerID, err := strconv.ParseInt(name[3:], 10, 64)
		if err != nil || len(values) == 0 {
			continue
		}
		if count, err := strconv.Atoi(values[0]); err == nil && count > 0 {
			target[playerID] = count
		}
	}

	d.Publish = r.FormValue("publish") == "1"
	d.Notify = r.FormValue("notify") == "1"
	return d
}

// draftFromMatch seeds an edit draft from a stored match and its goals.
func draftFromMatch(r *http.Request, matchID int64) (*league.Draft, error) {
	m, err := queries.GetMatchByID(r.Context(), matchID)
	if err != nil {
		return nil, err
	}

	d := league.NewDraft(false)
	d.HomeTeamID = m.HomeTeamID
	d.AwayTeamID = m.AwayTeamID
	d.VenueID = m.VenueID.Int64
	d.Date = m.MatchDate
	d.Time = m.MatchTime
	d.Publish = m.IsPublished
	d.Notify = false

	d.HomeScore = int(m.HomeScore.Int64)
	d.AwayScore = int(m.AwayScore.Int64)
	switch {
	case m.HasOvertime:
		d.EndType = league.EndOvertime
	case m.HasShootout:
		d.EndType = league.EndShootout
	}
	d.Periods[0] = league.PeriodScore{Home: int(m.Period1Home.Int64), Away: int(m.Period1Away.Int64)}
	d.Periods[1] = league.PeriodScore{Home: int(m.Period2Home.Int64), Away: int(m.Period2Away.Int64)}
	d.Periods[2] = league.PeriodScore{Home: int(m.Period3Home.Int64), Away: int(m.Period3Away.Int64)}

	goals, err := queries.ListGoalsByMatch(r.Context(), matchID)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.TeamID == m.HomeTeamID {
			d.HomeScorers[g.ScorerID]++
		} else {
			d.AwayScorers[g.ScorerID]++
		}
	}
	return d, nil
}

func renderStep(w http.ResponseWriter, r *http.Request, d *league.Draft, step league.Step, matchID int64, errMsg string) {
	v, err := buildWizardView(r, d, step, matchID, errMsg)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to build wizard view")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	matchestempl.WizardStep(v).Render(r.Context(), w)
}

func buildWizardView(r *http.Request, d *league.Draft, step league.Step, matchID int64, errMsg string) (matchestempl.WizardView, error) {
	v := matchestempl.WizardView{
		Step:    step,
		Draft:   d,
		MatchID: matchID,
		Error:   errMsg,
	}

	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		return v, err
	}
	for _, t := range teams {
		v.Teams = append(v.Teams, matchestempl.Option{ID: t.ID, Name: t.Name})
		switch t.ID {
		case d.HomeTeamID:
			v.HomeTeamName = t.Name
		case d.AwayTeamID:
			v.AwayTeamName = t.Name
		}
	}

	if step == league.StepSelectTeamsAndDate {
		venues, err := queries.ListVenues(r.Context())
		if err != nil {
			return v, err
		}
		for _, ven := range venues {
			v.Venues = append(v.Venues, matchestempl.Option{ID: ven.ID, Name: ven.Name})
		}
	}

	if step == league.StepAssignGoalScorers {
		v.HomeRoster, err = rosterOptions(r, d.HomeTeamID, d.HomeScorers)
		if err != nil {
			return v, err
		}
		v.AwayRoster, err = rosterOptions(r, d.AwayTeamID, d.AwayScorers)
		if err != nil {
			return v, err
		}
	}

	if step == league.StepReviewAndPublish && d.VenueID != 0 {
		if venue, err := queries.GetVenueByID(r.Context(), d.VenueID); err == nil {
			v.VenueName = venue.Name
		}
	}
	return v, nil
}

func rosterOptions(r *http.Request, teamID int64, counts map[int64]int) ([]matchestempl.ScorerOption, error) {
	players, err := queries.ListActivePlayersByTeam(r.Context(), teamID)
	if err != nil {
		return nil, err
	}
	opts := make([]matchestempl.ScorerOption, 0, len(players))
	for _, p := range players {
		opt := matchestempl.ScorerOption{ID: p.ID, Name: p.Name, Count: counts[p.ID]}
		if p.Number.Valid {
			opt.Number = strconv.FormatInt(p.Number.Int64, 10)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}
