package players

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/api/apiutil"
	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/league"
	playerstempl "github.com/mhruby/rinkside/internal/templates/components/players"
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

func teamOptions(r *http.Request) ([]playerstempl.TeamOption, error) {
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		return nil, err
	}
	opts := make([]playerstempl.TeamOption, 0, len(teams))
	for _, t := range teams {
		opts = append(opts, playerstempl.TeamOption{ID: t.ID, Name: t.Name})
	}
	return opts, nil
}

func listData(r *http.Request) (playerstempl.ListData, error) {
	var d playerstempl.ListData

	teams, err := teamOptions(r)
	if err != nil {
		return d, err
	}
	d.Teams = teams
	d.FilterTeamID, _ = strconv.ParseInt(r.FormValue("team_id"), 10, 64)

	players, err := queries.ListPlayers(r.Context())
	if err != nil {
		return d, err
	}
	for _, p := range players {
		if d.FilterTeamID != 0 && p.TeamID.Int64 != d.FilterTeamID {
			continue
		}
		row := playerstempl.Row{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			TeamName: p.TeamName.String,
			Active:   p.IsActive,
		}
		if p.Number.Valid {
			row.Number = strconv.FormatInt(p.Number.Int64, 10)
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

// GET /admin/players
func HandlePlayersPage(w http.ResponseWriter, r *http.Request) {
	d, err := listData(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list players")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	page := layouts.Admin("Players", leagueName(), "players", playerstempl.PageBody(d))
	page.Render(r.Context(), w)
}

func renderList(w http.ResponseWriter, r *http.Request) {
	d, err := listData(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list players")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	playerstempl.List(d).Render(r.Context(), w)
}

// GET /api/v1/admin/players
func HandleList(w http.ResponseWriter, r *http.Request) {
	renderList(w, r)
}

// GET /api/v1/admin/players/new
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	teams, err := teamOptions(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	f := playerstempl.FormData{IsNew: true, Position: "forward", Active: true, Teams: teams}
	playerstempl.Form(f).Render(r.Context(), w)
}

// GET /api/v1/admin/players/{id}/edit
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}
	p, err := queries.GetPlayerByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	teams, err := teamOptions(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	f := playerstempl.FormData{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		TeamID:   p.TeamID.Int64,
		Active:   p.IsActive,
		Teams:    teams,
	}
	if p.Number.Valid {
		f.Number = strconv.FormatInt(p.Number.Int64, 10)
	}
	playerstempl.Form(f).Render(r.Context(), w)
}

type playerForm struct {
	Name     string
	Number   sql.NullInt64
	Position string
	IsActive bool
	TeamID   sql.NullInt64
}

func parsePlayerForm(r *http.Request) (playerForm, string) {
	var f playerForm
	f.Name = strings.TrimSpace(r.FormValue("name"))
	if f.Name == "" {
		return f, "Player name is required."
	}
	f.Position = r.FormValue("position")
	if !league.ValidPosition(f.Position) {
		return f, "Pick a valid position."
	}
	if v := strings.TrimSpace(r.FormValue("number")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > 99 {
			return f, "Jersey number must be between 1 and 99."
		}
		f.Number = apiutil.ToNullInt64(&n)
	}
	if id, _ := strconv.ParseInt(r.FormValue("team_id"), 10, 64); id > 0 {
		f.TeamID = apiutil.ToNullInt64(&id)
	}
	f.IsActive = r.FormValue("is_active") == "1"
	return f, ""
}

// POST /api/v1/admin/players
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	f, msg := parsePlayerForm(r)
	if msg != "" {
		renderFormError(w, r, 0, msg)
		return
	}
	_, err := queries.CreatePlayer(r.Context(), db.CreatePlayerParams{
		Name:     f.Name,
		Number:   f.Number,
		Position: f.Position,
		IsActive: f.IsActive,
		TeamID:   f.TeamID,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("player", f.Name).Msg("Failed to create player")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

// PUT /api/v1/admin/players/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}
	f, msg := parsePlayerForm(r)
	if msg != "" {
		renderFormError(w, r, id, msg)
		return
	}
	err = queries.UpdatePlayer(r.Context(), db.UpdatePlayerParams{
		ID:       id,
		Name:     f.Name,
		Number:   f.Number,
		Position: f.Position,
		IsActive: f.IsActive,
		TeamID:   f.TeamID,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to update player")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

// DELETE /api/v1/admin/players/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid player id", http.StatusBadRequest)
		return
	}
	if err := queries.DeletePlayer(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("player_id", id).Msg("Failed to delete player")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

func renderFormError(w http.ResponseWriter, r *http.Request, id int64, msg string) {
	teams, _ := teamOptions(r)
	f := playerstempl.FormData{ID: id, IsNew: id == 0, Error: msg, Teams: teams, Position: "forward", Active: true}
	w.WriteHeader(http.StatusUnprocessableEntity)
	playerstempl.Form(f).Render(r.Context(), w)
}
