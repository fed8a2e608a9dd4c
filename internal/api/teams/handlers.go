package teams

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
	teamstempl "github.com/mhruby/rinkside/internal/templates/components/teams"
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

func rowFromTeam(t db.Team) teamstempl.Row {
	row := teamstempl.Row{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.ShortCode,
		Color:       t.Color,
		Description: t.Description.String,
	}
	if t.Founded.Valid {
		row.Founded = strconv.FormatInt(t.Founded.Int64, 10)
	}
	return row
}

func listRows(r *http.Request) ([]teamstempl.Row, error) {
	teams, err := queries.ListTeams(r.Context())
	if err != nil {
		return nil, err
	}
	rows := make([]teamstempl.Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, rowFromTeam(t))
	}
	return rows, nil
}

// GET /admin/teams
func HandleTeamsPage(w http.ResponseWriter, r *http.Request) {
	rows, err := listRows(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	page := layouts.Admin("Teams", leagueName(), "teams", teamstempl.PageBody(rows))
	page.Render(r.Context(), w)
}

func renderList(w http.ResponseWriter, r *http.Request) {
	rows, err := listRows(r)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to list teams")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	teamstempl.List(rows).Render(r.Context(), w)
}

// GET /api/v1/admin/teams
func HandleList(w http.ResponseWriter, r *http.Request) {
	renderList(w, r)
}

// GET /api/v1/admin/teams/new
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	f := teamstempl.FormData{IsNew: true}
	f.Color = "#1f6feb"
	teamstempl.Form(f).Render(r.Context(), w)
}

// GET /api/v1/admin/teams/{id}/edit
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid team id", http.StatusBadRequest)
		return
	}
	team, err := queries.GetTeamByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Team not found", http.StatusNotFound)
		return
	}
	teamstempl.Form(teamstempl.FormData{Row: rowFromTeam(team)}).Render(r.Context(), w)
}

type teamForm struct {
	Name        string
	ShortCode   string
	Color       string
	Founded     sql.NullInt64
	Description sql.NullString
}

func parseTeamForm(r *http.Request) (teamForm, string) {
	var f teamForm
	f.Name = strings.TrimSpace(r.FormValue("name"))
	if f.Name == "" {
		return f, "Team name is required."
	}
	code := r.FormValue("short_code")
	if strings.TrimSpace(code) == "" {
		code = f.Name
	}
	f.ShortCode = league.NormalizeShortCode(code)
	if f.ShortCode == "" {
		return f, "Short code needs at least one letter or digit."
	}
	f.Color = strings.TrimSpace(r.FormValue("color"))
	if f.Color == "" {
		f.Color = "#1f6feb"
	}
	if v := strings.TrimSpace(r.FormValue("founded")); v != "" {
		year, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, "Founded must be a year."
		}
		f.Founded = apiutil.ToNullInt64(&year)
	}
	f.Description = apiutil.ToNullString(strings.TrimSpace(r.FormValue("description")))
	return f, ""
}

// POST /api/v1/admin/teams
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	f, msg := parseTeamForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		teamstempl.Form(teamstempl.FormData{IsNew: true, Error: msg}).Render(r.Context(), w)
		return
	}
	_, err := queries.CreateTeam(r.Context(), db.CreateTeamParams{
		Name:        f.Name,
		ShortCode:   f.ShortCode,
		Color:       f.Color,
		Founded:     f.Founded,
		Description: f.Description,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("team", f.Name).Msg("Failed to create team")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

// PUT /api/v1/admin/teams/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid team id", http.StatusBadRequest)
		return
	}
	f, msg := parseTeamForm(r)
	if msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		data := teamstempl.FormData{Error: msg}
		data.ID = id
		teamstempl.Form(data).Render(r.Context(), w)
		return
	}
	err = queries.UpdateTeam(r.Context(), db.UpdateTeamParams{
		ID:          id,
		Name:        f.Name,
		ShortCode:   f.ShortCode,
		Color:       f.Color,
		Founded:     f.Founded,
		Description: f.Description,
	})
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to update team")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}

// DELETE /api/v1/admin/teams/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid team id", http.StatusBadRequest)
		return
	}
	if err := queries.DeleteTeam(r.Context(), id); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("team_id", id).Msg("Failed to delete team")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderList(w, r)
}
