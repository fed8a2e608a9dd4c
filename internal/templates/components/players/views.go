package players

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

type Row struct {
	ID       int64
	Name     string
	Number   string
	Position string
	TeamName string
	Active   bool
}

type TeamOption struct {
	ID   int64
	Name string
}

type ListData struct {
	Rows         []Row
	Teams        []TeamOption
	FilterTeamID int64 // 0 means all teams
}

type FormData struct {
	ID       int64
	Name     string
	Number   string
	Position string
	TeamID   int64
	Active   bool
	Teams    []TeamOption
	IsNew    bool
	Error    string
}

const listSrc = `<div id="player-list">
<form hx-get="/api/v1/admin/players" hx-target="#player-list" hx-swap="outerHTML">
  <select name="team_id" onchange="this.form.requestSubmit()">
    <option value="0">All teams</option>
    {{range .Teams}}<option value="{{.ID}}" {{if eq .ID $.FilterTeamID}}selected{{end}}>{{.Name}}</option>{{end}}
  </select>
</form>
<table class="admin-table">
  <thead><tr><th>#</th><th>Name</th><th>Position</th><th>Team</th><th>Active</th><th></th></tr></thead>
  <tbody>
  {{range .Rows}}
    <tr {{if not .Active}}class="inactive"{{end}}>
      <td>{{.Number}}</td>
      <td>{{.Name}}</td>
      <td>{{.Position}}</td>
      <td>{{.TeamName}}</td>
      <td>{{if .Active}}yes{{else}}no{{end}}</td>
      <td>
        <button hx-get="/api/v1/admin/players/{{.ID}}/edit" hx-target="#player-form">Edit</button>
        <button hx-delete="/api/v1/admin/players/{{.ID}}" hx-target="#player-list" hx-swap="outerHTML"
                hx-confirm="Delete {{.Name}}? Their credited goals are removed too.">Delete</button>
      </td>
    </tr>
  {{else}}
    <tr><td colspan="6">No players yet.</td></tr>
  {{end}}
  </tbody>
</table>
</div>`

const formSrc = `<form {{if .IsNew}}hx-post="/api/v1/admin/players"{{else}}hx-put="/api/v1/admin/players/{{.ID}}"{{end}} hx-target="#player-list" hx-swap="outerHTML">
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <label>Name <input type="text" name="name" value="{{.Name}}" required></label>
  <label>Number <input type="number" name="number" value="{{.Number}}" min="1" max="99"></label>
  <label>Position
    <select name="position">
      <option value="forward" {{if eq .Position "forward"}}selected{{end}}>Forward</option>
      <option value="defenseman" {{if eq .Position "defenseman"}}selected{{end}}>Defenseman</option>
      <option value="goalkeeper" {{if eq .Position "goalkeeper"}}selected{{end}}>Goalkeeper</option>
    </select>
  </label>
  <label>Team
    <select name="team_id">
      <option value="0">No team</option>
      {{range .Teams}}<option value="{{.ID}}" {{if eq .ID $.TeamID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <label><input type="checkbox" name="is_active" value="1" {{if .Active}}checked{{end}}> Active</label>
  <button type="submit">{{if .IsNew}}Create player{{else}}Save{{end}}</button>
</form>`

const pageSrc = `<section class="admin-section">
  <h1>Players</h1>
  <button hx-get="/api/v1/admin/players/new" hx-target="#player-form">New player</button>
  <div id="player-form"></div>
  {{template "playerList" .}}
</section>`

var (
	listTmpl = template.Must(template.New("playerList").Parse(listSrc))
	formTmpl = template.Must(template.New("playerForm").Parse(formSrc))
	pageTmpl = func() *template.Template {
		t := template.New("playersPage")
		template.Must(t.New("playerList").Parse(listSrc))
		return template.Must(t.Parse(pageSrc))
	}()
)

func PageBody(d ListData) templ.Component {
	return layouts.FromTemplate(pageTmpl, d)
}

// List renders the filterable table fragment returned after every mutation.
func List(d ListData) templ.Component {
	return layouts.FromTemplate(listTmpl, d)
}

func Form(f FormData) templ.Component {
	return layouts.FromTemplate(formTmpl, f)
}
