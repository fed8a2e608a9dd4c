package teams

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

type Row struct {
	ID          int64
	Name        string
	Code        string
	Color       string
	Founded     string
	Description string
}

type FormData struct {
	Row
	IsNew bool
	Error string
}

const listSrc = `<div id="team-list">
<table class="admin-table">
  <thead><tr><th>Code</th><th>Name</th><th>Founded</th><th></th></tr></thead>
  <tbody>
  {{range .}}
    <tr>
      <td><span class="team-code" style="--team-color: {{.Color}}">{{.Code}}</span></td>
      <td>{{.Name}}</td>
      <td>{{.Founded}}</td>
      <td>
        <button hx-get="/api/v1/admin/teams/{{.ID}}/edit" hx-target="#team-form">Edit</button>
        <button hx-delete="/api/v1/admin/teams/{{.ID}}" hx-target="#team-list" hx-swap="outerHTML"
                hx-confirm="Delete {{.Name}}? Players stay but lose their team.">Delete</button>
      </td>
    </tr>
  {{else}}
    <tr><td colspan="4">No teams yet.</td></tr>
  {{end}}
  </tbody>
</table>
</div>`

const formSrc = `<form {{if .IsNew}}hx-post="/api/v1/admin/teams"{{else}}hx-put="/api/v1/admin/teams/{{.ID}}"{{end}} hx-target="#team-list" hx-swap="outerHTML">
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <label>Name <input type="text" name="name" value="{{.Name}}" required></label>
  <label>Short code <input type="text" name="short_code" value="{{.Code}}" maxlength="3" placeholder="auto from name"></label>
  <label>Color <input type="color" name="color" value="{{.Color}}"></label>
  <label>Founded <input type="number" name="founded" value="{{.Founded}}" min="1900" max="2100"></label>
  <label>Description <textarea name="description">{{.Description}}</textarea></label>
  <button type="submit">{{if .IsNew}}Create team{{else}}Save{{end}}</button>
</form>`

const pageSrc = `<section class="admin-section">
  <h1>Teams</h1>
  <button hx-get="/api/v1/admin/teams/new" hx-target="#team-form">New team</button>
  <div id="team-form"></div>
  {{template "teamList" .}}
</section>`

var (
	listTmpl = template.Must(template.New("teamList").Parse(listSrc))
	formTmpl = template.Must(template.New("teamForm").Parse(formSrc))
	pageTmpl = func() *template.Template {
		t := template.New("teamsPage")
		template.Must(t.New("teamList").Parse(listSrc))
		return template.Must(t.Parse(pageSrc))
	}()
)

// PageBody renders the full admin teams section.
func PageBody(rows []Row) templ.Component {
	return layouts.FromTemplate(pageTmpl, rows)
}

// List renders the table fragment returned after every mutation.
func List(rows []Row) templ.Component {
	return layouts.FromTemplate(listTmpl, rows)
}

func Form(f FormData) templ.Component {
	return layouts.FromTemplate(formTmpl, f)
}
