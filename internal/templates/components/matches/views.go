package matches

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

func parseWizard(name, src string) *template.Template {
	t := template.New(name).Funcs(template.FuncMap{
		"add1": func(i int) int { return i + 1 },
	})
	for n, s := range hiddenSrcs {
		template.Must(t.New(n).Parse(s))
	}
	return template.Must(t.Parse(src))
}

// Hidden-field groups round-trip the draft fields a step does not edit.
// Every step form carries the groups for all other steps, so the handler can
// rebuild the full draft from any POST.
var hiddenSrcs = map[string]string{
	"hMeta": `<input type="hidden" name="step" value="{{printf "%d" .Step}}">
<input type="hidden" name="schedule_only" value="{{if .Draft.ScheduleOnly}}1{{else}}0{{end}}">
{{if .MatchID}}<input type="hidden" name="match_id" value="{{.MatchID}}">{{end}}`,

	"hTeams": `<input type="hidden" name="home_team_id" value="{{.Draft.HomeTeamID}}">
<input type="hidden" name="away_team_id" value="{{.Draft.AwayTeamID}}">
<input type="hidden" name="venue_id" value="{{.Draft.VenueID}}">
<input type="hidden" name="date" value="{{.Draft.Date}}">
<input type="hidden" name="time" value="{{.Draft.Time}}">`,

	"hScore": `<input type="hidden" name="home_score" value="{{.Draft.HomeScore}}">
<input type="hidden" name="away_score" value="{{.Draft.AwayScore}}">
<input type="hidden" name="end_type" value="{{.Draft.EndType}}">`,

	"hPeriods": `{{range $i, $p := .Draft.Periods}}<input type="hidden" name="p{{add1 $i}}_home" value="{{$p.Home}}">
<input type="hidden" name="p{{add1 $i}}_away" value="{{$p.Away}}">
{{end}}`,

	"hScorers": `{{range $id, $n := .Draft.HomeScorers}}<input type="hidden" name="hs_{{$id}}" value="{{$n}}">
{{end}}{{range $id, $n := .Draft.AwayScorers}}<input type="hidden" name="as_{{$id}}" value="{{$n}}">
{{end}}`,

	"hFlags": `<input type="hidden" name="publish" value="{{if .Draft.Publish}}1{{else}}0{{end}}">
<input type="hidden" name="notify" value="{{if .Draft.Notify}}1{{else}}0{{end}}">`,
}

const stepTeamsSrc = `<div id="wizard">
<header><h2>Step {{.StepNumber}} of {{.TotalSteps}}: Teams and date</h2></header>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form hx-post="/api/v1/admin/matches/wizard" hx-target="#wizard" hx-swap="outerHTML">
  {{template "hMeta" .}}{{template "hScore" .}}{{template "hPeriods" .}}{{template "hScorers" .}}{{template "hFlags" .}}
  <label>Home team
    <select name="home_team_id" required>
      <option value="0">Pick a team</option>
      {{range .Teams}}<option value="{{.ID}}" {{if eq .ID $.Draft.HomeTeamID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <label>Away team
    <select name="away_team_id" required>
      <option value="0">Pick a team</option>
      {{range .Teams}}<option value="{{.ID}}" {{if eq .ID $.Draft.AwayTeamID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <label>Venue
    <select name="venue_id">
      <option value="0">No venue</option>
      {{range .Venues}}<option value="{{.ID}}" {{if eq .ID $.Draft.VenueID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
  </label>
  <label>Date <input type="date" name="date" value="{{.Draft.Date}}" required></label>
  <label>Time <input type="time" name="time" value="{{.Draft.Time}}" required></label>
  <button type="submit" name="action" value="next">Next</button>
</form>
</div>`

const stepScoreSrc = `<div id="wizard">
<header><h2>Step {{.StepNumber}} of {{.TotalSteps}}: Final score</h2></header>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form hx-post="/api/v1/admin/matches/wizard" hx-target="#wizard" hx-swap="outerHTML">
  {{template "hMeta" .}}{{template "hTeams" .}}{{template "hPeriods" .}}{{template "hScorers" .}}{{template "hFlags" .}}
  <div class="score-entry">
    <label>{{.HomeTeamName}} <input type="number" name="home_score" value="{{.Draft.HomeScore}}" min="0" max="99"></label>
    <span>:</span>
    <label>{{.AwayTeamName}} <input type="number" name="away_score" value="{{.Draft.AwayScore}}" min="0" max="99"></label>
  </div>
  <label>Decided in
    <select name="end_type">
      <option value="regulation" {{if eq .Draft.EndType "regulation"}}selected{{end}}>Regulation</option>
      <option value="overtime" {{if eq .Draft.EndType "overtime"}}selected{{end}}>Overtime</option>
      <option value="shootout" {{if eq .Draft.EndType "shootout"}}selected{{end}}>Shootout</option>
    </select>
  </label>
  <button type="submit" name="action" value="back">Back</button>
  <button type="submit" name="action" value="next">Next</button>
</form>
</div>`

const stepPeriodsSrc = `<div id="wizard">
<header><h2>Step {{.StepNumber}} of {{.TotalSteps}}: Goals per period</h2></header>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form hx-post="/api/v1/admin/matches/wizard" hx-target="#wizard" hx-swap="outerHTML">
  {{template "hMeta" .}}{{template "hTeams" .}}{{template "hScore" .}}{{template "hScorers" .}}{{template "hFlags" .}}
  <table class="period-entry">
    <thead><tr><th></th><th>{{.HomeTeamName}}</th><th>{{.AwayTeamName}}</th></tr></thead>
    <tbody>
    {{range $i, $p := .Draft.Periods}}
      <tr>
        <td>Period {{add1 $i}}</td>
        <td><input type="number" name="p{{add1 $i}}_home" value="{{$p.Home}}" min="0"></td>
        <td><input type="number" name="p{{add1 $i}}_away" value="{{$p.Away}}" min="0"></td>
      </tr>
    {{end}}
    </tbody>
  </table>
  <p>Must add up to the final score {{.Draft.HomeScore}} : {{.Draft.AwayScore}}.
  {{if ne .Draft.EndType "regulation"}}Overtime and shootout goals count into the third period here.{{end}}</p>
  <button type="submit" name="action" value="back">Back</button>
  <button type="submit" name="action" value="next">Next</button>
</form>
</div>`

const stepScorersSrc = `<div id="wizard">
<header><h2>Step {{.StepNumber}} of {{.TotalSteps}}: Goal scorers</h2></header>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form hx-post="/api/v1/admin/matches/wizard" hx-target="#wizard" hx-swap="outerHTML">
  {{template "hMeta" .}}{{template "hTeams" .}}{{template "hScore" .}}{{template "hPeriods" .}}{{template "hFlags" .}}
  <div class="scorer-entry">
    <section>
      <h3>{{.HomeTeamName}}</h3>
      {{range .HomeRoster}}
      <label>{{if .Number}}#{{.Number}} {{end}}{{.Name}}
        <input type="number" name="hs_{{.ID}}" value="{{.Count}}" min="0" max="99">
      </label>
      {{else}}<p>No active players on the roster.</p>{{end}}
    </section>
    <section>
      <h3>{{.AwayTeamName}}</h3>
      {{range .AwayRoster}}
      <label>{{if .Number}}#{{.Number}} {{end}}{{.Name}}
        <input type="number" name="as_{{.ID}}" value="{{.Count}}" min="0" max="99">
      </label>
      {{else}}<p>No active players on the roster.</p>{{end}}
    </section>
  </div>
  <p>Attributing goals is optional; unassigned goals stay on the team total.</p>
  <button type="submit" name="action" value="back">Back</button>
  <button type="submit" name="action" value="next">Next</button>
</form>
</div>`

const stepReviewSrc = `<div id="wizard">
<header><h2>Step {{.StepNumber}} of {{.TotalSteps}}: Review</h2></header>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form hx-post="/api/v1/admin/matches/wizard" hx-target="#wizard" hx-swap="outerHTML">
  {{template "hMeta" .}}{{template "hTeams" .}}{{template "hScore" .}}{{template "hPeriods" .}}{{template "hScorers" .}}
  <dl class="review">
    <dt>Match</dt><dd>{{.HomeTeamName}} vs {{.AwayTeamName}}</dd>
    <dt>When</dt><dd>{{.Draft.Date}} {{.Draft.Time}}</dd>
    {{if .VenueName}}<dt>Where</dt><dd>{{.VenueName}}</dd>{{end}}
    {{if not .Draft.ScheduleOnly}}
    <dt>Score</dt><dd>{{.Draft.HomeScore}} : {{.Draft.AwayScore}}{{if ne .Draft.EndType "regulation"}} ({{.Draft.EndType}}){{end}}</dd>
    <dt>Periods</dt><dd>{{range $i, $p := .Draft.Periods}}{{if $i}}, {{end}}{{$p.Home}}:{{$p.Away}}{{end}}</dd>
    {{end}}
  </dl>
  <label><input type="checkbox" name="publish" value="1" {{if .Draft.Publish}}checked{{end}}> Publish on the site</label>
  {{if not .Draft.ScheduleOnly}}
  <label><input type="checkbox" name="notify" value="1" {{if .Draft.Notify}}checked{{end}}> Email subscribers the result</label>
  {{end}}
  <button type="submit" name="action" value="back">Back</button>
  <button type="submit" name="action" value="save">{{if .MatchID}}Save changes{{else}}Save match{{end}}</button>
</form>
</div>`

var (
	stepTeamsTmpl   = parseWizard("stepTeams", stepTeamsSrc)
	stepScoreTmpl   = parseWizard("stepScore", stepScoreSrc)
	stepPeriodsTmpl = parseWizard("stepPeriods", stepPeriodsSrc)
	stepScorersTmpl = parseWizard("stepScorers", stepScorersSrc)
	stepReviewTmpl  = parseWizard("stepReview", stepReviewSrc)
)

const listSrc = `<div id="match-list">
<table class="admin-table">
  <thead><tr><th>Date</th><th>Match</th><th>Status</th><th>Score</th><th></th></tr></thead>
  <tbody>
  {{range .}}
    <tr>
      <td>{{.Date}} {{.Time}}</td>
      <td>{{.HomeName}} vs {{.AwayName}}</td>
      <td>{{.Status}}{{if not .Published}} (draft){{end}}</td>
      <td>{{.Score}}</td>
      <td>
        <a href="/admin/matches/{{.ID}}/result">{{if .Score}}Edit result{{else}}Enter result{{end}}</a>
        {{if eq .Status "scheduled"}}
        <button hx-post="/api/v1/admin/matches/{{.ID}}/cancel" hx-target="#match-list" hx-swap="outerHTML">Cancel</button>
        {{end}}
        <button hx-delete="/api/v1/admin/matches/{{.ID}}" hx-target="#match-list" hx-swap="outerHTML"
                hx-confirm="Delete this match and its goals?">Delete</button>
      </td>
    </tr>
  {{else}}
    <tr><td colspan="5">No matches yet.</td></tr>
  {{end}}
  </tbody>
</table>
</div>`

const listPageSrc = `<section class="admin-section">
  <h1>Matches</h1>
  <p>
    <a class="button" href="/admin/matches/new">Enter match result</a>
    <a class="button" href="/admin/matches/schedule">Schedule match</a>
  </p>
  {{template "matchList" .}}
</section>`

var (
	listTmpl     = template.Must(template.New("matchList").Parse(listSrc))
	listPageTmpl = func() *template.Template {
		t := template.New("matchListPage")
		template.Must(t.New("matchList").Parse(listSrc))
		return template.Must(t.Parse(listPageSrc))
	}()
	wizardPageTmpl = template.Must(template.New("wizardPage").Parse(`<section class="admin-section">
  <h1>{{.Title}}</h1>
  <div id="wizard" hx-get="{{.StartURL}}" hx-trigger="load" hx-swap="outerHTML"></div>
</section>`))
)

// ListPageBody renders the full admin match section.
func ListPageBody(rows []AdminRow) templ.Component {
	return layouts.FromTemplate(listPageTmpl, rows)
}

// List renders the table fragment returned after every mutation.
func List(rows []AdminRow) templ.Component {
	return layouts.FromTemplate(listTmpl, rows)
}

type wizardPageData struct {
	Title    string
	StartURL string
}

// WizardPageBody hosts the wizard; the first step loads over htmx so the
// page shell and the step fragments share one render path.
func WizardPageBody(title, startURL string) templ.Component {
	return layouts.FromTemplate(wizardPageTmpl, wizardPageData{Title: title, StartURL: startURL})
}

// WizardStep renders the fragment for the view's current step.
func WizardStep(v WizardView) templ.Component {
	switch v.Step {
	case 2:
		return layouts.FromTemplate(stepScoreTmpl, v)
	case 3:
		return layouts.FromTemplate(stepPeriodsTmpl, v)
	case 4:
		return layouts.FromTemplate(stepScorersTmpl, v)
	case 5:
		return layouts.FromTemplate(stepReviewTmpl, v)
	default:
		return layouts.FromTemplate(stepTeamsTmpl, v)
	}
}
