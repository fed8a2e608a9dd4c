package public

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

func parseView(name, src string) *template.Template {
	t := template.New(name).Funcs(template.FuncMap{
		"add1": func(i int) int { return i + 1 },
	})
	template.Must(t.New("matchCard").Parse(matchCardSrc))
	return template.Must(t.Parse(src))
}

const matchCardSrc = `<article class="match-card match-{{.Status}}">
  <div class="match-teams">
    <span class="team" style="--team-color: {{.HomeColor}}"><b>{{.HomeCode}}</b> {{.HomeName}}</span>
    {{if .Score}}<span class="score">{{.Score}}{{if .Decided}} <small>{{.Decided}}</small>{{end}}</span>{{else}}<span class="vs">vs</span>{{end}}
    <span class="team" style="--team-color: {{.AwayColor}}"><b>{{.AwayCode}}</b> {{.AwayName}}</span>
  </div>
  <div class="match-meta">
    <span>{{.Date}} {{.Time}}</span>
    {{if .Venue}}<span>{{.Venue}}</span>{{end}}
    {{if eq .Status "cancelled"}}<span class="cancelled">Cancelled</span>{{end}}
    {{if .CalendarURL}}<a href="{{.CalendarURL}}" target="_blank" rel="noopener">Add to calendar</a>{{end}}
    <a href="/matches/{{.ID}}">Details</a>
  </div>
</article>`

const homeBodySrc = `<section class="hero">
  <h1>Amateur hockey, serious rivalries.</h1>
</section>
<section class="home-matches">
  {{if .LastResult}}
  <div>
    <h2>Latest result</h2>
    {{template "matchCard" .LastResult}}
  </div>
  {{end}}
  {{if .NextMatch}}
  <div>
    <h2>Next match</h2>
    {{template "matchCard" .NextMatch}}
  </div>
  {{end}}
</section>
{{if .Standings}}
<section class="home-standings">
  <h2>Standings</h2>
  <table>
    <thead><tr><th></th><th>Team</th><th>GP</th><th>Pts</th></tr></thead>
    <tbody>
    {{range $i, $row := .Standings}}
      <tr><td>{{add1 $i}}</td><td>{{$row.TeamName}}</td><td>{{$row.Played}}</td><td><b>{{$row.Points}}</b></td></tr>
    {{end}}
    </tbody>
  </table>
  <a href="/standings">Full table</a>
</section>
{{end}}
{{if .Scorers}}
<section class="home-scorers">
  <h2>Top scorers</h2>
  <ol>
  {{range .Scorers}}<li>{{.Name}} <small>{{.TeamName}}</small> <b>{{.Goals}}</b></li>{{end}}
  </ol>
</section>
{{end}}
`

const teamsBodySrc = `<h1>Teams</h1>
<div class="team-grid">
{{range .}}
  <a class="team-card" href="/teams/{{.ID}}" style="--team-color: {{.Color}}">
    <span class="team-code">{{.Code}}</span>
    <h2>{{.Name}}</h2>
    {{if .Founded}}<p>Founded {{.Founded}}</p>{{end}}
  </a>
{{end}}
</div>
`

const teamDetailBodySrc = `<header class="team-header" style="--team-color: {{.Team.Color}}">
  <span class="team-code">{{.Team.Code}}</span>
  <h1>{{.Team.Name}}</h1>
  {{if .Team.Founded}}<p>Founded {{.Team.Founded}}</p>{{end}}
  {{if .Team.Description}}<p>{{.Team.Description}}</p>{{end}}
</header>
<h2>Roster</h2>
{{if .Roster}}
<table class="roster">
  <thead><tr><th>#</th><th>Name</th><th>Position</th></tr></thead>
  <tbody>
  {{range .Roster}}<tr><td>{{.Number}}</td><td>{{.Name}}</td><td>{{.Position}}</td></tr>{{end}}
  </tbody>
</table>
{{else}}
<p>No active players yet.</p>
{{end}}
`

const playersBodySrc = `<h1>Players</h1>
{{if .Scorers}}
<section>
  <h2>Top scorers</h2>
  <table class="scorers">
    <thead><tr><th></th><th>Player</th><th>Team</th><th>G</th></tr></thead>
    <tbody>
    {{range $i, $s := .Scorers}}
      <tr><td>{{add1 $i}}</td><td>{{if $s.Number}}#{{$s.Number}} {{end}}{{$s.Name}}</td><td>{{$s.TeamName}}</td><td><b>{{$s.Goals}}</b></td></tr>
    {{end}}
    </tbody>
  </table>
</section>
{{end}}
{{range .Rosters}}
<section class="roster-section">
  <h2><a href="/teams/{{.TeamID}}" style="--team-color: {{.Color}}">{{.TeamName}}</a></h2>
  {{if .Players}}
  <table class="roster">
    <thead><tr><th>#</th><th>Name</th><th>Position</th></tr></thead>
    <tbody>
    {{range .Players}}<tr><td>{{.Number}}</td><td>{{.Name}}</td><td>{{.Position}}</td></tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p>No active players yet.</p>
  {{end}}
</section>
{{else}}
<p>No teams registered yet.</p>
{{end}}
`

const matchesBodySrc = `<h1>Matches</h1>
{{if .Upcoming}}
<section>
  <h2>Upcoming</h2>
  {{range .Upcoming}}{{template "matchCard" .}}{{end}}
</section>
{{end}}
{{if .Results}}
<section>
  <h2>Results</h2>
  {{range .Results}}{{template "matchCard" .}}{{end}}
</section>
{{end}}
{{if and (not .Upcoming) (not .Results)}}<p>Nothing on the calendar yet.</p>{{end}}
`

const matchDetailBodySrc = `<header class="match-header">
  <h1>{{.Card.HomeName}} {{if .Card.Score}}{{.Card.Score}}{{else}}vs{{end}} {{.Card.AwayName}}</h1>
  <p>{{.Card.FullDate}} {{.Card.Time}}{{if .Card.Venue}} &middot; {{.Card.Venue}}{{end}}{{if .Card.Decided}} &middot; {{.Card.Decided}}{{end}}</p>
  {{if .Card.CalendarURL}}<a href="{{.Card.CalendarURL}}" target="_blank" rel="noopener">Add to calendar</a>{{end}}
</header>
{{if .HasResult}}
<section>
  <h2>Periods</h2>
  <table class="periods">
    <thead><tr><th></th><th>{{.Card.HomeCode}}</th><th>{{.Card.AwayCode}}</th></tr></thead>
    <tbody>
    {{range .Periods}}<tr><td>{{.Label}}</td><td>{{.Home}}</td><td>{{.Away}}</td></tr>{{end}}
    </tbody>
  </table>
</section>
{{if .Goals}}
<section>
  <h2>Goals</h2>
  <ul class="goal-list">
  {{range .Goals}}<li>{{if .Number}}#{{.Number}} {{end}}{{.Scorer}} <small>{{.Team}}</small></li>{{end}}
  </ul>
</section>
{{end}}
{{end}}
`

const calendarBodySrc = `<h1>Calendar</h1>
<nav class="calendar-nav">
  <a href="/calendar?month={{.PrevMonth}}">&larr;</a>
  <span>{{.MonthLabel}}</span>
  <a href="/calendar?month={{.NextMonth}}">&rarr;</a>
</nav>
<table class="calendar">
  <thead><tr><th>Mon</th><th>Tue</th><th>Wed</th><th>Thu</th><th>Fri</th><th>Sat</th><th>Sun</th></tr></thead>
  <tbody>
  {{range .Weeks}}
    <tr>
    {{range .}}
      <td{{if not .InMonth}} class="other-month"{{end}}>
        <span class="day">{{.Day}}</span>
        {{range .Matches}}
        <div class="calendar-match">
          <a href="/matches/{{.ID}}">{{.HomeCode}} vs {{.AwayCode}}</a>
          <small>{{if .Score}}{{.Score}}{{else}}{{.Time}}{{end}}</small>
          {{if .CalendarURL}}<a class="calendar-add" href="{{.CalendarURL}}" target="_blank" rel="noopener" title="Add to Google Calendar">+</a>{{end}}
        </div>
        {{end}}
      </td>
    {{end}}
    </tr>
  {{end}}
  </tbody>
</table>
`

const standingsBodySrc = `<h1>Standings</h1>
<table class="standings">
  <thead>
    <tr><th></th><th>Team</th><th>GP</th><th>W</th><th>OTW</th><th>OTL</th><th>L</th><th>GF</th><th>GA</th><th>Pts</th></tr>
  </thead>
  <tbody>
  {{range $i, $row := .Rows}}
    <tr>
      <td>{{add1 $i}}</td><td>{{$row.TeamName}}</td>
      <td>{{$row.Played}}</td><td>{{$row.Wins}}</td><td>{{$row.OTWins}}</td>
      <td>{{$row.OTLosses}}</td><td>{{$row.Losses}}</td>
      <td>{{$row.GoalsFor}}</td><td>{{$row.GoalsAgainst}}</td>
      <td><b>{{$row.Points}}</b></td>
    </tr>
  {{end}}
  </tbody>
</table>
<p class="legend">Win 3 pts &middot; OT/SO win 2 pts &middot; OT/SO loss 1 pt</p>
{{if .Scorers}}
<h2>Top scorers</h2>
<table class="scorers">
  <thead><tr><th></th><th>Player</th><th>Team</th><th>G</th></tr></thead>
  <tbody>
  {{range $i, $s := .Scorers}}
    <tr><td>{{add1 $i}}</td><td>{{if $s.Number}}#{{$s.Number}} {{end}}{{$s.Name}}</td><td>{{$s.TeamName}}</td><td><b>{{$s.Goals}}</b></td></tr>
  {{end}}
  </tbody>
</table>
{{end}}
`

const galleryBodySrc = `<h1>Gallery</h1>
<p>Snapshots from around the league.</p>
<div class="gallery-grid">
{{range .}}
  <figure>
    <img src="{{.Src}}" alt="{{.Caption}}" loading="lazy">
    <figcaption>{{.Caption}}</figcaption>
  </figure>
{{end}}
</div>
`

const aboutBodySrc = `<h1>About {{.}}</h1>
<p>{{.}} is an amateur ice hockey league run by volunteers. Teams play a
round-robin schedule through the winter; standings and results on this site
are updated after every match night.</p>
<p>Want to join with a team of your own? Talk to us at the rink.</p>
`

var (
	homeBody        = parseView("homeBody", homeBodySrc)
	teamsBody       = parseView("teamsBody", teamsBodySrc)
	teamDetailBody  = parseView("teamDetailBody", teamDetailBodySrc)
	playersBody     = parseView("playersBody", playersBodySrc)
	matchesBody     = parseView("matchesBody", matchesBodySrc)
	matchDetailBody = parseView("matchDetailBody", matchDetailBodySrc)
	calendarBody    = parseView("calendarBody", calendarBodySrc)
	standingsBody   = parseView("standingsBody", standingsBodySrc)
	galleryBody     = parseView("galleryBody", galleryBodySrc)
	aboutBody       = parseView("aboutBody", aboutBodySrc)
)

type teamDetailData struct {
	Team   TeamCard
	Roster []RosterPlayer
}

type galleryItem struct {
	Src     string
	Caption string
}

// Placeholder set until real photo uploads exist.
var galleryItems = []galleryItem{
	{Src: "/static/img/gallery/faceoff.svg", Caption: "Opening faceoff"},
	{Src: "/static/img/gallery/celebration.svg", Caption: "Overtime winner"},
	{Src: "/static/img/gallery/goalie.svg", Caption: "Glove save"},
	{Src: "/static/img/gallery/bench.svg", Caption: "The bench"},
	{Src: "/static/img/gallery/rink.svg", Caption: "Winter Stadium Bukovsko"},
	{Src: "/static/img/gallery/fans.svg", Caption: "Home crowd"},
}

func HomeBody(v HomeView) templ.Component {
	return layouts.FromTemplate(homeBody, v)
}

func TeamsBody(teams []TeamCard) templ.Component {
	return layouts.FromTemplate(teamsBody, teams)
}

func TeamDetailBody(team TeamCard, roster []RosterPlayer) templ.Component {
	return layouts.FromTemplate(teamDetailBody, teamDetailData{Team: team, Roster: roster})
}

func PlayersBody(v PlayersView) templ.Component {
	return layouts.FromTemplate(playersBody, v)
}

func MatchesBody(v MatchesView) templ.Component {
	return layouts.FromTemplate(matchesBody, v)
}

func MatchDetailBody(v MatchDetailView) templ.Component {
	return layouts.FromTemplate(matchDetailBody, v)
}

func CalendarBody(v CalendarView) templ.Component {
	return layouts.FromTemplate(calendarBody, v)
}

func StandingsBody(v StandingsView) templ.Component {
	return layouts.FromTemplate(standingsBody, v)
}

func GalleryBody() templ.Component {
	return layouts.FromTemplate(galleryBody, galleryItems)
}

func AboutBody(leagueName string) templ.Component {
	return layouts.FromTemplate(aboutBody, leagueName)
}
