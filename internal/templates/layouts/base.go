package layouts

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/api/authz"
)

type shellData struct {
	Title      string
	LeagueName string
	Active     string
	IsAdmin    bool
}

var shellHead = template.Must(template.New("shellHead").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.LeagueName}}</title>
<link rel="stylesheet" href="/static/css/site.css">
<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>
</head>
<body>
<header class="site-header">
  <a class="brand" href="/">{{.LeagueName}}</a>
  <nav>
    <a href="/" {{if eq .Active "home"}}class="active"{{end}}>Home</a>
    <a href="/teams" {{if eq .Active "teams"}}class="active"{{end}}>Teams</a>
    <a href="/players" {{if eq .Active "players"}}class="active"{{end}}>Players</a>
    <a href="/matches" {{if eq .Active "matches"}}class="active"{{end}}>Matches</a>
    <a href="/calendar" {{if eq .Active "calendar"}}class="active"{{end}}>Calendar</a>
    <a href="/standings" {{if eq .Active "standings"}}class="active"{{end}}>Standings</a>
    <a href="/gallery" {{if eq .Active "gallery"}}class="active"{{end}}>Gallery</a>
    <a href="/about" {{if eq .Active "about"}}class="active"{{end}}>About</a>
    {{if .IsAdmin}}<a href="/admin" class="admin-link">Admin</a>{{end}}
  </nav>
</header>
<main>
`))

var shellTail = template.Must(template.New("shellTail").Parse(`</main>
<footer class="site-footer">
  <form hx-post="/api/v1/newsletter/subscribe" hx-target="#newsletter-result" class="newsletter-form">
    <label for="newsletter-email">Match updates by email</label>
    <input id="newsletter-email" type="email" name="email" placeholder="you@example.com" required>
    <button type="submit">Subscribe</button>
    <div id="newsletter-result"></div>
  </form>
  <p>&copy; {{.LeagueName}}</p>
</footer>
</body>
</html>
`))

// Base wraps a page body in the public site shell.
func Base(title, leagueName, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := shellData{
			Title:      title,
			LeagueName: leagueName,
			Active:     active,
			IsAdmin:    authz.IsAdmin(authz.UserFromContext(ctx)),
		}
		if err := shellHead.Execute(w, data); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return shellTail.Execute(w, data)
	})
}

var adminHead = template.Must(template.New("adminHead").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.LeagueName}} Admin</title>
<link rel="stylesheet" href="/static/css/site.css">
<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>
</head>
<body class="admin">
<header class="site-header">
  <a class="brand" href="/admin">{{.LeagueName}} Admin</a>
  <nav>
    <a href="/admin/matches" {{if eq .Active "matches"}}class="active"{{end}}>Matches</a>
    <a href="/admin/teams" {{if eq .Active "teams"}}class="active"{{end}}>Teams</a>
    <a href="/admin/players" {{if eq .Active "players"}}class="active"{{end}}>Players</a>
    <a href="/admin/settings" {{if eq .Active "settings"}}class="active"{{end}}>Settings</a>
    <a href="/" target="_blank">View site</a>
    <button hx-post="/api/v1/auth/logout">Sign out</button>
  </nav>
</header>
<main>
`))

var adminTail = template.Must(template.New("adminTail").Parse(`</main>
</body>
</html>
`))

// Admin wraps a page body in the back-office shell.
func Admin(title, leagueName, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := shellData{Title: title, LeagueName: leagueName, Active: active}
		if err := adminHead.Execute(w, data); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return adminTail.Execute(w, data)
	})
}

// FromTemplate binds a parsed template and its data into a templ component.
func FromTemplate(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.Execute(w, data)
	})
}
