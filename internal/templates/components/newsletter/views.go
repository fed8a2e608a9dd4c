package newsletter

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var subscribeResult = template.Must(template.New("subscribeResult").Parse(`<p class="{{.Class}}">{{.Message}}</p>
`))

type resultData struct {
	Class   string
	Message string
}

// SubscribeAccepted renders the footer-form response after a signup.
func SubscribeAccepted() templ.Component {
	return layouts.FromTemplate(subscribeResult, resultData{
		Class:   "success",
		Message: "Almost there. Check your inbox for a confirmation link.",
	})
}

// SubscribeError renders the footer-form response for a rejected signup.
func SubscribeError(message string) templ.Component {
	return layouts.FromTemplate(subscribeResult, resultData{Class: "error", Message: message})
}

type confirmData struct {
	OK bool
}

var confirmBody = template.Must(template.New("confirmBody").Parse(`{{if .OK}}
<h1>Subscription confirmed</h1>
<p>You will get an email when new results are published.</p>
{{else}}
<h1>Link expired</h1>
<p>This confirmation link is not valid. Subscribe again to get a fresh one.</p>
{{end}}
<p><a href="/">Back to the site</a></p>
`))

// ConfirmBody renders the landing page for the emailed confirmation link.
func ConfirmBody(ok bool) templ.Component {
	return layouts.FromTemplate(confirmBody, confirmData{OK: ok})
}
