package auth

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var loginPage = template.Must(template.New("loginPage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sign in</title>
<link rel="stylesheet" href="/static/css/site.css">
<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>
</head>
<body class="login">
<div class="login-card">
  <h1>Back office</h1>
  <div id="login-form">
    <form hx-post="/api/v1/auth/login" hx-target="#login-form">
      <label for="email">Email</label>
      <input id="email" type="email" name="email" autocomplete="username" required>
      <label for="password">Password</label>
      <input id="password" type="password" name="password" autocomplete="current-password" required>
      <button type="submit">Sign in</button>
    </form>
    <p class="login-links"><a href="/admin/forgot-password">Forgot password?</a></p>
  </div>
</div>
</body>
</html>
`))

// LoginPage renders the standalone sign-in screen.
func LoginPage() templ.Component {
	return layouts.FromTemplate(loginPage, nil)
}

var loginError = template.Must(template.New("loginError").Parse(`<form hx-post="/api/v1/auth/login" hx-target="#login-form">
  <p class="error">{{.}}</p>
  <label for="email">Email</label>
  <input id="email" type="email" name="email" autocomplete="username" required>
  <label for="password">Password</label>
  <input id="password" type="password" name="password" autocomplete="current-password" required>
  <button type="submit">Sign in</button>
</form>
`))

// LoginError re-renders the credential form with a message.
func LoginError(message string) templ.Component {
	return layouts.FromTemplate(loginError, message)
}

var forgotPage = template.Must(template.New("forgotPage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Reset password</title>
<link rel="stylesheet" href="/static/css/site.css">
<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>
</head>
<body class="login">
<div class="login-card">
  <h1>Reset password</h1>
  <div id="login-form">
    <form hx-post="/api/v1/auth/forgot" hx-target="#login-form">
      {{if .}}<p class="error">{{.}}</p>{{end}}
      <p>We will email a reset code to your account address.</p>
      <label for="email">Email</label>
      <input id="email" type="email" name="email" autocomplete="username" required>
      <button type="submit">Send code</button>
    </form>
    <p class="login-links"><a href="/admin/login">Back to sign in</a></p>
  </div>
</div>
</body>
</html>
`))

// ForgotPasswordPage renders the standalone reset request screen.
func ForgotPasswordPage() templ.Component {
	return layouts.FromTemplate(forgotPage, "")
}

var forgotError = template.Must(template.New("forgotError").Parse(`<form hx-post="/api/v1/auth/forgot" hx-target="#login-form">
  <p class="error">{{.}}</p>
  <label for="email">Email</label>
  <input id="email" type="email" name="email" autocomplete="username" required>
  <button type="submit">Send code</button>
</form>
`))

// ForgotPasswordError re-renders the reset request form with a message.
func ForgotPasswordError(message string) templ.Component {
	return layouts.FromTemplate(forgotError, message)
}

type resetFormData struct {
	Email       string
	Destination string
	Error       string
}

var resetForm = template.Must(template.New("resetForm").Parse(`<form hx-post="/api/v1/auth/reset" hx-target="#login-form">
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <p>Enter the code we sent{{if .Destination}} to {{.Destination}}{{end}} and pick a new password.</p>
  <input type="hidden" name="email" value="{{.Email}}">
  <label for="code">Code</label>
  <input id="code" type="text" name="code" inputmode="numeric" autocomplete="one-time-code" required>
  <label for="password">New password</label>
  <input id="password" type="password" name="password" autocomplete="new-password" required>
  <button type="submit">Reset password</button>
</form>
`))

// ResetPasswordForm renders the code-and-new-password step.
func ResetPasswordForm(email, destination string) templ.Component {
	return layouts.FromTemplate(resetForm, resetFormData{Email: email, Destination: destination})
}

// ResetPasswordFormError re-renders the reset step with a message.
func ResetPasswordFormError(email, destination, message string) templ.Component {
	return layouts.FromTemplate(resetForm, resetFormData{Email: email, Destination: destination, Error: message})
}

var resetDone = template.Must(template.New("resetDone").Parse(`<div class="reset-done">
  <p class="success">Password updated.</p>
  <p class="login-links"><a href="/admin/login">Sign in</a></p>
</div>
`))

// ResetPasswordDone confirms a completed reset.
func ResetPasswordDone() templ.Component {
	return layouts.FromTemplate(resetDone, nil)
}

type totpChallengeData struct {
	Email   string
	Session string
	Error   string
}

var totpChallenge = template.Must(template.New("totpChallenge").Parse(`<form hx-post="/api/v1/auth/totp" hx-target="#login-form">
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <p>Enter the 6-digit code from your authenticator app.</p>
  <input type="hidden" name="email" value="{{.Email}}">
  <input type="hidden" name="session" value="{{.Session}}">
  <label for="code">Code</label>
  <input id="code" type="text" name="code" inputmode="numeric" pattern="[0-9]{6}" autocomplete="one-time-code" required>
  <button type="submit">Verify</button>
</form>
`))

// TOTPChallenge renders the second sign-in factor form.
func TOTPChallenge(email, session string) templ.Component {
	return layouts.FromTemplate(totpChallenge, totpChallengeData{Email: email, Session: session})
}

// TOTPChallengeError re-renders the code form with a message.
func TOTPChallengeError(email, session, message string) templ.Component {
	return layouts.FromTemplate(totpChallenge, totpChallengeData{Email: email, Session: session, Error: message})
}

type totpSetupData struct {
	Secret string
	URI    string
}

var totpSetup = template.Must(template.New("totpSetup").Parse(`<div class="totp-setup">
  <p>Add this account to your authenticator app, then confirm with a code.</p>
  <p class="totp-secret"><code>{{.Secret}}</code></p>
  <p><a href="{{.URI}}">Open in authenticator</a></p>
  <form hx-post="/api/v1/auth/totp/activate" hx-target="closest .totp-setup">
    <label for="code">Code</label>
    <input id="code" type="text" name="code" inputmode="numeric" pattern="[0-9]{6}" autocomplete="one-time-code" required>
    <button type="submit">Activate</button>
  </form>
</div>
`))

// TOTPSetup renders the enrollment secret and confirmation form.
func TOTPSetup(secret, uri string) templ.Component {
	return layouts.FromTemplate(totpSetup, totpSetupData{Secret: secret, URI: uri})
}

var totpActivated = template.Must(template.New("totpActivated").Parse(`<div class="totp-setup">
  <p class="success">Two-factor authentication is now active.</p>
</div>
`))

// TOTPActivated confirms a completed enrollment.
func TOTPActivated() templ.Component {
	return layouts.FromTemplate(totpActivated, nil)
}

var settingsPage = template.Must(template.New("settingsPage").Parse(`<section class="settings">
  <h1>Settings</h1>
  <h2>Two-factor authentication</h2>
  <div class="totp-setup">
    <p>Protect this account with an authenticator app.</p>
    <button hx-post="/api/v1/auth/totp/setup" hx-target="closest .totp-setup">Set up authenticator</button>
  </div>
</section>
`))

// SettingsBody renders the admin settings page content.
func SettingsBody() templ.Component {
	return layouts.FromTemplate(settingsPage, nil)
}
