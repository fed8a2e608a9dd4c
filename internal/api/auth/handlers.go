package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/api/authz"
	"github.com/mhruby/rinkside/internal/api/htmx"
	"github.com/mhruby/rinkside/internal/cognito"
	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/ratelimit"
	authtempl "github.com/mhruby/rinkside/internal/templates/components/auth"
	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var (
	appConfig     *config.Config
	cognitoClient *cognito.CognitoClient
	limiter       *ratelimit.Limiter
)

// InitHandlers wires the auth package to its runtime dependencies. The
// Cognito client may be nil in development, which enables the local admin
// fallback from config.
func InitHandlers(cfg *config.Config, client *cognito.CognitoClient, lim *ratelimit.Limiter) {
	appConfig = cfg
	cognitoClient = client
	limiter = lim
}

func clientIP(r *http.Request) string {
	return ratelimit.GetClientIP(r, appConfig != nil && appConfig.App.Environment == "production")
}

func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if user := authz.UserFromContext(r.Context()); authz.IsAdmin(user) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	component := authtempl.LoginPage()
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render login page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	if email == "" || password == "" {
		renderLoginError(w, r, "Email and password are required.")
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckPassword(email, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("password", email, ip, result.Reason)
			renderLoginError(w, r, "Too many attempts. Try again later.")
			return
		}
	}

	if cognitoClient == nil {
		handleLocalLogin(w, r, email, password, ip)
		return
	}

	result, err := cognitoClient.PasswordSignIn(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, cognito.ErrCognitoNotAuthorized) {
			if limiter != nil {
				limiter.RecordPasswordFailure(email, ip)
			}
			renderLoginError(w, r, "Invalid email or password.")
			return
		}
		if errors.Is(err, cognito.ErrCognitoThrottled) {
			renderLoginError(w, r, "Too many attempts. Try again later.")
			return
		}
		logger.Error().Err(err).Msg("Password sign-in failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if limiter != nil {
		limiter.ResetPasswordAttempts(email)
	}

	if result.NeedsTOTP {
		component := authtempl.TOTPChallenge(email, result.Session)
		if err := component.Render(r.Context(), w); err != nil {
			logger.Error().Err(err).Msg("Failed to render code form")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
		return
	}

	finishLogin(w, r, email, result.AccessToken)
}

// handleLocalLogin checks credentials against the configured local admin.
// Development fallback for running without a user pool.
func handleLocalLogin(w http.ResponseWriter, r *http.Request, email, password, ip string) {
	logger := log.Ctx(r.Context())

	if appConfig == nil || appConfig.Auth.LocalAdminEmail == "" || appConfig.Auth.LocalAdminHash == "" {
		logger.Error().Msg("No auth backend configured")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if email != strings.ToLower(appConfig.Auth.LocalAdminEmail) || !VerifyPassword(appConfig.Auth.LocalAdminHash, password) {
		if limiter != nil {
			limiter.RecordPasswordFailure(email, ip)
		}
		renderLoginError(w, r, "Invalid email or password.")
		return
	}

	if limiter != nil {
		limiter.ResetPasswordAttempts(email)
	}
	finishLogin(w, r, email, "")
}

func HandleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	component := authtempl.ForgotPasswordPage()
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render reset page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// HandleForgotPassword asks the user pool to email a reset code.
func HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if email == "" {
		renderForgotError(w, r, "Email is required.")
		return
	}

	if cognitoClient == nil {
		renderForgotError(w, r, "Password reset needs the hosted sign-in provider. Contact the league admin.")
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckPassword(email, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("password", email, ip, result.Reason)
			renderForgotError(w, r, "Too many attempts. Try again later.")
			return
		}
	}

	destination, err := cognitoClient.ForgotPassword(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, cognito.ErrCognitoUserNotFound):
			// Show the code form regardless, so the response does not
			// reveal which addresses have accounts.
		case errors.Is(err, cognito.ErrCognitoThrottled):
			renderForgotError(w, r, "Too many attempts. Try again later.")
			return
		default:
			logger.Error().Err(err).Msg("Failed to request password reset")
			renderForgotError(w, r, "Could not send the code. Try again later.")
			return
		}
	}

	logger.Info().Str("email", ratelimit.SanitizeIdentifier(email)).Msg("Password reset code requested")
	component := authtempl.ResetPasswordForm(email, destination)
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render reset form")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// HandleResetPassword completes the reset with the emailed code.
func HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	code := strings.TrimSpace(r.FormValue("code"))
	password := r.FormValue("password")
	if email == "" || code == "" || password == "" {
		renderForgotError(w, r, "Code and a new password are required.")
		return
	}

	if cognitoClient == nil {
		renderForgotError(w, r, "Password reset needs the hosted sign-in provider. Contact the league admin.")
		return
	}

	if err := cognitoClient.ConfirmForgotPassword(r.Context(), email, code, password); err != nil {
		switch {
		case errors.Is(err, cognito.ErrCognitoCodeMismatch), errors.Is(err, cognito.ErrCognitoUserNotFound):
			renderResetFormError(w, r, email, "Wrong code. Try again.")
		case errors.Is(err, cognito.ErrCognitoExpiredCode):
			renderResetFormError(w, r, email, "That code expired. Request a new one.")
		default:
			logger.Error().Err(err).Msg("Failed to confirm password reset")
			renderResetFormError(w, r, email, "Could not reset the password. Try again later.")
		}
		return
	}

	logger.Info().Str("email", ratelimit.SanitizeIdentifier(email)).Msg("Password reset completed")
	component := authtempl.ResetPasswordDone()
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render reset confirmation")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func renderForgotError(w http.ResponseWriter, r *http.Request, message string) {
	component := authtempl.ForgotPasswordError(message)
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render reset error")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func renderResetFormError(w http.ResponseWriter, r *http.Request, email, message string) {
	component := authtempl.ResetPasswordFormError(email, "", message)
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render reset form")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func HandleTOTP(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	session := r.FormValue("session")
	code := strings.TrimSpace(r.FormValue("code"))
	if email == "" || session == "" || code == "" {
		renderLoginError(w, r, "Verification code is required.")
		return
	}

	if cognitoClient == nil {
		logger.Error().Msg("Code challenge received without a user pool")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckTOTP(email, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("totp", email, ip, result.Reason)
			renderLoginError(w, r, "Too many attempts. Try again later.")
			return
		}
	}

	result, err := cognitoClient.RespondToTOTPChallenge(r.Context(), session, email, code)
	if err != nil {
		switch {
		case errors.Is(err, cognito.ErrCognitoCodeMismatch):
			if limiter != nil {
				limiter.RecordTOTPFailure(email, ip)
			}
			component := authtempl.TOTPChallengeError(email, session, "Wrong code. Try again.")
			if renderErr := component.Render(r.Context(), w); renderErr != nil {
				logger.Error().Err(renderErr).Msg("Failed to render code form")
				http.Error(w, "Failed to render page", http.StatusInternalServerError)
			}
		case errors.Is(err, cognito.ErrCognitoExpiredCode), errors.Is(err, cognito.ErrCognitoNotAuthorized):
			// Challenge sessions expire after a few minutes; restart the login.
			renderLoginError(w, r, "Session expired. Sign in again.")
		default:
			logger.Error().Err(err).Msg("Code challenge failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if limiter != nil {
		limiter.ResetTOTPAttempts(email)
	}
	finishLogin(w, r, email, result.AccessToken)
}

func finishLogin(w http.ResponseWriter, r *http.Request, email, accessToken string) {
	logger := log.Ctx(r.Context())

	user := &authz.AuthUser{Email: email, IsAdmin: true}
	if err := CreateSession(w, email, accessToken); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := SetAuthCookie(w, r, user); err != nil {
		logger.Error().Err(err).Msg("Failed to set auth cookie")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("email", ratelimit.SanitizeIdentifier(email)).Msg("Admin signed in")
	htmx.Redirect(w, r, "/admin")
}

// HandleSettingsPage renders the admin settings screen with the two-factor
// enrollment entry point.
func HandleSettingsPage(w http.ResponseWriter, r *http.Request) {
	name := "Rinkside"
	if appConfig != nil && appConfig.App.Name != "" {
		name = appConfig.App.Name
	}
	page := layouts.Admin("Settings", name, "settings", authtempl.SettingsBody())
	if err := page.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render settings page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	ClearAuthCookie(w)
	htmx.Redirect(w, r, "/")
}

// HandleTOTPSetup starts authenticator enrollment for the signed-in admin.
func HandleTOTPSetup(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())

	if cognitoClient == nil {
		http.Error(w, "Two-factor setup requires a user pool", http.StatusConflict)
		return
	}

	accessToken := AccessTokenFromRequest(r)
	if accessToken == "" {
		// The stateless cookie has no token; a fresh login is needed.
		renderLoginError(w, r, "Session expired. Sign in again.")
		return
	}

	secret, err := cognitoClient.AssociateSoftwareToken(r.Context(), accessToken)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to start authenticator enrollment")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	issuer := "Rinkside"
	if appConfig != nil && appConfig.App.Name != "" {
		issuer = appConfig.App.Name
	}
	uri := cognito.OTPAuthURI(issuer, user.Email, secret)

	component := authtempl.TOTPSetup(secret, uri)
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render enrollment form")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// HandleTOTPActivate confirms enrollment with a code from the authenticator.
func HandleTOTPActivate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	code := strings.TrimSpace(r.FormValue("code"))
	if code == "" {
		http.Error(w, "Code is required", http.StatusBadRequest)
		return
	}

	if cognitoClient == nil {
		http.Error(w, "Two-factor setup requires a user pool", http.StatusConflict)
		return
	}

	accessToken := AccessTokenFromRequest(r)
	if accessToken == "" {
		renderLoginError(w, r, "Session expired. Sign in again.")
		return
	}

	if err := cognitoClient.VerifySoftwareToken(r.Context(), accessToken, code); err != nil {
		if errors.Is(err, cognito.ErrCognitoCodeMismatch) {
			http.Error(w, "Wrong code. Try again.", http.StatusUnprocessableEntity)
			return
		}
		logger.Error().Err(err).Msg("Failed to verify authenticator code")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	component := authtempl.TOTPActivated()
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render enrollment confirmation")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func renderLoginError(w http.ResponseWriter, r *http.Request, message string) {
	component := authtempl.LoginError(message)
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render login error")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
