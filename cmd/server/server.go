// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/api"
	"github.com/mhruby/rinkside/internal/api/auth"
	"github.com/mhruby/rinkside/internal/api/matches"
	"github.com/mhruby/rinkside/internal/api/newsletter"
	"github.com/mhruby/rinkside/internal/api/players"
	"github.com/mhruby/rinkside/internal/api/public"
	"github.com/mhruby/rinkside/internal/api/teams"
	"github.com/mhruby/rinkside/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Public site
	mux.HandleFunc("GET /{$}", public.HandleHomePage)
	mux.HandleFunc("GET /teams", public.HandleTeamsPage)
	mux.HandleFunc("GET /teams/{id}", public.HandleTeamDetailPage)
	mux.HandleFunc("GET /players", public.HandlePlayersPage)
	mux.HandleFunc("GET /matches", public.HandleMatchesPage)
	mux.HandleFunc("GET /matches/{id}", public.HandleMatchDetailPage)
	mux.HandleFunc("GET /calendar", public.HandleCalendarPage)
	mux.HandleFunc("GET /standings", public.HandleStandingsPage)
	mux.HandleFunc("GET /api/v1/standings", public.HandleStandingsJSON)
	mux.HandleFunc("GET /api/v1/scorers", public.HandleScorersJSON)
	mux.HandleFunc("GET /gallery", public.HandleGalleryPage)
	mux.HandleFunc("GET /about", public.HandleAboutPage)

	// Newsletter
	mux.HandleFunc("POST /api/v1/newsletter/subscribe", newsletter.HandleSubscribe)
	mux.HandleFunc("GET /newsletter/confirm", newsletter.HandleConfirm)
	mux.HandleFunc("GET /newsletter/unsubscribe", newsletter.HandleUnsubscribe)

	// Auth
	mux.HandleFunc("GET /admin/login", auth.HandleLoginPage)
	mux.HandleFunc("GET /admin/forgot-password", auth.HandleForgotPasswordPage)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/forgot", auth.HandleForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset", auth.HandleResetPassword)
	mux.HandleFunc("POST /api/v1/auth/totp", auth.HandleTOTP)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)

	// Back office; WithAdminAuth relies on WithAuth having resolved the
	// session further up the chain.
	adminRoutes := map[string]http.HandlerFunc{
		"GET /admin": func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/matches", http.StatusSeeOther)
		},
		"GET /admin/matches":             matches.HandleMatchesPage,
		"GET /admin/matches/new":         matches.HandleNewMatchPage,
		"GET /admin/matches/schedule":    matches.HandleScheduleMatchPage,
		"GET /admin/matches/{id}/result": matches.HandleEditResultPage,
		"GET /admin/teams":               teams.HandleTeamsPage,
		"GET /admin/players":             players.HandlePlayersPage,
		"GET /admin/settings":            auth.HandleSettingsPage,

		"GET /api/v1/admin/matches":              matches.HandleList,
		"GET /api/v1/admin/matches/wizard/start": matches.HandleWizardStart,
		"POST /api/v1/admin/matches/wizard":      matches.HandleWizard,
		"POST /api/v1/admin/matches/{id}/cancel": matches.HandleCancel,
		"DELETE /api/v1/admin/matches/{id}":      matches.HandleDelete,

		"GET /api/v1/admin/teams":           teams.HandleList,
		"GET /api/v1/admin/teams/new":       teams.HandleNewForm,
		"GET /api/v1/admin/teams/{id}/edit": teams.HandleEditForm,
		"POST /api/v1/admin/teams":          teams.HandleCreate,
		"PUT /api/v1/admin/teams/{id}":      teams.HandleUpdate,
		"DELETE /api/v1/admin/teams/{id}":   teams.HandleDelete,

		"GET /api/v1/admin/players":           players.HandleList,
		"GET /api/v1/admin/players/new":       players.HandleNewForm,
		"GET /api/v1/admin/players/{id}/edit": players.HandleEditForm,
		"POST /api/v1/admin/players":          players.HandleCreate,
		"PUT /api/v1/admin/players/{id}":      players.HandleUpdate,
		"DELETE /api/v1/admin/players/{id}":   players.HandleDelete,

		"POST /api/v1/auth/totp/setup":    auth.HandleTOTPSetup,
		"POST /api/v1/auth/totp/activate": auth.HandleTOTPActivate,
	}
	for pattern, handler := range adminRoutes {
		mux.Handle(pattern, api.WithAdminAuth(handler))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Static files
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("path", r.URL.Path).Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
