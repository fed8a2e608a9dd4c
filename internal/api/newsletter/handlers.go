package newsletter

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/email"
	newslettertempl "github.com/mhruby/rinkside/internal/templates/components/newsletter"
	"github.com/mhruby/rinkside/internal/templates/layouts"
)

var (
	appConfig   *config.Config
	queries     *db.Queries
	emailSender email.EmailSender

	// One signup every 2 seconds across the process, bursting to 5. The
	// footer form is unauthenticated, so this caps how fast anyone can make
	// us send confirmation mail.
	subscribeLimiter = rate.NewLimiter(rate.Limit(0.5), 5)
)

// InitHandlers must be called during server startup before handling requests.
// The sender may be nil; signups still record but no confirmation goes out.
func InitHandlers(cfg *config.Config, q *db.Queries, sender email.EmailSender) {
	appConfig = cfg
	queries = q
	emailSender = sender
}

func leagueName() string {
	if appConfig != nil && appConfig.App.Name != "" {
		return appConfig.App.Name
	}
	return "Rinkside"
}

// ConfirmToken signs an email address into the token carried by the
// confirmation link. The payload is just the address; the signature keeps
// anyone from confirming addresses they do not control the inbox of.
func ConfirmToken(emailAddr, secret string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(emailAddr))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return payload + "." + hex.EncodeToString(mac.Sum(nil))
}

// ParseConfirmToken returns the signed email address, or ok=false for a
// malformed or tampered token.
func ParseConfirmToken(token, secret string) (emailAddr string, ok bool) {
	payload, sig, found := strings.Cut(token, ".")
	if !found {
		return "", false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// POST /api/v1/newsletter/subscribe
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !subscribeLimiter.Allow() {
		w.WriteHeader(http.StatusTooManyRequests)
		newslettertempl.SubscribeError("Too many signups right now. Try again in a minute.").Render(r.Context(), w)
		return
	}

	addr := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	if _, err := mail.ParseAddress(addr); err != nil || addr == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		newslettertempl.SubscribeError("That does not look like an email address.").Render(r.Context(), w)
		return
	}

	// Duplicate signups are accepted quietly; the response never reveals
	// whether an address was already subscribed.
	if err := queries.CreateSubscriber(r.Context(), addr); err != nil {
		logger.Error().Err(err).Msg("Failed to store subscriber")
		w.WriteHeader(http.StatusInternalServerError)
		newslettertempl.SubscribeError("Something went wrong. Try again later.").Render(r.Context(), w)
		return
	}

	if emailSender != nil {
		confirmURL := appConfig.App.BaseURL + "/newsletter/confirm?token=" +
			ConfirmToken(addr, appConfig.App.SecretKey)
		msg := email.BuildSubscriptionConfirmation(leagueName(), confirmURL)
		email.SendSubscriptionConfirmation(r.Context(), emailSender, addr, msg, logger)
	}

	newslettertempl.SubscribeAccepted().Render(r.Context(), w)
}

// GET /newsletter/confirm
func HandleConfirm(w http.ResponseWriter, r *http.Request) {
	addr, ok := ParseConfirmToken(r.URL.Query().Get("token"), appConfig.App.SecretKey)
	if ok {
		if err := queries.ConfirmSubscriber(r.Context(), addr); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to confirm subscriber")
			ok = false
		}
	}
	page := layouts.Base("Newsletter", leagueName(), "", newslettertempl.ConfirmBody(ok))
	page.Render(r.Context(), w)
}

// GET /newsletter/unsubscribe
//
// The unsubscribe link reuses the signed token format, so only mail
// recipients can remove an address.
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	addr, ok := ParseConfirmToken(r.URL.Query().Get("token"), appConfig.App.SecretKey)
	if ok {
		if err := queries.DeleteSubscriber(r.Context(), addr); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to delete subscriber")
			ok = false
		}
	}
	if !ok {
		http.Error(w, "Invalid link", http.StatusBadRequest)
		return
	}
	w.Write([]byte("You are unsubscribed."))
}
