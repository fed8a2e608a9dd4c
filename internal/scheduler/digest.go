package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/email"
	"github.com/mhruby/rinkside/internal/league"
)

const digestHorizon = 7 * 24 * time.Hour

// RegisterDigestJob registers the weekly upcoming-matches digest for
// newsletter subscribers.
func RegisterDigestJob(database *db.DB, sender email.EmailSender, leagueName, cronExpr string) error {
	if database == nil {
		return fmt.Errorf("digest job requires database")
	}

	jobName := "newsletter_digest"
	jobLogger := log.With().
		Str("component", "newsletter_digest_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if sender == nil {
			jobLogger.Debug().Msg("Digest job skipped: email client not configured")
			return
		}

		matches, err := database.Queries.ListPublishedMatches(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to load matches for digest")
			return
		}

		now := time.Now()
		var upcoming []email.DigestMatch
		for _, m := range league.UpcomingMatches(matches, now, 0) {
			start, err := league.MatchStart(m.Match, time.Local)
			if err != nil || start.After(now.Add(digestHorizon)) {
				continue
			}
			venue := ""
			if m.VenueName.Valid {
				venue = m.VenueName.String
			}
			upcoming = append(upcoming, email.DigestMatch{
				Date:     league.FormatDate(m.MatchDate),
				Time:     m.MatchTime,
				HomeTeam: m.HomeTeamName,
				AwayTeam: m.AwayTeamName,
				Venue:    venue,
			})
		}
		if len(upcoming) == 0 {
			jobLogger.Debug().Msg("Digest job skipped: no upcoming matches")
			return
		}

		msg := email.BuildWeeklyDigest(leagueName, upcoming)

		subscribers, err := database.Queries.ListConfirmedSubscribers(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to load subscribers for digest")
			return
		}

		sent := 0
		for _, sub := range subscribers {
			recipient := strings.TrimSpace(sub.Email)
			if recipient == "" {
				continue
			}
			if err := sender.Send(ctx, recipient, msg.Subject, msg.Body); err != nil {
				jobLogger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send digest email")
				continue
			}
			sent++
		}
		jobLogger.Info().Int("recipients", sent).Int("matches", len(upcoming)).Msg("Digest sent")
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add newsletter digest job: %w", err)
	}

	jobLogger.Info().Msg("Newsletter digest job registered")
	return nil
}
