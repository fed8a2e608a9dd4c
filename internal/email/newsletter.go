package email

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mhruby/rinkside/internal/db"
)

const sendTimeout = 5 * time.Second

// SendSubscriptionConfirmation sends the opt-in email asynchronously.
func SendSubscriptionConfirmation(ctx context.Context, sender EmailSender, recipient string, msg Message, logger *zerolog.Logger) {
	if sender == nil {
		return
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || msg.Subject == "" || msg.Body == "" {
		return
	}

	// The caller is usually a request handler; its context is canceled the
	// moment the response goes out, so the send must not inherit that.
	ctx = context.WithoutCancel(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		if err := sender.Send(sendCtx, recipient, msg.Subject, msg.Body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send subscription confirmation")
		}
	}()
}

// NotifySubscribers fans a message out to every confirmed subscriber. Delivery
// runs in the background; individual failures are logged and do not stop the
// rest of the fan-out.
func NotifySubscribers(ctx context.Context, q *db.Queries, sender EmailSender, msg Message, logger *zerolog.Logger) {
	if sender == nil || q == nil {
		return
	}
	if msg.Subject == "" || msg.Body == "" {
		return
	}

	subscribers, err := q.ListConfirmedSubscribers(ctx)
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Msg("Failed to load subscribers for notification")
		}
		return
	}
	if len(subscribers) == 0 {
		return
	}

	// Detach from the request context; the fan-out outlives the response.
	ctx = context.WithoutCancel(ctx)

	go func() {
		for _, sub := range subscribers {
			recipient := strings.TrimSpace(sub.Email)
			if recipient == "" {
				continue
			}
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := sender.Send(sendCtx, recipient, msg.Subject, msg.Body)
			cancel()
			if err != nil && logger != nil {
				logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send subscriber notification")
			}
		}
	}()
}
