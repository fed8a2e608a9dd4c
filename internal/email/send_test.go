package email

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/testutil"
)

type fakeEmailSender struct {
	sendCalls   int32
	sendStarted chan struct{}
	sendResults chan error
	recipients  chan string
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{
		sendStarted: make(chan struct{}, 8),
		sendResults: make(chan error, 8),
		recipients:  make(chan string, 8),
	}
}

func (f *fakeEmailSender) Send(ctx context.Context, recipient, subject, body string) error {
	atomic.AddInt32(&f.sendCalls, 1)
	select {
	case f.recipients <- recipient:
	default:
	}
	select {
	case f.sendStarted <- struct{}{}:
	default:
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	select {
	case f.sendResults <- err:
	default:
	}
	return err
}

func (f *fakeEmailSender) SendFrom(ctx context.Context, recipient, subject, body, sender string) error {
	return f.Send(ctx, recipient, subject, body)
}

func insertSubscriber(t *testing.T, database *db.DB, email string, confirmed bool) {
	t.Helper()
	if _, err := database.Exec(
		`INSERT INTO subscribers (email, confirmed) VALUES (?, ?)`,
		email, confirmed,
	); err != nil {
		t.Fatalf("insert subscriber: %v", err)
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}, message string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(200 * time.Millisecond):
		t.Fatal(message)
	}
}

func TestNotifySubscribers_ConfirmedOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	insertSubscriber(t, database, "fan@test.com", true)
	insertSubscriber(t, database, "pending@test.com", false)
	sender := newFakeEmailSender()

	NotifySubscribers(context.Background(), database.Queries, sender, Message{
		Subject: "Final: HC Bukovsko 5 : 3 HC Kostelec",
		Body:    "A new result has been published.",
	}, nil)

	waitForSignal(t, sender.sendStarted, "expected a notification send to start")

	select {
	case recipient := <-sender.recipients:
		if recipient != "fan@test.com" {
			t.Fatalf("sent to %q, want the confirmed subscriber", recipient)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no recipient recorded")
	}

	// The unconfirmed subscriber never gets a send.
	time.Sleep(100 * time.Millisecond)
	if calls := atomic.LoadInt32(&sender.sendCalls); calls != 1 {
		t.Fatalf("expected one send call, got %d", calls)
	}
}

func TestNotifySubscribers_EmptyMessageIsDropped(t *testing.T) {
	database := testutil.NewTestDB(t)
	insertSubscriber(t, database, "fan@test.com", true)
	sender := newFakeEmailSender()

	NotifySubscribers(context.Background(), database.Queries, sender, Message{}, nil)

	time.Sleep(50 * time.Millisecond)
	if calls := atomic.LoadInt32(&sender.sendCalls); calls != 0 {
		t.Fatalf("expected no send calls, got %d", calls)
	}
}

// Request contexts are canceled as soon as the handler returns; the send
// spawned from a handler has to complete anyway.
func TestSendSubscriptionConfirmation_OutlivesCallerContext(t *testing.T) {
	sender := newFakeEmailSender()

	ctx, cancel := context.WithCancel(context.Background())
	SendSubscriptionConfirmation(ctx, sender, "fan@test.com", Message{
		Subject: "Confirm your subscription",
		Body:    "Open the link.",
	}, nil)
	cancel()

	waitForSignal(t, sender.sendStarted, "expected confirmation send to start")

	select {
	case err := <-sender.sendResults:
		if err != nil {
			t.Fatalf("send aborted after caller cancellation: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("confirmation send never completed")
	}
}

func TestNotifySubscribers_OutlivesCallerContext(t *testing.T) {
	database := testutil.NewTestDB(t)
	insertSubscriber(t, database, "fan@test.com", true)
	sender := newFakeEmailSender()

	ctx, cancel := context.WithCancel(context.Background())
	NotifySubscribers(ctx, database.Queries, sender, Message{
		Subject: "Final: HC Bukovsko 5 : 3 HC Kostelec",
		Body:    "A new result has been published.",
	}, nil)
	cancel()

	select {
	case err := <-sender.sendResults:
		if err != nil {
			t.Fatalf("fan-out send aborted after caller cancellation: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("fan-out send never completed")
	}
}

func TestBuildResultNotification(t *testing.T) {
	msg := BuildResultNotification(ResultDetails{
		LeagueName: "BHLA",
		HomeTeam:   "HC Bukovsko",
		AwayTeam:   "HC Kostelec",
		HomeScore:  4,
		AwayScore:  3,
		Date:       "Sat 14 Mar",
		Decided:    "overtime",
		Venue:      "Winter Stadium Bukovsko",
	})

	if msg.Subject != "Final: HC Bukovsko 4 : 3 HC Kostelec" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Decided in overtime.") {
		t.Errorf("body missing overtime note: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Winter Stadium Bukovsko") {
		t.Errorf("body missing venue: %q", msg.Body)
	}
}

func TestBuildWeeklyDigest(t *testing.T) {
	if msg := BuildWeeklyDigest("BHLA", nil); msg.Subject != "" || msg.Body != "" {
		t.Errorf("empty schedule should yield a zero message, got %+v", msg)
	}

	msg := BuildWeeklyDigest("BHLA", []DigestMatch{
		{Date: "Sat 14 Mar", Time: "18:00", HomeTeam: "HC Bukovsko", AwayTeam: "HC Kostelec", Venue: "Winter Stadium Bukovsko"},
	})
	if msg.Subject != "BHLA: this week's matches" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "HC Bukovsko vs HC Kostelec") {
		t.Errorf("body = %q", msg.Body)
	}
}
