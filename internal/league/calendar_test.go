package league

import (
	"database/sql"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestCalendarURL(t *testing.T) {
	m := matchWithTeams("2026-03-14", "18:00", "HC Bukovsko", "HC Kostelec")
	m.VenueName = sql.NullString{String: "Winter Stadium Bukovsko", Valid: true}

	raw := CalendarURL(m, "BHLA", time.UTC)
	if raw == "" {
		t.Fatal("expected a calendar url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Host != "calendar.google.com" || u.Path != "/calendar/render" {
		t.Errorf("unexpected endpoint %s%s", u.Host, u.Path)
	}

	q := u.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Errorf("action = %q", q.Get("action"))
	}
	if q.Get("text") != "HC Bukovsko vs HC Kostelec - BHLA" {
		t.Errorf("text = %q", q.Get("text"))
	}
	// Two-hour window in UTC basic format.
	if q.Get("dates") != "20260314T180000Z/20260314T200000Z" {
		t.Errorf("dates = %q", q.Get("dates"))
	}
	if q.Get("location") != "Winter Stadium Bukovsko" {
		t.Errorf("location = %q", q.Get("location"))
	}
	if !strings.Contains(q.Get("details"), "HC Bukovsko vs HC Kostelec") {
		t.Errorf("details = %q", q.Get("details"))
	}
}

func TestCalendarURLWithoutVenue(t *testing.T) {
	m := matchWithTeams("2026-03-14", "18:00", "HC Bukovsko", "HC Kostelec")
	raw := CalendarURL(m, "BHLA", time.UTC)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Query().Has("location") {
		t.Error("no venue means no location parameter")
	}
}

func TestCalendarURLBadDate(t *testing.T) {
	m := matchWithTeams("not-a-date", "18:00", "A", "B")
	if got := CalendarURL(m, "BHLA", time.UTC); got != "" {
		t.Errorf("unparseable date should yield empty url, got %q", got)
	}
}
