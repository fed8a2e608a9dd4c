package public

import (
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/mhruby/rinkside/internal/config"
	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/league"
	"github.com/mhruby/rinkside/internal/testutil"
)

func setupHandlers(t *testing.T) *db.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "Rinkside"

	database := testutil.NewTestDB(t)
	InitHandlers(cfg, database.Queries)
	t.Cleanup(func() {
		appConfig = nil
		queries = nil
	})
	return database
}

func seedFinishedMatch(t *testing.T, database *db.DB) (home, away int64) {
	t.Helper()
	ctx := context.Background()

	home, err := database.Queries.CreateTeam(ctx, db.CreateTeamParams{Name: "Bukovsko", ShortCode: "BUK", Color: "#003366"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err = database.Queries.CreateTeam(ctx, db.CreateTeamParams{Name: "Veseli", ShortCode: "VES", Color: "#990000"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}

	d := league.NewDraft(false)
	d.HomeTeamID = home
	d.AwayTeamID = away
	d.Date = "2026-02-07"
	d.Time = "18:30"
	d.HomeScore = 4
	d.AwayScore = 2
	d.Periods = [3]league.PeriodScore{{Home: 2, Away: 0}, {Home: 1, Away: 1}, {Home: 1, Away: 1}}
	if _, err := league.PublishDraft(ctx, database, d); err != nil {
		t.Fatalf("publish match: %v", err)
	}
	return home, away
}

func TestStandingsPageCountsFinishedMatch(t *testing.T) {
	database := setupHandlers(t)
	seedFinishedMatch(t, database)

	req := httptest.NewRequest("GET", "/standings", nil)
	rec := httptest.NewRecorder()

	HandleStandingsPage(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Bukovsko") || !strings.Contains(body, "Veseli") {
		t.Fatal("expected both teams in the standings table")
	}
}

func TestHomePageShowsLatestResult(t *testing.T) {
	database := setupHandlers(t)
	seedFinishedMatch(t, database)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	HandleHomePage(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "4 : 2") {
		t.Fatal("expected the finished score on the home page")
	}
}

func TestCalendarPageShowsMonthMatches(t *testing.T) {
	database := setupHandlers(t)
	seedFinishedMatch(t, database)

	req := httptest.NewRequest("GET", "/calendar?month=2026-02", nil)
	rec := httptest.NewRecorder()

	HandleCalendarPage(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "February 2026") {
		t.Fatal("expected the month heading")
	}
	if !strings.Contains(body, "BUK vs VES") {
		t.Fatal("expected the match on its day cell")
	}
	if !strings.Contains(body, "month=2026-01") || !strings.Contains(body, "month=2026-03") {
		t.Fatal("expected prev/next month links")
	}

	// A month without matches renders an empty grid.
	rec = httptest.NewRecorder()
	HandleCalendarPage(rec, httptest.NewRequest("GET", "/calendar?month=2026-03", nil))
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for empty month, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "BUK vs VES") {
		t.Fatal("expected no matches outside their month")
	}
}

func TestMatchDetailHidesUnpublishedMatch(t *testing.T) {
	database := setupHandlers(t)

	home, err := database.Queries.CreateTeam(context.Background(), db.CreateTeamParams{Name: "Bukovsko", ShortCode: "BUK", Color: "#003366"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := database.Queries.CreateTeam(context.Background(), db.CreateTeamParams{Name: "Veseli", ShortCode: "VES", Color: "#990000"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}

	d := league.NewDraft(true)
	d.HomeTeamID = home
	d.AwayTeamID = away
	d.Date = "2027-11-01"
	d.Time = "19:00"
	d.Publish = false
	matchID, err := league.PublishDraft(context.Background(), database, d)
	if err != nil {
		t.Fatalf("store draft match: %v", err)
	}

	id := strconv.FormatInt(matchID, 10)
	req := httptest.NewRequest("GET", "/matches/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	HandleMatchDetailPage(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected status 404 for unpublished match, got %d", rec.Code)
	}
}
