package league_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/mhruby/rinkside/internal/db"
	"github.com/mhruby/rinkside/internal/league"
	"github.com/mhruby/rinkside/internal/testutil"
)

func seedTeams(t *testing.T, database *db.DB) (home, away int64) {
	t.Helper()
	ctx := context.Background()
	home, err := database.Queries.CreateTeam(ctx, db.CreateTeamParams{Name: "HC Bukovsko", ShortCode: "BUK", Color: "#1e3a8a"})
	if err != nil {
		t.Fatalf("seed home team: %v", err)
	}
	away, err = database.Queries.CreateTeam(ctx, db.CreateTeamParams{Name: "HC Kostelec", ShortCode: "KOS", Color: "#b91c1c"})
	if err != nil {
		t.Fatalf("seed away team: %v", err)
	}
	return home, away
}

func seedPlayer(t *testing.T, database *db.DB, teamID int64, name string, number int64) int64 {
	t.Helper()
	id, err := database.Queries.CreatePlayer(context.Background(), db.CreatePlayerParams{
		Name:     name,
		Number:   sql.NullInt64{Int64: number, Valid: true},
		Position: league.PositionForward,
		IsActive: true,
		TeamID:   sql.NullInt64{Int64: teamID, Valid: true},
	})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return id
}

func TestPublishScheduleOnlyMatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	home, away := seedTeams(t, database)
	ctx := context.Background()

	d := league.NewDraft(true)
	d.HomeTeamID, d.AwayTeamID = home, away
	d.Date, d.Time = "2026-03-14", "18:00"

	matchID, err := league.PublishDraft(ctx, database, d)
	if err != nil {
		t.Fatalf("publish schedule-only: %v", err)
	}

	stored, err := database.Queries.GetMatchByID(ctx, matchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if stored.Status != league.StatusScheduled {
		t.Errorf("status = %q, want scheduled", stored.Status)
	}
	if stored.HomeScore.Valid || stored.AwayScore.Valid || stored.Period1Home.Valid {
		t.Errorf("schedule-only match must keep score fields null, got %+v", stored.Match)
	}
}

func TestPublishFinishedMatchWithGoals(t *testing.T) {
	database := testutil.NewTestDB(t)
	home, away := seedTeams(t, database)
	scorer := seedPlayer(t, database, home, "Jan Novotny", 9)
	other := seedPlayer(t, database, away, "Marek Svoboda", 17)
	ctx := context.Background()

	d := league.NewDraft(false)
	d.HomeTeamID, d.AwayTeamID = home, away
	d.Date, d.Time = "2026-03-14", "18:00"
	d.HomeScore, d.AwayScore = 5, 3
	d.Periods = [3]league.PeriodScore{{2, 1}, {1, 2}, {2, 0}}
	d.HomeScorers[scorer] = 3
	d.AwayScorers[other] = 1

	matchID, err := league.PublishDraft(ctx, database, d)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	stored, err := database.Queries.GetMatchByID(ctx, matchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if stored.Status != league.StatusFinished {
		t.Errorf("status = %q, want finished", stored.Status)
	}
	if stored.HomeScore.Int64 != 5 || stored.AwayScore.Int64 != 3 {
		t.Errorf("score = %d:%d, want 5:3", stored.HomeScore.Int64, stored.AwayScore.Int64)
	}

	// A player credited with 3 goals yields 3 separate goal rows.
	goals, err := database.Queries.ListGoalsByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("load goals: %v", err)
	}
	if len(goals) != 4 {
		t.Fatalf("goal rows = %d, want 4", len(goals))
	}
	var homeGoals int
	for _, g := range goals {
		if g.TeamID == home {
			homeGoals++
			if g.ScorerID != scorer {
				t.Errorf("home goal credited to player %d, want %d", g.ScorerID, scorer)
			}
		}
	}
	if homeGoals != 3 {
		t.Errorf("home goal rows = %d, want 3", homeGoals)
	}
}

func TestPublishRejectsInconsistentDraft(t *testing.T) {
	database := testutil.NewTestDB(t)
	home, away := seedTeams(t, database)
	ctx := context.Background()

	d := league.NewDraft(false)
	d.HomeTeamID, d.AwayTeamID = home, away
	d.Date, d.Time = "2026-03-14", "18:00"
	d.HomeScore, d.AwayScore = 5, 3
	d.Periods = [3]league.PeriodScore{{2, 1}, {1, 2}, {1, 0}} // sums to 4:3

	if _, err := league.PublishDraft(ctx, database, d); err == nil {
		t.Fatal("mismatched period sums must be rejected at the persistence boundary")
	}

	same := league.NewDraft(true)
	same.HomeTeamID, same.AwayTeamID = home, home
	same.Date, same.Time = "2026-03-14", "18:00"
	if _, err := league.PublishDraft(ctx, database, same); !errors.Is(err, league.ErrSameTeam) {
		t.Fatalf("same team both sides: got %v, want ErrSameTeam", err)
	}
}

func TestPublishRollsBackOnGoalFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	home, away := seedTeams(t, database)
	ctx := context.Background()

	d := league.NewDraft(false)
	d.HomeTeamID, d.AwayTeamID = home, away
	d.Date, d.Time = "2026-03-14", "18:00"
	d.HomeScore, d.AwayScore = 1, 0
	d.Periods = [3]league.PeriodScore{{1, 0}, {0, 0}, {0, 0}}
	d.HomeScorers[99999] = 1 // nonexistent player violates the foreign key

	if _, err := league.PublishDraft(ctx, database, d); err == nil {
		t.Fatal("goal insert against a missing player must fail")
	}

	// The match insert must have been rolled back with it.
	matches, err := database.Queries.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("publish failure left %d match rows behind", len(matches))
	}
}

func TestEditScheduledMatchIntoResult(t *testing.T) {
	database := testutil.NewTestDB(t)
	home, away := seedTeams(t, database)
	ctx := context.Background()

	scheduled := league.NewDraft(true)
	scheduled.HomeTeamID, scheduled.AwayTeamID = home, away
	scheduled.Date, scheduled.Time = "2026-03-14", "18:00"
	matchID, err := league.PublishDraft(ctx, database, scheduled)
	if err != nil {
		t.Fatalf("publish scheduled: %v", err)
	}

	// Entering the result later enforces period sums identically.
	result := league.NewDraft(false)
	result.HomeTeamID, result.AwayTeamID = home, away
	result.Date, result.Time = "2026-03-14", "18:00"
	result.HomeScore, result.AwayScore = 4, 2
	result.Periods = [3]league.PeriodScore{{2, 1}, {1, 1}, {0, 0}} // home sums to 3

	var sumErr *league.PeriodSumError
	if err := league.UpdateResult(ctx, database, matchID, result); !errors.As(err, &sumErr) {
		t.Fatalf("edit with bad sums: got %v, want *PeriodSumError", err)
	}

	result.Periods[2].Home = 1
	if err := league.UpdateResult(ctx, database, matchID, result); err != nil {
		t.Fatalf("edit with consistent sums: %v", err)
	}

	stored, err := database.Queries.GetMatchByID(ctx, matchID)
	if err != nil {
		t.Fatalf("load match: %v", err)
	}
	if stored.Status != league.StatusFinished {
		t.Errorf("status = %q, want finished after result entry", stored.Status)
	}
	if stored.HomeScore.Int64 != 4 || stored.AwayScore.Int64 != 2 {
		t.Errorf("score = %d:%d, want 4:2", stored.HomeScore.Int64, stored.AwayScore.Int64)
	}
}
