package league

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mhruby/rinkside/internal/db"
)

// PublishDraft stores a wizard draft: one match row, plus one goal row per
// unit of attributed count per player. The writes run in a single
// transaction so a failure between the match insert and the goal inserts
// rolls everything back instead of leaving a scored match without goal
// detail.
func PublishDraft(ctx context.Context, database *db.DB, d *Draft) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	var matchID int64
	err := database.RunInTx(ctx, func(tx *db.DB) error {
		id, err := tx.Queries.CreateMatch(ctx, matchParams(d))
		if err != nil {
			return fmt.Errorf("create match: %w", err)
		}
		matchID = id

		if d.ScheduleOnly {
			return nil
		}
		if err := insertGoals(ctx, tx.Queries, matchID, d.HomeTeamID, d.HomeScorers); err != nil {
			return err
		}
		return insertGoals(ctx, tx.Queries, matchID, d.AwayTeamID, d.AwayScorers)
	})
	if err != nil {
		return 0, err
	}
	return matchID, nil
}

// UpdateResult applies an edited result to an existing match with the same
// validation as creation: period sums are enforced at edit time identically.
// Previous goal attribution is replaced wholesale inside the transaction.
func UpdateResult(ctx context.Context, database *db.DB, matchID int64, d *Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	return database.RunInTx(ctx, func(tx *db.DB) error {
		p := matchParams(d)
		if err := tx.Queries.UpdateMatch(ctx, db.UpdateMatchParams{
			ID:          matchID,
			MatchDate:   p.MatchDate,
			MatchTime:   p.MatchTime,
			VenueID:     p.VenueID,
			Status:      p.Status,
			HomeScore:   p.HomeScore,
			AwayScore:   p.AwayScore,
			Period1Home: p.Period1Home,
			Period1Away: p.Period1Away,
			Period2Home: p.Period2Home,
			Period2Away: p.Period2Away,
			Period3Home: p.Period3Home,
			Period3Away: p.Period3Away,
			HasOvertime: p.HasOvertime,
			HasShootout: p.HasShootout,
			IsPublished: p.IsPublished,
		}); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		if err := tx.Queries.DeleteGoalsByMatch(ctx, matchID); err != nil {
			return fmt.Errorf("clear goals: %w", err)
		}
		if d.ScheduleOnly {
			return nil
		}
		if err := insertGoals(ctx, tx.Queries, matchID, d.HomeTeamID, d.HomeScorers); err != nil {
			return err
		}
		return insertGoals(ctx, tx.Queries, matchID, d.AwayTeamID, d.AwayScorers)
	})
}

func matchParams(d *Draft) db.CreateMatchParams {
	p := db.CreateMatchParams{
		HomeTeamID:  d.HomeTeamID,
		AwayTeamID:  d.AwayTeamID,
		MatchDate:   d.Date,
		MatchTime:   d.Time,
		Status:      StatusScheduled,
		IsPublished: d.Publish,
	}
	if d.VenueID != 0 {
		p.VenueID = sql.NullInt64{Int64: d.VenueID, Valid: true}
	}
	if d.ScheduleOnly {
		// Score and period fields stay null for schedule-only matches.
		return p
	}

	p.Status = StatusFinished
	p.HomeScore = sql.NullInt64{Int64: int64(d.HomeScore), Valid: true}
	p.AwayScore = sql.NullInt64{Int64: int64(d.AwayScore), Valid: true}
	p.Period1Home = sql.NullInt64{Int64: int64(d.Periods[0].Home), Valid: true}
	p.Period1Away = sql.NullInt64{Int64: int64(d.Periods[0].Away), Valid: true}
	p.Period2Home = sql.NullInt64{Int64: int64(d.Periods[1].Home), Valid: true}
	p.Period2Away = sql.NullInt64{Int64: int64(d.Periods[1].Away), Valid: true}
	p.Period3Home = sql.NullInt64{Int64: int64(d.Periods[2].Home), Valid: true}
	p.Period3Away = sql.NullInt64{Int64: int64(d.Periods[2].Away), Valid: true}
	p.HasOvertime = d.EndType == EndOvertime
	p.HasShootout = d.EndType == EndShootout
	return p
}

func insertGoals(ctx context.Context, q *db.Queries, matchID, teamID int64, scorers map[int64]int) error {
	for playerID, count := range scorers {
		for i := 0; i < count; i++ {
			if err := q.CreateGoal(ctx, db.CreateGoalParams{
				MatchID:  matchID,
				TeamID:   teamID,
				ScorerID: playerID,
			}); err != nil {
				return fmt.Errorf("create goal for player %d: %w", playerID, err)
			}
		}
	}
	return nil
}
