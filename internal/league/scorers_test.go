package league

import (
	"database/sql"
	"testing"

	"github.com/mhruby/rinkside/internal/db"
)

func TestTopScorersStableDescending(t *testing.T) {
	scorers := []Scorer{
		{PlayerID: 1, Name: "Marek Svoboda", Points: 12},
		{PlayerID: 2, Name: "Jan Novotny", Points: 18},
		{PlayerID: 3, Name: "Tomas Prochazka", Points: 12},
		{PlayerID: 4, Name: "Stepan Benes", Points: 18},
	}

	sorted := TopScorers(scorers, 0)

	wantOrder := []int64{2, 4, 1, 3}
	for i, want := range wantOrder {
		if sorted[i].PlayerID != want {
			t.Fatalf("position %d = player %d, want %d (ties must keep input order)",
				i, sorted[i].PlayerID, want)
		}
	}
}

func TestTopScorersLimit(t *testing.T) {
	scorers := []Scorer{
		{PlayerID: 1, Points: 5},
		{PlayerID: 2, Points: 9},
		{PlayerID: 3, Points: 7},
	}
	top := TopScorers(scorers, 2)
	if len(top) != 2 || top[0].PlayerID != 2 || top[1].PlayerID != 3 {
		t.Fatalf("top 2 = %+v, want players 2 then 3", top)
	}
	// Input slice untouched.
	if scorers[0].PlayerID != 1 {
		t.Error("TopScorers must not reorder its input")
	}
}

func TestScorersFromTallies(t *testing.T) {
	tallies := []db.ScorerTally{
		{PlayerID: 7, PlayerName: "Jan Novotny", PlayerNumber: sql.NullInt64{Int64: 9, Valid: true}, TeamName: sql.NullString{String: "HC Bukovsko", Valid: true}, Goals: 4},
		{PlayerID: 8, PlayerName: "Free Agent", Goals: 1},
	}
	scorers := ScorersFromTallies(tallies)
	if scorers[0].Goals != 4 || scorers[0].Points != 4 {
		t.Errorf("persisted scorers carry points == goals, got %+v", scorers[0])
	}
	if scorers[1].TeamName != "" || scorers[1].Number != 0 {
		t.Errorf("null team/number should map to zero values, got %+v", scorers[1])
	}
}
