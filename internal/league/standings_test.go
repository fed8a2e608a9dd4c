package league

import (
	"database/sql"
	"testing"

	"github.com/mhruby/rinkside/internal/db"
)

func team(id int64, name, code string) db.Team {
	return db.Team{ID: id, Name: name, ShortCode: code, Color: "#123456"}
}

func finished(home, away int64, homeScore, awayScore int, overtime, shootout bool) db.MatchWithTeams {
	return db.MatchWithTeams{
		Match: db.Match{
			HomeTeamID:  home,
			AwayTeamID:  away,
			Status:      "finished",
			HomeScore:   sql.NullInt64{Int64: int64(homeScore), Valid: true},
			AwayScore:   sql.NullInt64{Int64: int64(awayScore), Valid: true},
			HasOvertime: overtime,
			HasShootout: shootout,
		},
	}
}

func TestComputeStandingsPoints(t *testing.T) {
	teams := []db.Team{team(1, "HC Bukovsko", "BUK"), team(2, "HC Kostelec", "KOS")}

	tests := []struct {
		name       string
		match      db.MatchWithTeams
		wantWinner TeamStanding
		wantLoser  TeamStanding
	}{
		{
			name:       "regulation win",
			match:      finished(1, 2, 5, 3, false, false),
			wantWinner: TeamStanding{Played: 1, Wins: 1, Points: 3},
			wantLoser:  TeamStanding{Played: 1, Losses: 1, Points: 0},
		},
		{
			name:       "overtime win",
			match:      finished(1, 2, 4, 3, true, false),
			wantWinner: TeamStanding{Played: 1, OTWins: 1, Points: 2},
			wantLoser:  TeamStanding{Played: 1, OTLosses: 1, Points: 1},
		},
		{
			name:       "shootout win counts as overtime outcome",
			match:      finished(2, 1, 2, 1, false, true),
			wantWinner: TeamStanding{Played: 1, OTWins: 1, Points: 2},
			wantLoser:  TeamStanding{Played: 1, OTLosses: 1, Points: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standings := ComputeStandings(teams, []db.MatchWithTeams{tt.match})
			if len(standings) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(standings))
			}
			winner, loser := standings[0], standings[1]
			checkCounters(t, "winner", winner, tt.wantWinner)
			checkCounters(t, "loser", loser, tt.wantLoser)

			// A decided match always awards 3 points total.
			if total := winner.Points + loser.Points; total != 3 {
				t.Errorf("points awarded across both sides = %d, want 3", total)
			}
		})
	}
}

func checkCounters(t *testing.T, label string, got, want TeamStanding) {
	t.Helper()
	if got.Played != want.Played || got.Wins != want.Wins || got.Losses != want.Losses ||
		got.OTWins != want.OTWins || got.OTLosses != want.OTLosses || got.Points != want.Points {
		t.Errorf("%s = {played %d wins %d losses %d otWins %d otLosses %d points %d}, want {played %d wins %d losses %d otWins %d otLosses %d points %d}",
			label, got.Played, got.Wins, got.Losses, got.OTWins, got.OTLosses, got.Points,
			want.Played, want.Wins, want.Losses, want.OTWins, want.OTLosses, want.Points)
	}
}

func TestComputeStandingsIncludesTeamsWithoutMatches(t *testing.T) {
	teams := []db.Team{team(1, "HC Bukovsko", "BUK"), team(2, "HC Kostelec", "KOS"), team(3, "HC Hlavatce", "HLA")}
	matches := []db.MatchWithTeams{finished(1, 2, 3, 1, false, false)}

	standings := ComputeStandings(teams, matches)
	if len(standings) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(standings))
	}

	var idle *TeamStanding
	for i := range standings {
		if standings[i].TeamID == 3 {
			idle = &standings[i]
		}
	}
	if idle == nil {
		t.Fatal("team with zero finished matches missing from standings")
	}
	if idle.Played != 0 || idle.Wins != 0 || idle.Losses != 0 || idle.OTWins != 0 || idle.OTLosses != 0 || idle.Points != 0 {
		t.Errorf("idle team row not zeroed: %+v", *idle)
	}
}

func TestComputeStandingsNullScoresCountAsZero(t *testing.T) {
	teams := []db.Team{team(1, "HC Bukovsko", "BUK"), team(2, "HC Kostelec", "KOS")}
	m := db.MatchWithTeams{Match: db.Match{
		HomeTeamID: 1, AwayTeamID: 2, Status: "finished",
		HomeScore: sql.NullInt64{Int64: 2, Valid: true},
		// Away score null: defensively treated as 0.
	}}

	standings := ComputeStandings(teams, []db.MatchWithTeams{m})
	if standings[0].TeamID != 1 || standings[0].Wins != 1 {
		t.Errorf("expected home team to win against null score, got %+v", standings[0])
	}
}

func TestComputeStandingsOrdering(t *testing.T) {
	teams := []db.Team{
		team(1, "HC Bukovsko", "BUK"),
		team(2, "HC Kostelec", "KOS"),
		team(3, "HC Hlavatce", "HLA"),
	}
	matches := []db.MatchWithTeams{
		finished(1, 2, 3, 1, false, false), // BUK 3 pts
		finished(3, 2, 2, 1, true, false),  // HLA 2 pts, KOS 1 pt
	}

	standings := ComputeStandings(teams, matches)
	gotOrder := []int64{standings[0].TeamID, standings[1].TeamID, standings[2].TeamID}
	wantOrder := []int64{1, 3, 2}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("standings order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestComputeStandingsTiebreakByTotalWins(t *testing.T) {
	teams := []db.Team{
		team(1, "HC Bukovsko", "BUK"),
		team(2, "HC Kostelec", "KOS"),
		team(3, "HC Hlavatce", "HLA"),
		team(4, "HC Krida", "KRI"),
	}
	// KOS: one regulation win = 3 points, 1 total win.
	// HLA: one OT win and one OT loss = 3 points, 1 total win too, so the
	// earlier row (KOS) must stay ahead by stability... but give HLA a
	// second OT win to take the total-wins tiebreak despite equal points.
	matches := []db.MatchWithTeams{
		finished(2, 4, 4, 2, false, false), // KOS 3 pts, 1 win
		finished(3, 4, 3, 2, true, false),  // HLA +2
		finished(3, 1, 1, 2, false, true),  // BUK +2, HLA... away shootout win
	}
	// Totals: KOS 3 pts (1 win), HLA 2+1=3 pts (1 OT win, 1 OT loss),
	// BUK 2 pts. HLA and KOS tie on points and total wins; stability keeps
	// the input order (BUK, KOS, HLA as seeded) so KOS precedes HLA.
	standings := ComputeStandings(teams, matches)
	if standings[0].TeamID != 2 || standings[1].TeamID != 3 {
		t.Fatalf("tie on points and wins should preserve seed order, got %d then %d",
			standings[0].TeamID, standings[1].TeamID)
	}
}
