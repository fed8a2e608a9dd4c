package league

import (
	"testing"
	"time"

	"github.com/mhruby/rinkside/internal/db"
)

func matchWithTeams(date, timeStr, home, away string) db.MatchWithTeams {
	return db.MatchWithTeams{
		Match:        db.Match{MatchDate: date, MatchTime: timeStr, Status: StatusScheduled},
		HomeTeamName: home,
		AwayTeamName: away,
	}
}

func TestLastFinished(t *testing.T) {
	matches := []db.MatchWithTeams{
		matchWithTeams("2026-01-10", "18:00", "A", "B"),
		matchWithTeams("2026-01-17", "18:00", "C", "D"),
		matchWithTeams("2026-01-24", "18:00", "E", "F"),
	}
	matches[0].Status = StatusFinished
	matches[1].Status = StatusFinished

	last := LastFinished(matches)
	if last == nil || last.MatchDate != "2026-01-17" {
		t.Fatalf("last finished = %+v, want the 2026-01-17 match", last)
	}

	if got := LastFinished(nil); got != nil {
		t.Errorf("no matches: got %+v, want nil", got)
	}
}

func TestNextScheduledSkipsPastAndCancelled(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	matches := []db.MatchWithTeams{
		matchWithTeams("2026-01-10", "18:00", "A", "B"), // in the past
		matchWithTeams("2026-01-24", "18:00", "C", "D"),
		matchWithTeams("2026-01-31", "18:00", "E", "F"),
	}
	matches[1].Status = StatusCancelled

	next := NextScheduled(matches, now)
	if next == nil || next.MatchDate != "2026-01-31" {
		t.Fatalf("next scheduled = %+v, want the 2026-01-31 match", next)
	}
}

func TestUpcomingMatchesLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matches := []db.MatchWithTeams{
		matchWithTeams("2026-01-10", "18:00", "A", "B"),
		matchWithTeams("2026-01-17", "18:00", "C", "D"),
		matchWithTeams("2026-01-24", "18:00", "E", "F"),
	}

	upcoming := UpcomingMatches(matches, now, 2)
	if len(upcoming) != 2 || upcoming[0].MatchDate != "2026-01-10" {
		t.Fatalf("upcoming = %+v, want first two matches", upcoming)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-03-14"); got != "Sat 14 Mar" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatFullDate("2026-03-14"); got != "Saturday 14 March 2026" {
		t.Errorf("FormatFullDate = %q", got)
	}
	// Unparseable input falls through untouched.
	if got := FormatDate("tbd"); got != "tbd" {
		t.Errorf("FormatDate passthrough = %q", got)
	}
}
