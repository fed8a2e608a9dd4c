package league

import (
	"errors"
	"testing"
)

func validDraft() *Draft {
	d := NewDraft(false)
	d.HomeTeamID = 1
	d.AwayTeamID = 2
	d.Date = "2026-03-14"
	d.Time = "18:00"
	return d
}

func TestSelectTeamsGuard(t *testing.T) {
	d := NewDraft(false)
	if err := d.CanAdvance(StepSelectTeamsAndDate); !errors.Is(err, ErrTeamsRequired) {
		t.Fatalf("empty draft: got %v, want ErrTeamsRequired", err)
	}

	d.HomeTeamID = 1
	d.AwayTeamID = 1
	d.Date = "2026-03-14"
	if err := d.CanAdvance(StepSelectTeamsAndDate); !errors.Is(err, ErrSameTeam) {
		t.Fatalf("same team both sides: got %v, want ErrSameTeam", err)
	}

	d.AwayTeamID = 2
	d.Time = ""
	if err := d.CanAdvance(StepSelectTeamsAndDate); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("missing time: got %v, want ErrDateRequired", err)
	}

	d.Time = "18:00"
	if err := d.CanAdvance(StepSelectTeamsAndDate); err != nil {
		t.Fatalf("complete step 1: got %v, want nil", err)
	}
}

func TestScoreGuardRejectsDraws(t *testing.T) {
	d := validDraft()
	if err := d.CanAdvance(StepEnterScore); !errors.Is(err, ErrTiedScore) {
		t.Fatalf("default 0:0 is a draw: got %v, want ErrTiedScore", err)
	}

	d.HomeScore, d.AwayScore = 2, 2
	if err := d.CanAdvance(StepEnterScore); !errors.Is(err, ErrTiedScore) {
		t.Fatalf("2:2: got %v, want ErrTiedScore", err)
	}

	d.AwayScore = 3
	if err := d.CanAdvance(StepEnterScore); err != nil {
		t.Fatalf("2:3 should advance, got %v", err)
	}
}

func TestPeriodGuardAcceptsMatchingSums(t *testing.T) {
	d := validDraft()
	d.HomeScore, d.AwayScore = 5, 3
	d.Periods = [3]PeriodScore{{2, 1}, {1, 2}, {2, 0}}

	if err := d.CanAdvance(StepEnterPeriodBreakdown); err != nil {
		t.Fatalf("periods (2,1,2)/(1,2,0) sum to 5:3, got %v", err)
	}
}

func TestPeriodGuardRejectsMismatchAndNamesSide(t *testing.T) {
	d := validDraft()
	d.HomeScore, d.AwayScore = 5, 3
	d.Periods = [3]PeriodScore{{2, 1}, {1, 2}, {1, 0}} // home sums to 4

	err := d.CanAdvance(StepEnterPeriodBreakdown)
	var sumErr *PeriodSumError
	if !errors.As(err, &sumErr) {
		t.Fatalf("got %v, want *PeriodSumError", err)
	}
	if !sumErr.HomeMismatch() {
		t.Error("home side should be reported as mismatched")
	}
	if sumErr.AwayMismatch() {
		t.Error("away side adds up and must not be reported")
	}
	if sumErr.HomeSum != 4 || sumErr.HomeScore != 5 {
		t.Errorf("home sum/score = %d/%d, want 4/5", sumErr.HomeSum, sumErr.HomeScore)
	}
}

func TestScorerStepIsSkippable(t *testing.T) {
	d := validDraft()
	d.HomeScore = 3
	// No scorers assigned at all.
	if err := d.CanAdvance(StepAssignGoalScorers); err != nil {
		t.Fatalf("scorer step must not block, got %v", err)
	}

	d.HomeScorers[7] = 2
	home, away := d.GoalsAssigned()
	if home != 2 || away != 0 {
		t.Errorf("assigned totals = %d/%d, want 2/0", home, away)
	}
}

func TestScheduleOnlyPath(t *testing.T) {
	d := NewDraft(true)
	if d.TotalSteps() != 2 {
		t.Fatalf("schedule-only draft has %d steps, want 2", d.TotalSteps())
	}

	next, ok := d.Next(StepSelectTeamsAndDate)
	if !ok || next != StepReviewAndPublish {
		t.Fatalf("schedule-only next = %v/%v, want review", next, ok)
	}
	if prev := d.Prev(StepReviewAndPublish); prev != StepSelectTeamsAndDate {
		t.Fatalf("schedule-only prev = %v, want teams step", prev)
	}
}

func TestFullPathStepOrder(t *testing.T) {
	d := NewDraft(false)
	order := []Step{
		StepSelectTeamsAndDate,
		StepEnterScore,
		StepEnterPeriodBreakdown,
		StepAssignGoalScorers,
		StepReviewAndPublish,
	}
	for i, s := range order[:len(order)-1] {
		next, ok := d.Next(s)
		if !ok || next != order[i+1] {
			t.Fatalf("Next(%v) = %v/%v, want %v", s, next, ok, order[i+1])
		}
	}
	if _, ok := d.Next(StepReviewAndPublish); ok {
		t.Fatal("review step is terminal")
	}
	for i := len(order) - 1; i > 0; i-- {
		if prev := d.Prev(order[i]); prev != order[i-1] {
			t.Fatalf("Prev(%v) = %v, want %v", order[i], prev, order[i-1])
		}
	}
}

func TestValidateAppliesResultGuards(t *testing.T) {
	d := validDraft()
	d.HomeScore, d.AwayScore = 4, 3
	d.Periods = [3]PeriodScore{{2, 1}, {1, 2}, {1, 0}}
	if err := d.Validate(); err != nil {
		t.Fatalf("consistent draft must validate, got %v", err)
	}

	d.Periods[2].Home = 0
	var sumErr *PeriodSumError
	if err := d.Validate(); !errors.As(err, &sumErr) {
		t.Fatalf("boundary validation must enforce period sums, got %v", err)
	}

	// Schedule-only drafts skip result guards entirely.
	s := NewDraft(true)
	s.HomeTeamID, s.AwayTeamID = 1, 2
	s.Date, s.Time = "2026-03-14", "18:00"
	s.Periods[0].Home = 9 // garbage result fields are ignored
	if err := s.Validate(); err != nil {
		t.Fatalf("schedule-only draft must skip result guards, got %v", err)
	}
}
