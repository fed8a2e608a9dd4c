package matches

import "github.com/mhruby/rinkside/internal/league"

// AdminRow is one line of the back-office match table.
type AdminRow struct {
	ID        int64
	Date      string
	Time      string
	HomeName  string
	AwayName  string
	Status    string
	Score     string // empty unless finished
	Published bool
}

// Option is a select entry for teams and venues.
type Option struct {
	ID   int64
	Name string
}

// ScorerOption is one roster line on the goal-scorer step, carrying the
// draft's current count for that player.
type ScorerOption struct {
	ID     int64
	Name   string
	Number string
	Count  int
}

// WizardView is the full render state for one wizard step. The draft is
// serialized into hidden fields so each step round-trips the whole of it.
type WizardView struct {
	Step    league.Step
	Draft   *league.Draft
	MatchID int64 // set when editing an existing match's result
	Error   string

	Teams  []Option
	Venues []Option

	HomeTeamName string
	AwayTeamName string
	VenueName    string
	HomeRoster   []ScorerOption
	AwayRoster   []ScorerOption
}

// StepNumber maps the wizard state to its 1-based position on the reduced or
// full path, for the progress header.
func (v WizardView) StepNumber() int {
	if v.Draft.ScheduleOnly && v.Step == league.StepReviewAndPublish {
		return 2
	}
	return int(v.Step)
}

func (v WizardView) TotalSteps() int { return v.Draft.TotalSteps() }

func (v WizardView) IsFinal() bool { return v.Step == league.StepReviewAndPublish }
