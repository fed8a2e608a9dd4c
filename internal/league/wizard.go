package league

import (
	"errors"
	"fmt"
)

// Step identifies a match-entry wizard state. Steps advance strictly forward;
// Prev is always allowed back to the previous state.
type Step int

const (
	StepSelectTeamsAndDate Step = iota + 1
	StepEnterScore
	StepEnterPeriodBreakdown
	StepAssignGoalScorers
	StepReviewAndPublish
)

func (s Step) String() string {
	switch s {
	case StepSelectTeamsAndDate:
		return "teams"
	case StepEnterScore:
		return "score"
	case StepEnterPeriodBreakdown:
		return "periods"
	case StepAssignGoalScorers:
		return "scorers"
	case StepReviewAndPublish:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// EndType records how a finished match was decided.
type EndType string

const (
	EndRegulation EndType = "regulation"
	EndOvertime   EndType = "overtime"
	EndShootout   EndType = "shootout"
)

// PeriodScore is one period's goals for both sides.
type PeriodScore struct {
	Home int
	Away int
}

// Draft accumulates the wizard's collected fields. A fresh Draft is built per
// screen mount; nothing is shared between admin sessions.
type Draft struct {
	// ScheduleOnly drafts take the reduced two-state path: the match is
	// created without result fields.
	ScheduleOnly bool

	HomeTeamID int64
	AwayTeamID int64
	VenueID    int64 // 0 = no venue
	Date       string
	Time       string

	HomeScore int
	AwayScore int
	EndType   EndType
	Periods   [3]PeriodScore

	// Goal counts per player id; a player credited with 3 goals yields
	// 3 Goal rows on publish.
	HomeScorers map[int64]int
	AwayScorers map[int64]int

	Publish bool
	Notify  bool
}

// NewDraft returns a draft with the defaults the entry form starts from.
func NewDraft(scheduleOnly bool) *Draft {
	return &Draft{
		ScheduleOnly: scheduleOnly,
		Time:         "18:00",
		EndType:      EndRegulation,
		HomeScorers:  make(map[int64]int),
		AwayScorers:  make(map[int64]int),
		Publish:      true,
		Notify:       true,
	}
}

// TotalSteps is 2 for schedule-only drafts, 5 for full result entry.
func (d *Draft) TotalSteps() int {
	if d.ScheduleOnly {
		return 2
	}
	return 5
}

// FinalStep is the review state that triggers persistence.
func (d *Draft) FinalStep() Step { return StepReviewAndPublish }

// Next returns the state after s, honouring the reduced schedule-only path.
// ok is false when s is terminal.
func (d *Draft) Next(s Step) (next Step, ok bool) {
	if s >= StepReviewAndPublish {
		return s, false
	}
	if d.ScheduleOnly {
		return StepReviewAndPublish, true
	}
	return s + 1, true
}

// Prev returns the state before s. Backward navigation is always allowed.
func (d *Draft) Prev(s Step) Step {
	if s <= StepSelectTeamsAndDate {
		return StepSelectTeamsAndDate
	}
	if d.ScheduleOnly {
		return StepSelectTeamsAndDate
	}
	return s - 1
}

var (
	ErrTeamsRequired = errors.New("both teams are required")
	ErrSameTeam      = errors.New("home and away team must differ")
	ErrDateRequired  = errors.New("date and time are required")
	ErrNegativeScore = errors.New("scores cannot be negative")
	ErrTiedScore     = errors.New("a finished match needs a winner; use overtime or shootout for close games")
)

// PeriodSumError reports which side's period scores disagree with the final
// score. The period step blocks until both sides add up.
type PeriodSumError struct {
	HomeSum, AwaySum     int
	HomeScore, AwayScore int
}

func (e *PeriodSumError) HomeMismatch() bool { return e.HomeSum != e.HomeScore }
func (e *PeriodSumError) AwayMismatch() bool { return e.AwaySum != e.AwayScore }

func (e *PeriodSumError) Error() string {
	switch {
	case e.HomeMismatch() && e.AwayMismatch():
		return fmt.Sprintf("period scores %d and %d do not add up to the final score %d:%d (both sides)",
			e.HomeSum, e.AwaySum, e.HomeScore, e.AwayScore)
	case e.HomeMismatch():
		return fmt.Sprintf("home period scores add up to %d, final score is %d", e.HomeSum, e.HomeScore)
	default:
		return fmt.Sprintf("away period scores add up to %d, final score is %d", e.AwaySum, e.AwayScore)
	}
}

// PeriodSums returns the summed period scores per side.
func (d *Draft) PeriodSums() (home, away int) {
	for _, p := range d.Periods {
		home += p.Home
		away += p.Away
	}
	return home, away
}

// GoalsAssigned returns the attributed goal totals per side, displayed as a
// cross-check against the final score. Equality is not enforced.
func (d *Draft) GoalsAssigned() (home, away int) {
	for _, n := range d.HomeScorers {
		home += n
	}
	for _, n := range d.AwayScorers {
		away += n
	}
	return home, away
}

// CanAdvance reports whether the wizard may move past step s. A nil error
// means the forward action is enabled.
func (d *Draft) CanAdvance(s Step) error {
	switch s {
	case StepSelectTeamsAndDate:
		if d.HomeTeamID == 0 || d.AwayTeamID == 0 {
			return ErrTeamsRequired
		}
		if d.HomeTeamID == d.AwayTeamID {
			return ErrSameTeam
		}
		if d.Date == "" || d.Time == "" {
			return ErrDateRequired
		}
		return nil
	case StepEnterScore:
		// The form never goes below zero, but the boundary re-checks anyway.
		if d.HomeScore < 0 || d.AwayScore < 0 {
			return ErrNegativeScore
		}
		// Hockey results always have a winner; draws cannot be stored.
		if d.HomeScore == d.AwayScore {
			return ErrTiedScore
		}
		return nil
	case StepEnterPeriodBreakdown:
		homeSum, awaySum := d.PeriodSums()
		if homeSum != d.HomeScore || awaySum != d.AwayScore {
			return &PeriodSumError{
				HomeSum: homeSum, AwaySum: awaySum,
				HomeScore: d.HomeScore, AwayScore: d.AwayScore,
			}
		}
		return nil
	case StepAssignGoalScorers:
		// Skippable; the assigned-vs-target counts are advisory.
		return nil
	case StepReviewAndPublish:
		return nil
	default:
		return fmt.Errorf("unknown wizard step %d", int(s))
	}
}

// Validate re-checks every guard the wizard enforces, independent of the UI.
// The persistence boundary calls this for both creation and later result
// edits, so a client bypassing the forms cannot store inconsistent matches.
func (d *Draft) Validate() error {
	if err := d.CanAdvance(StepSelectTeamsAndDate); err != nil {
		return err
	}
	if d.ScheduleOnly {
		return nil
	}
	if err := d.CanAdvance(StepEnterScore); err != nil {
		return err
	}
	return d.CanAdvance(StepEnterPeriodBreakdown)
}
