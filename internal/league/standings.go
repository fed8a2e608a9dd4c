package league

import (
	"sort"

	"github.com/mhruby/rinkside/internal/db"
)

// TeamStanding is a team's aggregated season summary, recomputed fully from
// finished matches on every read.
type TeamStanding struct {
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	ShortCode    string `json:"shortCode"`
	Color        string `json:"color"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	OTWins       int    `json:"otWins"`
	OTLosses     int    `json:"otLosses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Points       int    `json:"points"`
}

// TotalWins counts regulation and overtime/shootout wins together. It is the
// tiebreaker after points.
func (s TeamStanding) TotalWins() int { return s.Wins + s.OTWins }

// TotalLosses counts regulation and overtime/shootout losses together.
func (s TeamStanding) TotalLosses() int { return s.Losses + s.OTLosses }

// ComputeStandings folds finished matches into per-team counters and returns
// the table ordered by points, then total wins, stable. Every team gets a row
// even with zero finished matches. A null score on a finished match counts as
// 0. Callers must pass complete fetches; on a fetch error the page shows the
// error instead of a table over partial data.
//
// Scoring: regulation win 3, overtime/shootout win 2, overtime/shootout loss
// 1, regulation loss 0. Ties are not modelled; scores cannot be equal for a
// finished match entered through the wizard.
func ComputeStandings(teams []db.Team, matches []db.MatchWithTeams) []TeamStanding {
	index := make(map[int64]*TeamStanding, len(teams))
	ordered := make([]*TeamStanding, 0, len(teams))
	for _, t := range teams {
		s := &TeamStanding{
			TeamID:    t.ID,
			TeamName:  t.Name,
			ShortCode: t.ShortCode,
			Color:     t.Color,
		}
		index[t.ID] = s
		ordered = append(ordered, s)
	}

	for _, m := range matches {
		home := index[m.HomeTeamID]
		away := index[m.AwayTeamID]
		if home == nil || away == nil {
			// Match references a deleted team; nothing to count it against.
			continue
		}

		homeScore := int(m.HomeScore.Int64)
		awayScore := int(m.AwayScore.Int64)
		overtime := m.HasOvertime || m.HasShootout

		home.Played++
		away.Played++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		winner, loser := home, away
		if awayScore > homeScore {
			winner, loser = away, home
		}
		if overtime {
			winner.OTWins++
			loser.OTLosses++
		} else {
			winner.Wins++
			loser.Losses++
		}
	}

	for _, s := range ordered {
		s.Points = s.Wins*3 + s.OTWins*2 + s.OTLosses*1
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		return ordered[i].TotalWins() > ordered[j].TotalWins()
	})

	standings := make([]TeamStanding, len(ordered))
	for i, s := range ordered {
		standings[i] = *s
	}
	return standings
}
