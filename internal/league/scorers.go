package league

import (
	"sort"

	"github.com/mhruby/rinkside/internal/db"
)

// Scorer is a player's scoring line for the top-scorers table. Assists are
// display-only; the persisted schema records goals, so persisted scorers
// carry Points == Goals.
type Scorer struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Number   int64  `json:"number"`
	TeamName string `json:"teamName"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Points   int    `json:"points"`
}

// ScorersFromTallies converts per-player goal counts into scorer lines.
func ScorersFromTallies(tallies []db.ScorerTally) []Scorer {
	scorers := make([]Scorer, len(tallies))
	for i, t := range tallies {
		scorers[i] = Scorer{
			PlayerID: t.PlayerID,
			Name:     t.PlayerName,
			Number:   t.PlayerNumber.Int64,
			TeamName: t.TeamName.String,
			Goals:    int(t.Goals),
			Points:   int(t.Goals),
		}
	}
	return scorers
}

// SortTopScorers orders scorers by points descending. The sort is stable:
// players tied on points keep their original relative order.
func SortTopScorers(scorers []Scorer) {
	sort.SliceStable(scorers, func(i, j int) bool {
		return scorers[i].Points > scorers[j].Points
	})
}

// TopScorers returns the first limit scorers after a stable points sort.
// A non-positive limit returns all of them.
func TopScorers(scorers []Scorer, limit int) []Scorer {
	sorted := make([]Scorer, len(scorers))
	copy(sorted, scorers)
	SortTopScorers(sorted)
	if limit > 0 && limit < len(sorted) {
		return sorted[:limit]
	}
	return sorted
}
