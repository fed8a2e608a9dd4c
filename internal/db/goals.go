// internal/db/goals.go
package db

import "context"

type CreateGoalParams struct {
	MatchID  int64
	TeamID   int64
	ScorerID int64
}

const createGoal = `
INSERT INTO goals (match_id, team_id, scorer_id)
VALUES (?, ?, ?)
`

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) error {
	_, err := q.db.ExecContext(ctx, createGoal, arg.MatchID, arg.TeamID, arg.ScorerID)
	return err
}

const listGoalsByMatch = `
SELECT g.id, g.match_id, g.team_id, g.scorer_id, p.name, p.number, t.name
FROM goals g
JOIN players p ON p.id = g.scorer_id
JOIN teams t ON t.id = g.team_id
WHERE g.match_id = ?
ORDER BY g.id
`

func (q *Queries) ListGoalsByMatch(ctx context.Context, matchID int64) ([]GoalWithScorer, error) {
	rows, err := q.db.QueryContext(ctx, listGoalsByMatch, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []GoalWithScorer
	for rows.Next() {
		var g GoalWithScorer
		if err := rows.Scan(&g.ID, &g.MatchID, &g.TeamID, &g.ScorerID, &g.ScorerName, &g.ScorerNumber, &g.TeamName); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

const deleteGoalsByMatch = `DELETE FROM goals WHERE match_id = ?`

// DeleteGoalsByMatch clears goal attribution before a result is re-entered.
func (q *Queries) DeleteGoalsByMatch(ctx context.Context, matchID int64) error {
	_, err := q.db.ExecContext(ctx, deleteGoalsByMatch, matchID)
	return err
}

const listScorerTallies = `
SELECT p.id, p.name, p.number, t.name, COUNT(g.id) AS goals
FROM goals g
JOIN players p ON p.id = g.scorer_id
JOIN matches m ON m.id = g.match_id
LEFT JOIN teams t ON t.id = p.team_id
WHERE m.is_published = 1 AND m.status = 'finished'
GROUP BY p.id, p.name, p.number, t.name
ORDER BY goals DESC, p.name
`

// ListScorerTallies returns per-player goal counts over published finished
// matches, most goals first.
func (q *Queries) ListScorerTallies(ctx context.Context) ([]ScorerTally, error) {
	rows, err := q.db.QueryContext(ctx, listScorerTallies)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tallies []ScorerTally
	for rows.Next() {
		var t ScorerTally
		if err := rows.Scan(&t.PlayerID, &t.PlayerName, &t.PlayerNumber, &t.TeamName, &t.Goals); err != nil {
			return nil, err
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}
