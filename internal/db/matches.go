// internal/db/matches.go
package db

import (
	"context"
	"database/sql"
)

const matchColumns = `
m.id, m.home_team_id, m.away_team_id, m.match_date, m.match_time, m.venue_id,
m.status, m.home_score, m.away_score,
m.period1_home, m.period1_away, m.period2_home, m.period2_away, m.period3_home, m.period3_away,
m.has_overtime, m.has_shootout, m.is_published,
ht.name, ht.short_code, ht.color,
at.name, at.short_code, at.color,
v.name
`

const matchJoins = `
FROM matches m
JOIN teams ht ON ht.id = m.home_team_id
JOIN teams at ON at.id = m.away_team_id
LEFT JOIN venues v ON v.id = m.venue_id
`

func scanMatchWithTeams(scan func(...any) error) (MatchWithTeams, error) {
	var m MatchWithTeams
	err := scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.MatchTime, &m.VenueID,
		&m.Status, &m.HomeScore, &m.AwayScore,
		&m.Period1Home, &m.Period1Away, &m.Period2Home, &m.Period2Away, &m.Period3Home, &m.Period3Away,
		&m.HasOvertime, &m.HasShootout, &m.IsPublished,
		&m.HomeTeamName, &m.HomeShortCode, &m.HomeColor,
		&m.AwayTeamName, &m.AwayShortCode, &m.AwayColor,
		&m.VenueName,
	)
	return m, err
}

func (q *Queries) queryMatches(ctx context.Context, query string, args ...any) ([]MatchWithTeams, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []MatchWithTeams
	for rows.Next() {
		m, err := scanMatchWithTeams(rows.Scan)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

const listMatches = `
SELECT` + matchColumns + matchJoins + `
ORDER BY m.match_date DESC, m.match_time DESC
`

// ListMatches returns every match, newest first, for the admin list.
func (q *Queries) ListMatches(ctx context.Context) ([]MatchWithTeams, error) {
	return q.queryMatches(ctx, listMatches)
}

const listPublishedMatches = `
SELECT` + matchColumns + matchJoins + `
WHERE m.is_published = 1
ORDER BY m.match_date, m.match_time
`

// ListPublishedMatches returns publicly visible matches in chronological order.
func (q *Queries) ListPublishedMatches(ctx context.Context) ([]MatchWithTeams, error) {
	return q.queryMatches(ctx, listPublishedMatches)
}

const listFinishedPublishedMatches = `
SELECT` + matchColumns + matchJoins + `
WHERE m.is_published = 1 AND m.status = 'finished'
ORDER BY m.match_date, m.match_time
`

// ListFinishedPublishedMatches feeds the standings aggregation.
func (q *Queries) ListFinishedPublishedMatches(ctx context.Context) ([]MatchWithTeams, error) {
	return q.queryMatches(ctx, listFinishedPublishedMatches)
}

const getMatchByID = `
SELECT` + matchColumns + matchJoins + `
WHERE m.id = ?
`

func (q *Queries) GetMatchByID(ctx context.Context, id int64) (MatchWithTeams, error) {
	row := q.db.QueryRowContext(ctx, getMatchByID, id)
	return scanMatchWithTeams(row.Scan)
}

type CreateMatchParams struct {
	HomeTeamID  int64
	AwayTeamID  int64
	MatchDate   string
	MatchTime   string
	VenueID     sql.NullInt64
	Status      string
	HomeScore   sql.NullInt64
	AwayScore   sql.NullInt64
	Period1Home sql.NullInt64
	Period1Away sql.NullInt64
	Period2Home sql.NullInt64
	Period2Away sql.NullInt64
	Period3Home sql.NullInt64
	Period3Away sql.NullInt64
	HasOvertime bool
	HasShootout bool
	IsPublished bool
}

const createMatch = `
INSERT INTO matches (
    home_team_id, away_team_id, match_date, match_time, venue_id, status,
    home_score, away_score,
    period1_home, period1_away, period2_home, period2_away, period3_home, period3_away,
    has_overtime, has_shootout, is_published
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createMatch,
		arg.HomeTeamID, arg.AwayTeamID, arg.MatchDate, arg.MatchTime, arg.VenueID, arg.Status,
		arg.HomeScore, arg.AwayScore,
		arg.Period1Home, arg.Period1Away, arg.Period2Home, arg.Period2Away, arg.Period3Home, arg.Period3Away,
		arg.HasOvertime, arg.HasShootout, arg.IsPublished)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type UpdateMatchParams struct {
	ID          int64
	MatchDate   string
	MatchTime   string
	VenueID     sql.NullInt64
	Status      string
	HomeScore   sql.NullInt64
	AwayScore   sql.NullInt64
	Period1Home sql.NullInt64
	Period1Away sql.NullInt64
	Period2Home sql.NullInt64
	Period2Away sql.NullInt64
	Period3Home sql.NullInt64
	Period3Away sql.NullInt64
	HasOvertime bool
	HasShootout bool
	IsPublished bool
}

const updateMatch = `
UPDATE matches
SET match_date = ?, match_time = ?, venue_id = ?, status = ?,
    home_score = ?, away_score = ?,
    period1_home = ?, period1_away = ?, period2_home = ?, period2_away = ?,
    period3_home = ?, period3_away = ?,
    has_overtime = ?, has_shootout = ?, is_published = ?
WHERE id = ?
`

// UpdateMatch rewrites the mutable match fields. Team assignments are fixed
// once a match exists; only schedule, status and result fields change.
func (q *Queries) UpdateMatch(ctx context.Context, arg UpdateMatchParams) error {
	_, err := q.db.ExecContext(ctx, updateMatch,
		arg.MatchDate, arg.MatchTime, arg.VenueID, arg.Status,
		arg.HomeScore, arg.AwayScore,
		arg.Period1Home, arg.Period1Away, arg.Period2Home, arg.Period2Away,
		arg.Period3Home, arg.Period3Away,
		arg.HasOvertime, arg.HasShootout, arg.IsPublished,
		arg.ID)
	return err
}

const deleteMatch = `DELETE FROM matches WHERE id = ?`

func (q *Queries) DeleteMatch(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatch, id)
	return err
}
