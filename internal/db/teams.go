// internal/db/teams.go
package db

import (
	"context"
	"database/sql"
)

const listTeams = `
SELECT id, name, short_code, color, founded, description
FROM teams
ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortCode, &t.Color, &t.Founded, &t.Description); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

const getTeamByID = `
SELECT id, name, short_code, color, founded, description
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeamByID(ctx context.Context, id int64) (Team, error) {
	var t Team
	err := q.db.QueryRowContext(ctx, getTeamByID, id).
		Scan(&t.ID, &t.Name, &t.ShortCode, &t.Color, &t.Founded, &t.Description)
	return t, err
}

type CreateTeamParams struct {
	Name        string
	ShortCode   string
	Color       string
	Founded     sql.NullInt64
	Description sql.NullString
}

const createTeam = `
INSERT INTO teams (name, short_code, color, founded, description)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTeam,
		arg.Name, arg.ShortCode, arg.Color, arg.Founded, arg.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type UpdateTeamParams struct {
	ID          int64
	Name        string
	ShortCode   string
	Color       string
	Founded     sql.NullInt64
	Description sql.NullString
}

const updateTeam = `
UPDATE teams
SET name = ?, short_code = ?, color = ?, founded = ?, description = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) error {
	_, err := q.db.ExecContext(ctx, updateTeam,
		arg.Name, arg.ShortCode, arg.Color, arg.Founded, arg.Description, arg.ID)
	return err
}

const deleteTeam = `DELETE FROM teams WHERE id = ?`

func (q *Queries) DeleteTeam(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTeam, id)
	return err
}
