// internal/db/players.go
package db

import (
	"context"
	"database/sql"
)

// PlayerWithTeam joins a player with the team name for list views.
type PlayerWithTeam struct {
	Player
	TeamName sql.NullString
}

const listPlayers = `
SELECT p.id, p.name, p.number, p.position, p.is_active, p.team_id, t.name
FROM players p
LEFT JOIN teams t ON t.id = p.team_id
ORDER BY p.name
`

func (q *Queries) ListPlayers(ctx context.Context) ([]PlayerWithTeam, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerWithTeam
	for rows.Next() {
		var p PlayerWithTeam
		if err := rows.Scan(&p.ID, &p.Name, &p.Number, &p.Position, &p.IsActive, &p.TeamID, &p.TeamName); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const listActivePlayersByTeam = `
SELECT id, name, number, position, is_active, team_id
FROM players
WHERE team_id = ? AND is_active = 1
ORDER BY number
`

// ListActivePlayersByTeam returns the active roster ordered by jersey number,
// as shown in the goal-scorer step of the match wizard.
func (q *Queries) ListActivePlayersByTeam(ctx context.Context, teamID int64) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listActivePlayersByTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Number, &p.Position, &p.IsActive, &p.TeamID); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const getPlayerByID = `
SELECT id, name, number, position, is_active, team_id
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayerByID(ctx context.Context, id int64) (Player, error) {
	var p Player
	err := q.db.QueryRowContext(ctx, getPlayerByID, id).
		Scan(&p.ID, &p.Name, &p.Number, &p.Position, &p.IsActive, &p.TeamID)
	return p, err
}

type CreatePlayerParams struct {
	Name     string
	Number   sql.NullInt64
	Position string
	IsActive bool
	TeamID   sql.NullInt64
}

const createPlayer = `
INSERT INTO players (name, number, position, is_active, team_id)
VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createPlayer,
		arg.Name, arg.Number, arg.Position, arg.IsActive, arg.TeamID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type UpdatePlayerParams struct {
	ID       int64
	Name     string
	Number   sql.NullInt64
	Position string
	IsActive bool
	TeamID   sql.NullInt64
}

const updatePlayer = `
UPDATE players
SET name = ?, number = ?, position = ?, is_active = ?, team_id = ?
WHERE id = ?
`

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayer,
		arg.Name, arg.Number, arg.Position, arg.IsActive, arg.TeamID, arg.ID)
	return err
}

const deletePlayer = `DELETE FROM players WHERE id = ?`

func (q *Queries) DeletePlayer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePlayer, id)
	return err
}
