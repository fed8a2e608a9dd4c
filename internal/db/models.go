// internal/db/models.go
package db

import "database/sql"

type Team struct {
	ID          int64
	Name        string
	ShortCode   string
	Color       string
	Founded     sql.NullInt64
	Description sql.NullString
}

type Player struct {
	ID       int64
	Name     string
	Number   sql.NullInt64
	Position string
	IsActive bool
	TeamID   sql.NullInt64
}

type Venue struct {
	ID      int64
	Name    string
	Address sql.NullString
}

type Match struct {
	ID          int64
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

type Goal struct {
	ID       int64
	MatchID  int64
	TeamID   int64
	ScorerID int64
}

type Subscriber struct {
	ID        int64
	Email     string
	Confirmed bool
}

// MatchWithTeams joins a match row with both team names for display.
type MatchWithTeams struct {
	Match
	HomeTeamName  string
	HomeShortCode string
	HomeColor     string
	AwayTeamName  string
	AwayShortCode string
	AwayColor     string
	VenueName     sql.NullString
}

// GoalWithScorer joins a goal row with scorer and team display fields.
type GoalWithScorer struct {
	Goal
	ScorerName   string
	ScorerNumber sql.NullInt64
	TeamName     string
}

// ScorerTally is the per-player goal count across published finished matches.
type ScorerTally struct {
	PlayerID     int64
	PlayerName   string
	PlayerNumber sql.NullInt64
	TeamName     sql.NullString
	Goals        int64
}
