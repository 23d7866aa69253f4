package models

import "time"

type Match struct {
	ID         int       `json:"id"`
	HomeTeamID int       `json:"home_team_id"`
	AwayTeamID int       `json:"away_team_id"`
	MatchTime  time.Time `json:"match_time"`
	Stage      string    `json:"stage"`
	HomeScore  *int      `json:"home_score,omitempty"`
	AwayScore  *int      `json:"away_score,omitempty"`
	Finished   bool      `json:"finished"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasResult reports whether the match carries a complete final score.
func (m *Match) HasResult() bool {
	return m.Finished && m.HomeScore != nil && m.AwayScore != nil
}
