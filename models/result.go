package models

import "time"

// GroupResult is the admin-entered final classification of one group.
// At most one per group; re-entry overwrites.
type GroupResult struct {
	ID           int       `json:"id"`
	GroupID      int       `json:"group_id"`
	FirstTeamID  int       `json:"first_team_id"`
	SecondTeamID int       `json:"second_team_id"`
	Completed    bool      `json:"completed"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TournamentResult is the single global row holding the real podium and
// the final-match score.
type TournamentResult struct {
	ID             int       `json:"id"`
	ChampionID     *int      `json:"champion_id,omitempty"`
	RunnerUpID     *int      `json:"runner_up_id,omitempty"`
	ThirdPlaceID   *int      `json:"third_place_id,omitempty"`
	FourthPlaceID  *int      `json:"fourth_place_id,omitempty"`
	FinalHomeScore *int      `json:"final_home_score,omitempty"`
	FinalAwayScore *int      `json:"final_away_score,omitempty"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updated_at"`
}
