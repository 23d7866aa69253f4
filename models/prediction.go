package models

import "time"

// MatchPrediction is a user's score guess for a single match.
// One row per (user, match), replaced on resubmission.
type MatchPrediction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	MatchID   int       `json:"match_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupPrediction is a user's guess for which two teams advance from a
// group, in order. One row per (user, group).
type GroupPrediction struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	GroupID      int       `json:"group_id"`
	FirstTeamID  int       `json:"first_team_id"`
	SecondTeamID int       `json:"second_team_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FinalPrediction is a user's guess for the tournament podium and the
// final-match score. At most one per user. Placements are nullable so a
// partially filled guess is still storable and scorable.
type FinalPrediction struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	ChampionID     *int      `json:"champion_id,omitempty"`
	RunnerUpID     *int      `json:"runner_up_id,omitempty"`
	ThirdPlaceID   *int      `json:"third_place_id,omitempty"`
	FourthPlaceID  *int      `json:"fourth_place_id,omitempty"`
	FinalHomeScore *int      `json:"final_home_score,omitempty"`
	FinalAwayScore *int      `json:"final_away_score,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
