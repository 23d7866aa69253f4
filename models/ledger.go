package models

import "time"

type PointsCategory string

const (
	CategoryMatch               PointsCategory = "match"
	CategoryGroupClassification PointsCategory = "group_classification"
	CategoryTournamentFinal     PointsCategory = "tournament_final"
)

// PointsLedgerEntry records the points awarded for one prediction.
// Unique per (prediction, category); a rescoring pass replaces the row
// instead of appending, which keeps totals stable under reprocessing.
type PointsLedgerEntry struct {
	ID           int            `json:"id"`
	UserID       int            `json:"user_id"`
	PredictionID int            `json:"prediction_id"`
	Category     PointsCategory `json:"category"`
	Points       int            `json:"points"`
	// RelatedID is the match, group or tournament-result row the
	// scoring pass ran against, depending on Category.
	RelatedID int       `json:"related_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserTotal is a derived projection: always the full sum of the user's
// ledger entries, recomputed after every scoring pass.
type UserTotal struct {
	UserID    int       `json:"user_id"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	UserID           int    `json:"user_id"`
	Name             string `json:"name"`
	Points           int    `json:"points"`
	MatchesPredicted int    `json:"matches_predicted"`
	// Accuracy is the share of predicted-and-finished matches hit with
	// the exact score, as an integer percentage.
	Accuracy int `json:"accuracy"`
}
