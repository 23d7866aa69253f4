package models

import "time"

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	GroupID   *int      `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	FlagKey *string `json:"-"`
	FlagURL *string `json:"flag_url,omitempty"`
}

type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
