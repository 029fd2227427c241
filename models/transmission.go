package models

// Transmission is a broadcast link for a match.
type Transmission struct {
	ID       int    `json:"id" db:"id"`
	MatchID  int    `json:"match_id" db:"match_id"`
	Platform string `json:"platform" db:"platform"`
	URL      string `json:"url" db:"url"`
}
