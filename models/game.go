package models

// GameCategory distinguishes games played solo from games played by teams.
type GameCategory string

const (
	CategoryIndividual GameCategory = "individual"
	CategoryTeam       GameCategory = "team"
)

func (c GameCategory) Valid() bool {
	return c == CategoryIndividual || c == CategoryTeam
}

type Game struct {
	ID          int          `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Category    GameCategory `json:"category" db:"category"`
	Active      bool         `json:"active" db:"active"`

	RulesKey *string `json:"-" db:"rules_key"`
	CoverKey *string `json:"-" db:"cover_key"`
	RulesURL *string `json:"rules_url,omitempty" db:"-"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`
}

// AdminGame links an admin account to a game it may partially manage.
type AdminGame struct {
	ID      int `json:"id" db:"id"`
	AdminID int `json:"admin_id" db:"admin_id"`
	GameID  int `json:"game_id" db:"game_id"`
}
