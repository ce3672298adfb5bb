package entities

// WatchStatus is the play state of a tracked game. The German values are
// part of the wire contract and must not be translated.
type WatchStatus string

const (
	StatusPlanned  WatchStatus = "will spielen"
	StatusPlaying  WatchStatus = "spiele gerade"
	StatusFinished WatchStatus = "fertig gespielt"
)

// Valid reports whether s is one of the three allowed statuses.
func (s WatchStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusPlaying, StatusFinished:
		return true
	}
	return false
}

// WatchlistEntry is a row in the Watchlist table, keyed by (UserID, GameID).
// One row per (user, game) pair, enforced by conditional insert.
type WatchlistEntry struct {
	UserID   string      `json:"user_id"`
	GameID   string      `json:"game_id"`
	Status   WatchStatus `json:"status"`
	Playtime float64     `json:"playtime"`
	AddedAt  string      `json:"added_at"`
}
