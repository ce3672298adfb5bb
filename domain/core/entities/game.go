package entities

// GamePlatforms are the platforms a catalog entry can be released on.
var GamePlatforms = []string{"PC", "PlayStation", "Xbox", "Nintendo Switch"}

// Game is a catalog entry. GameID is the partition key and Title the sort
// key of the Games table, so a title change means the row moves to a new
// composite key. ReviewsCount and AverageRating are cache fields derived
// from the Reviews table; they are recomputed by the stats reconciler and
// never trusted independently.
type Game struct {
	GameID        string   `json:"game_id"`
	Title         string   `json:"title"`
	Genre         string   `json:"genre"`
	Platforms     []string `json:"platforms"`
	ReleaseDate   string   `json:"release_date"`
	ImageURL      string   `json:"image_url"`
	Description   string   `json:"description"`
	CreatedAt     string   `json:"created_at"`
	ReviewsCount  int      `json:"reviews_count"`
	AverageRating float64  `json:"average_rating"`
}

// ValidGamePlatform reports whether p is a known release platform.
func ValidGamePlatform(p string) bool {
	for _, known := range GamePlatforms {
		if p == known {
			return true
		}
	}
	return false
}
