package entities

import "strings"

// ReviewPlatforms are the platforms a review can be posted for. Note this
// set differs from GamePlatforms: reviews allow "Nintendo" and "Mobile".
var ReviewPlatforms = []string{"PC", "PlayStation", "Xbox", "Nintendo", "Mobile"}

// Review is a rating row in the Reviews table, keyed by (UserID, GameID).
// At most one review exists per user per game; writes go through upsert
// semantics that preserve PostedAt on update. Username is a decoration
// resolved at read time, not a stored attribute.
type Review struct {
	UserID        string  `json:"user_id"`
	GameID        string  `json:"game_id"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment"`
	Platform      string  `json:"platform"`
	PlaytimeHours float64 `json:"playtime_hours"`
	PostedAt      string  `json:"posted_at"`
	Username      string  `json:"username,omitempty"`
}

// ValidReviewPlatform reports whether p is an allowed review platform.
func ValidReviewPlatform(p string) bool {
	for _, known := range ReviewPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// ValidRating reports whether r is an integer rating between 1 and 5.
// The raw value arrives as a float from JSON, so integer-ness is part of
// the check: 3.5 is rejected, not truncated.
func ValidRating(r float64) bool {
	return r == float64(int(r)) && r >= 1 && r <= 5
}

// ValidComment reports whether c is non-empty after trimming whitespace.
func ValidComment(c string) bool {
	return strings.TrimSpace(c) != ""
}
