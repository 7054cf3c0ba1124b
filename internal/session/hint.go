package session

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// The service accepts free-form room types, but the dataset only knows these
// four; anything else falls back to dataset medians.
var canonicalRoomTypes = []string{
	"Entire home/apt",
	"Private room",
	"Shared room",
	"Hotel room",
}

// RoomTypeHint suggests the nearest canonical room type when the entered
// value is close to, but not exactly, one of them. It returns "" for exact
// matches (any case) and for inputs too far from every canonical value.
// Advisory only; submission is never blocked on it.
func RoomTypeHint(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, canon := range canonicalRoomTypes {
		dist := levenshtein.ComputeDistance(v, strings.ToLower(canon))
		if dist == 0 {
			return ""
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = canon, dist
		}
	}
	// allow roughly one typo per four characters
	if bestDist > len(best)/4 {
		return ""
	}
	return best
}
