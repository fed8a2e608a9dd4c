package league

import "strings"

// Player positions as stored.
const (
	PositionGoalkeeper = "goalkeeper"
	PositionDefenseman = "defenseman"
	PositionForward    = "forward"
)

// ValidPosition reports whether p is one of the three stored positions.
func ValidPosition(p string) bool {
	switch p {
	case PositionGoalkeeper, PositionDefenseman, PositionForward:
		return true
	}
	return false
}

// NormalizeShortCode turns free input into the stored team code: the first
// three characters, uppercased. "bukovsko" becomes "BUK".
func NormalizeShortCode(input string) string {
	code := strings.TrimSpace(input)
	runes := []rune(code)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
