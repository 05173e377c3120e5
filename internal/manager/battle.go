package manager

import (
	"strings"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// ScreenBattle is the Screen value game servers report during a battle.
const ScreenBattle = "battle"

// IsInBattle is a coarse battle signal: the reported screen, or the word
// "battle" anywhere in the state's text. Both false positives (a location
// whose name contains it) and false negatives (sources without a screen
// field) are possible.
func IsInBattle(state models.GameState) bool {
	if strings.EqualFold(state.Screen, ScreenBattle) {
		return true
	}
	return strings.Contains(strings.ToLower(state.Summary()), ScreenBattle)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
