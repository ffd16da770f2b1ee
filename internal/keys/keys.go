package keys

import (
	"fmt"
	"strings"
)

// CombatantKey produces the canonical HP-state key for a pokemon inside a
// tournament: the numeric id and lowercase name joined by a dash
// (e.g. "25-pikachu"). Suitable as a stable map key across battles.
func CombatantKey(id int, name string) string {
	return fmt.Sprintf("%d-%s", id, strings.ToLower(strings.TrimSpace(name)))
}
