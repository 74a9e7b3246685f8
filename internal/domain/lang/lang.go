// Package lang holds the player-facing message catalog.
package lang

import "fmt"

// Key identifies a message template.
type Key string

const (
	SuicideInSeconds Key = "suicide_in_seconds"
	SuicideCancelled Key = "suicide_cancelled"
)

var catalog = map[Key]string{
	SuicideInSeconds: "You will die in %d seconds. Don't move!",
	SuicideCancelled: "Suicide cancelled.",
}

// Render formats the message for key. Unknown keys render as the key itself
// so a missing translation is visible rather than silent.
func Render(key Key, args ...any) string {
	tmpl, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
