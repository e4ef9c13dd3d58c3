package model

import (
	"strings"
	"time"
)

// Filter represents how tasks should be shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Valid reports whether f is one of the known filter names.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Task is an individual todo item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Preferences are the persisted display settings.
type Preferences struct {
	DarkMode      bool   `json:"darkMode"`
	AccentColor   string `json:"accentColor"`
	HideCompleted bool   `json:"hideCompleted"`
}

// DefaultAccent is the accent color applied when none is stored.
const DefaultAccent = "lilac"

// AccentNames is the fixed palette, in swatch display order.
var AccentNames = []string{"lilac", "blue", "green", "amber", "rose", "cyan"}

// KnownAccent reports whether name is a palette entry.
func KnownAccent(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range AccentNames {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultPreferences returns the hardcoded preference defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode:      true,
		AccentColor:   DefaultAccent,
		HideCompleted: false,
	}
}

// NormalizePreferences repairs values that drifted outside the palette or
// arrived from an older stored record.
func NormalizePreferences(p Preferences) Preferences {
	if !KnownAccent(p.AccentColor) {
		p.AccentColor = DefaultAccent
	} else {
		p.AccentColor = strings.ToLower(strings.TrimSpace(p.AccentColor))
	}
	return p
}
