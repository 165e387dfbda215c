package models

import "strings"

// Theme is the dashboard color scheme flag kept per session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme derives a Theme from free-form input, defaulting to light.
func ParseTheme(value string) Theme {
	if Theme(strings.TrimSpace(strings.ToLower(value))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips between the light and dark themes.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeUpdateRequest is the payload for switching a session's theme.
type ThemeUpdateRequest struct {
	Theme string `json:"theme" binding:"required"`
}
