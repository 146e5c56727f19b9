package domain

import "fmt"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ThemeStorageKey is the fixed key the preference is persisted under
const ThemeStorageKey = "my-app-theme"

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown theme %q", ErrValidation, s)
}

// RootClass is the display class applied to the document root
func (t Theme) RootClass(prefersDark bool) string {
	switch t {
	case ThemeLight, ThemeDark:
		return string(t)
	}
	if prefersDark {
		return string(ThemeDark)
	}
	return string(ThemeLight)
}
