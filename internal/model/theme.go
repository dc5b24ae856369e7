package model

type Theme string

const (
	ThemeDefault  Theme = "theme-default"
	ThemeDark     Theme = "theme-dark"
	ThemePastel   Theme = "theme-pastel"
	ThemeContrast Theme = "theme-contrast"
	ThemeOcean    Theme = "theme-ocean"
	ThemeForest   Theme = "theme-forest"
	ThemeSunset   Theme = "theme-sunset"
	ThemeNeon     Theme = "theme-neon"
	ThemeEarth    Theme = "theme-earth"
	ThemeRose     Theme = "theme-rose"
)

const DefaultFont = "'Poppins', sans-serif"

var Themes = []Theme{
	ThemeDefault, ThemeDark, ThemePastel, ThemeContrast, ThemeOcean,
	ThemeForest, ThemeSunset, ThemeNeon, ThemeEarth, ThemeRose,
}

func (t Theme) IsValid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// NextTheme cycles through Themes, wrapping at the end.
func NextTheme(t Theme) Theme {
	for i, known := range Themes {
		if known == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}
