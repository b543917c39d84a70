package domain

import "strings"

// IconCategory is the display family of an upstream icon code.
type IconCategory string

const (
	IconClear  IconCategory = "clear"
	IconCloudy IconCategory = "cloudy"
	IconRain   IconCategory = "rain"
	IconSnow   IconCategory = "snow"
)

// ClassifyIcon maps an icon code to its category by its leading condition
// group. Unrecognized codes, including the empty string, fall back to cloudy.
func ClassifyIcon(code string) IconCategory {
	switch {
	case strings.HasPrefix(code, "01"):
		return IconClear
	case hasAnyPrefix(code, "02", "03", "04"):
		return IconCloudy
	case hasAnyPrefix(code, "09", "10"):
		return IconRain
	case strings.HasPrefix(code, "13"):
		return IconSnow
	default:
		return IconCloudy
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
