// Package render turns a query client state into terminal output. It is a
// pure function of the state; nothing here performs I/O.
package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/query"
)

var glyphs = map[domain.IconCategory]string{
	domain.IconClear:  "☀",
	domain.IconCloudy: "☁",
	domain.IconRain:   "🌧",
	domain.IconSnow:   "❄",
}

// Renderer formats states. Hint, when set, lists example cities on the
// welcome screen.
type Renderer struct {
	Hint string
}

// Render returns the view for s.
func (r Renderer) Render(s query.State) string {
	switch s := s.(type) {
	case query.Loading:
		return "Loading weather data..."
	case query.Failure:
		return "Error\n" + s.Message
	case query.Success:
		return card(s.Result)
	default:
		return r.welcome()
	}
}

// State renders s without a city hint.
func State(s query.State) string {
	return Renderer{}.Render(s)
}

// Glyph returns the symbol for an icon code.
func Glyph(code string) string {
	return glyphs[domain.ClassifyIcon(code)]
}

func (r Renderer) welcome() string {
	var b strings.Builder
	b.WriteString("Welcome!\n")
	b.WriteString("Enter a city name above to get the current weather conditions.")
	if r.Hint != "" {
		b.WriteString("\nTry: " + r.Hint)
	}
	return b.String()
}

func card(w domain.WeatherResult) string {
	return fmt.Sprintf("%s\n%s  %d°C\n%s", w.City, Glyph(w.Icon), w.Temperature, capitalizeWords(w.Description))
}

// capitalizeWords upper-cases the first letter of each space-separated word.
func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
