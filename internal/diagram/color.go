package diagram

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrUnknownColor is returned for colors the translator cannot resolve.
var ErrUnknownColor = errors.New("diagram: unknown color")

var hexPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// artemisColors maps Artemis color codes to RGB.
var artemisColors = map[int]lipgloss.Color{
	0:  "#FFFFFF", // white
	1:  "#636363", // dark grey
	2:  "#FF0000", // red
	3:  "#00FF00", // green
	4:  "#0000FF", // blue
	5:  "#00FFFF", // cyan
	6:  "#FF00FF", // magenta
	7:  "#FFFF00", // yellow
	8:  "#99FA99", // pale green
	9:  "#87CFFA", // light sky blue
	10: "#FFA600", // orange
	11: "#C79663", // brown
	12: "#FFC7C7", // pale pink
	13: "#B3B3B3", // light grey
	14: "#000000", // black
	15: "#FF4040", // reds
	16: "#FF8080",
	17: "#FFBFBF",
}

var namedColors = map[string]lipgloss.Color{
	"black":      "#000000",
	"white":      "#FFFFFF",
	"red":        "#FF0000",
	"green":      "#008000",
	"blue":       "#0000FF",
	"grey":       "#808080",
	"gray":       "#808080",
	"lightgreen": "#90EE90",
	"orange":     "#FFA500",
	"yellow":     "#FFFF00",
}

// ColorTranslator resolves the color notations found in feature tables and
// user options.
type ColorTranslator struct {
	artemis map[int]lipgloss.Color
}

// NewColorTranslator returns a translator with its own copy of the Artemis
// table.
func NewColorTranslator() *ColorTranslator {
	t := &ColorTranslator{artemis: make(map[int]lipgloss.Color, len(artemisColors))}
	for k, v := range artemisColors {
		t.artemis[k] = v
	}
	return t
}

// Artemis translates an Artemis color qualifier. Newer files write
// dot-delimited values; only the first component is used.
func (t *ColorTranslator) Artemis(code string) (lipgloss.Color, error) {
	code, _, _ = strings.Cut(strings.TrimSpace(code), ".")
	n, err := strconv.Atoi(code)
	if err != nil {
		return "", fmt.Errorf("%w: artemis code %q", ErrUnknownColor, code)
	}
	c, ok := t.artemis[n]
	if !ok {
		return "", fmt.Errorf("%w: artemis code %d", ErrUnknownColor, n)
	}
	return c, nil
}

// Translate accepts a lipgloss.Color, an Artemis code as int, a string
// ("#hex", a color name, "R G B" with 0-255 components or an Artemis code),
// or a float RGB triple with 0-1 components.
func (t *ColorTranslator) Translate(v any) (lipgloss.Color, error) {
	switch c := v.(type) {
	case lipgloss.Color:
		return c, nil
	case int:
		return t.Artemis(strconv.Itoa(c))
	case [3]float64:
		return floatColor(c[:])
	case []float64:
		return floatColor(c)
	case string:
		return t.translateString(c)
	}
	return "", fmt.Errorf("%w: %v", ErrUnknownColor, v)
}

func (t *ColorTranslator) translateString(s string) (lipgloss.Color, error) {
	s = strings.TrimSpace(s)
	if hexPattern.MatchString(s) {
		return lipgloss.Color(strings.ToUpper(s)), nil
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 3 {
		var rgb [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 || n > 255 {
				return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
			}
			rgb[i] = n
		}
		return rgbColor(rgb[0], rgb[1], rgb[2]), nil
	}
	return t.Artemis(s)
}

func floatColor(c []float64) (lipgloss.Color, error) {
	if len(c) != 3 {
		return "", fmt.Errorf("%w: %v", ErrUnknownColor, c)
	}
	var rgb [3]int
	for i, f := range c {
		if f < 0 || f > 1 {
			return "", fmt.Errorf("%w: %v", ErrUnknownColor, c)
		}
		rgb[i] = int(math.Round(f * 255))
	}
	return rgbColor(rgb[0], rgb[1], rgb[2]), nil
}

func rgbColor(r, g, b int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}
