// Package chat implements the legacy colour/format escape codes understood by
// scoreboard surfaces: translating the user-facing '&' syntax, stripping codes,
// and tracking the formatting that is still active at the end of a string.
package chat

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ColorChar prefixes every native colour or format code.
const ColorChar = '§'

// AltColorChar is the escape users type in lines, titles and team names.
const AltColorChar = '&'

// Color is a single legacy code, identified by the character following ColorChar.
type Color rune

const (
	Black         Color = '0'
	DarkBlue      Color = '1'
	DarkGreen     Color = '2'
	DarkAqua      Color = '3'
	DarkRed       Color = '4'
	DarkPurple    Color = '5'
	Gold          Color = '6'
	Gray          Color = '7'
	DarkGray      Color = '8'
	Blue          Color = '9'
	Green         Color = 'a'
	Aqua          Color = 'b'
	Red           Color = 'c'
	LightPurple   Color = 'd'
	Yellow        Color = 'e'
	White         Color = 'f'
	Obfuscated    Color = 'k'
	Bold          Color = 'l'
	Strikethrough Color = 'm'
	Underline     Color = 'n'
	Italic        Color = 'o'
	Reset         Color = 'r'
)

// values is the canonical enumeration order. Token allocation depends on it.
var values = []Color{
	Black, DarkBlue, DarkGreen, DarkAqua, DarkRed, DarkPurple, Gold, Gray,
	DarkGray, Blue, Green, Aqua, Red, LightPurple, Yellow, White,
	Obfuscated, Bold, Strikethrough, Underline, Italic, Reset,
}

var names = map[Color]string{
	Black: "black", DarkBlue: "dark_blue", DarkGreen: "dark_green", DarkAqua: "dark_aqua",
	DarkRed: "dark_red", DarkPurple: "dark_purple", Gold: "gold", Gray: "gray",
	DarkGray: "dark_gray", Blue: "blue", Green: "green", Aqua: "aqua",
	Red: "red", LightPurple: "light_purple", Yellow: "yellow", White: "white",
	Obfuscated: "obfuscated", Bold: "bold", Strikethrough: "strikethrough",
	Underline: "underline", Italic: "italic", Reset: "reset",
}

// translatable lists every code character Translate rewrites, including the
// hex marker used by newer hosts.
const translatable = "0123456789AaBbCcDdEeFfKkLlMmNnOoRrXx"

var stripPattern = regexp.MustCompile("(?i)" + string(ColorChar) + "[0-9A-FK-ORX]")

// Values returns every code in canonical order.
func Values() []Color {
	out := make([]Color, len(values))
	copy(out, values)
	return out
}

// ByChar looks up the code for c. Codes are lower case.
func ByChar(c rune) (Color, bool) {
	if _, ok := names[Color(c)]; ok {
		return Color(c), true
	}
	return 0, false
}

// ParseColor accepts a name ("dark_red"), a bare code ("4") or an escaped
// code ("&4", "§4").
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(strings.TrimPrefix(s, string(AltColorChar)), string(ColorChar))
	if r := []rune(s); len(r) == 1 {
		if c, ok := ByChar(r[0]); ok {
			return c, nil
		}
	}
	for c, name := range names {
		if name == s || strings.ReplaceAll(name, "_", "") == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// String renders the native escape sequence, e.g. "§c".
func (c Color) String() string {
	return string([]rune{ColorChar, rune(c)})
}

// Name returns the lower-case identifier, e.g. "dark_red".
func (c Color) Name() string {
	return names[c]
}

// Char returns the code character.
func (c Color) Char() rune {
	return rune(c)
}

// IsFormat reports whether c is a style (bold, italic, ...) rather than a colour.
func (c Color) IsFormat() bool {
	switch c {
	case Obfuscated, Bold, Strikethrough, Underline, Italic:
		return true
	}
	return false
}

// IsColor reports whether c selects a colour. Reset is neither colour nor format.
func (c Color) IsColor() bool {
	return !c.IsFormat() && c != Reset && names[c] != ""
}

// Translate rewrites alt followed by a code character into the native escape.
func Translate(alt rune, s string) string {
	r := []rune(s)
	for i := 0; i < len(r)-1; i++ {
		if r[i] == alt && strings.ContainsRune(translatable, r[i+1]) {
			r[i] = ColorChar
			r[i+1] = unicode.ToLower(r[i+1])
		}
	}
	return string(r)
}

// Colorize translates the default '&' syntax.
func Colorize(s string) string {
	return Translate(AltColorChar, s)
}

// Strip removes native codes.
func Strip(s string) string {
	return stripPattern.ReplaceAllString(s, "")
}

// StripAll removes both '&' and native codes.
func StripAll(s string) string {
	return Strip(Colorize(s))
}

// LastColors returns the colour and formats still in effect at the end of s,
// as a string of native codes ready to be prepended to a continuation.
func LastColors(s string) string {
	r := []rune(s)
	var result string
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] != ColorChar || i == len(r)-1 {
			continue
		}
		c, ok := ByChar(r[i+1])
		if !ok {
			continue
		}
		result = c.String() + result
		if c.IsColor() || c == Reset {
			break
		}
	}
	return result
}
