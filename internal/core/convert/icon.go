package convert

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

var iconColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
	"#BB8FCE", "#85C1E9", "#F8B500", "#00CED1",
}

// PlaceholderIcon renders a 128x128 SVG tile showing the name's initials on
// a color derived from the name.
func PlaceholderIcon(name string) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">
  <rect width="128" height="128" rx="16" fill="%s"/>
  <text x="64" y="64" font-family="Arial, sans-serif" font-size="48" font-weight="bold" fill="white" text-anchor="middle" dominant-baseline="central">%s</text>
</svg>`, iconColor(name), iconInitials(name))
}

// iconColor picks a palette entry from a 31-multiplier string hash over
// UTF-16 code units. The shift wraps at 32 bits; the running sum does not.
func iconColor(name string) string {
	var h int64
	for _, c := range utf16.Encode([]rune(name)) {
		shifted := int64(int32(uint32(h) << 5))
		h = int64(c) + shifted - h
	}
	if h < 0 {
		h = -h
	}
	return iconColors[h%int64(len(iconColors))]
}

// iconInitials returns the first letters of the first two words, or the
// first two characters of a single-word name, upper-cased.
func iconInitials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) >= 2 {
		return strings.ToUpper(firstRunes(words[0], 1) + firstRunes(words[1], 1))
	}
	word := name
	if len(words) == 1 {
		word = words[0]
	}
	return strings.ToUpper(firstRunes(word, 2))
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
