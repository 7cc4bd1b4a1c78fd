package validate

import (
	"fmt"
	"unicode"
)

// Detection is one invisible or direction-changing rune found in text.
type Detection struct {
	Rune     rune
	Hex      string
	Index    int
	Category string
}

// DetectHiddenUnicode reports runes that render invisibly or reorder the
// surrounding text. Index is the byte offset of the rune.
func DetectHiddenUnicode(s string) []Detection {
	var found []Detection
	for i, r := range s {
		category := hiddenCategory(r)
		if category == "" {
			continue
		}
		found = append(found, Detection{
			Rune:     r,
			Hex:      fmt.Sprintf("U+%04X", r),
			Index:    i,
			Category: category,
		})
	}
	return found
}

func hiddenCategory(r rune) string {
	switch {
	case r >= 0xE0000 && r <= 0xE007F:
		return "tag"
	case r >= 0x202A && r <= 0x202E, r >= 0x2066 && r <= 0x2069, r == 0x200E, r == 0x200F:
		return "bidi"
	case r == 0x200B, r == 0x200C, r == 0x200D, r == 0x2060, r == 0xFEFF:
		return "zero-width"
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return "variation-selector"
	case unicode.Is(unicode.Co, r):
		return "private-use"
	}
	return ""
}
