package export

import "strings"

// Field length limits imposed by the target import formats.
const (
	maxFECFieldLen   = 255 // FEC free-text fields
	maxLabelFieldLen = 100 // Sage and Cegid labels
)

// delimiterSubstitutes maps a format's field delimiter to the visually
// distinct replacement written in its place, so a sanitized field can never
// break the row structure.
var delimiterSubstitutes = map[rune]rune{
	'|': '-',
	';': ',',
}

// Sanitize cleans a free-text value for inclusion in a delimited export row:
// newlines and tabs become single spaces, the format's delimiter is replaced
// by a safe substitute, ASCII control characters are stripped, and the result
// is truncated to maxLength then trimmed. A total function: any input,
// including the empty string, sanitizes to a valid field.
func Sanitize(value string, delimiter rune, maxLength int) string {
	if value == "" {
		return ""
	}

	substitute, ok := delimiterSubstitutes[delimiter]
	if !ok {
		substitute = '-'
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			b.WriteRune(' ')
		case r == delimiter:
			b.WriteRune(substitute)
		case r < 0x20 || r == 0x7F:
			// drop
		default:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if maxLength > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLength {
			cleaned = string(runes[:maxLength])
		}
	}
	return strings.TrimSpace(cleaned)
}
