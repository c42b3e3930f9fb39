package textdist

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// Normalize prepares text for comparison: Unicode NFC composition (keeps
// Hangul and other decomposable scripts from splitting into jamo), case
// folding, punctuation removal, and whitespace collapsing.
func Normalize(text string) string {
	text = norm.NFC.String(text)
	text = foldCaser.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Words normalizes text and splits it into whitespace-delimited tokens.
func Words(text string) []string {
	return strings.Fields(Normalize(text))
}
