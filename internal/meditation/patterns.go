package meditation

import (
	"regexp"
	"strings"
	"unicode"
)

// Months lists the month names a header line may start with, in calendar order.
var Months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// HeaderPattern matches a trimmed header line: "<Month> <Day><st|nd|rd|th> <Title>".
// The ordinal suffix is consumed but not checked against the number.
// The gaps accept Unicode spaces (NBSP and friends) and BOMs as well as ASCII
// whitespace, as ebook-to-text converters emit them.
// Groups: 1 month, 2 day digits, 3 title.
const HeaderPattern = `^(January|February|March|April|May|June|July|August|September|October|November|December)[\s\p{Z}\x{FEFF}]+(\d+)(?:st|nd|rd|th)[\s\p{Z}\x{FEFF}]+(.+)$`

// Separator divides a quoted passage from its attribution. The last
// occurrence in a quote block wins, so dashes inside the quote are kept.
const Separator = "—"

// LookaheadLines bounds how many lines after a header are searched for the
// separator, blank lines included.
const LookaheadLines = 9

var headerRe = regexp.MustCompile(HeaderPattern)

// IsHeader reports whether line (surrounding whitespace ignored) starts a new entry.
func IsHeader(line string) bool {
	return headerRe.MatchString(trimSpace(line))
}

// trimSpace trims Unicode whitespace and byte order marks from both ends of s.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
