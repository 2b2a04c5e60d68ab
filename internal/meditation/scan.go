package meditation

import (
	"strconv"
	"strings"
)

// Parse splits text into lines and scans it. See ParseLines.
func Parse(text string) []Meditation {
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines scans the book line by line and returns every complete meditation
// in document order.
//
// For each header the next LookaheadLines lines are searched for the quote
// block ending in a line that contains Separator. If none is found the header
// is dropped and scanning resumes on the line right after it. Otherwise all
// following non-blank lines up to the next header form the context, and the
// scan continues at that next header.
func ParseLines(lines []string) []Meditation {
	var out []Meditation

	for i := 0; i < len(lines); i++ {
		month, day, digits, title, ok := parseHeader(lines[i])
		if !ok {
			continue
		}

		quote, reference, next, found := scanQuote(lines, i+1)
		if !found {
			continue
		}

		context, stop := scanContext(lines, next)

		m := Meditation{
			Month:     month,
			Day:       day,
			Title:     title,
			Quote:     quote,
			Reference: reference,
			Context:   context,
			DateKey:   headerDateKey(month, digits),
		}
		if m.Complete() {
			out = append(out, m)
		}

		// Loop increment lands on stop, the next header (or end of input).
		i = stop - 1
	}

	return out
}

// parseHeader extracts month, day, the day digits as written, and title from
// a header line. A day too large for an int is treated as no match.
func parseHeader(line string) (month string, day int, digits, title string, ok bool) {
	match := headerRe.FindStringSubmatch(trimSpace(line))
	if match == nil {
		return "", 0, "", "", false
	}
	day, err := strconv.Atoi(match[2])
	if err != nil {
		return "", 0, "", "", false
	}
	return match[1], day, match[2], match[3], true
}

// headerDateKey builds the date key from the day digits as they appear in the
// header, left-padded to two places: "January 1st" keys as "january-01" and
// "January 001st" as "january-001".
func headerDateKey(month, digits string) string {
	if len(digits) < 2 {
		digits = strings.Repeat("0", 2-len(digits)) + digits
	}
	return strings.ToLower(month) + "-" + digits
}

// scanQuote buffers non-blank lines from start until one contains Separator,
// looking at no more than LookaheadLines lines. It returns the index after the
// separator line.
func scanQuote(lines []string, start int) (quote, reference string, next int, found bool) {
	end := min(start+LookaheadLines, len(lines))

	var buf []string
	for j := start; j < end; j++ {
		line := trimSpace(lines[j])
		if line == "" {
			continue
		}
		buf = append(buf, line)
		if strings.Contains(line, Separator) {
			quote, reference = splitAttribution(strings.Join(buf, " "))
			return quote, reference, j + 1, true
		}
	}

	return "", "", start, false
}

// splitAttribution splits a joined quote block at its last separator.
// A block starting with the separator has no quote and yields two empty strings.
func splitAttribution(block string) (quote, reference string) {
	idx := strings.LastIndex(block, Separator)
	if idx <= 0 {
		return "", ""
	}

	quote = trimSpace(block[:idx])
	quote = strings.TrimPrefix(quote, `"`)
	quote = strings.TrimSuffix(quote, `"`)

	reference = trimSpace(block[idx+len(Separator):])
	return quote, reference
}

// scanContext joins non-blank lines from start up to the next header.
// It returns the joined text and the index where it stopped.
func scanContext(lines []string, start int) (string, int) {
	var buf []string

	j := start
	for ; j < len(lines); j++ {
		line := trimSpace(lines[j])
		if line == "" {
			continue
		}
		if headerRe.MatchString(line) {
			break
		}
		buf = append(buf, line)
	}

	return strings.Join(buf, " "), j
}
