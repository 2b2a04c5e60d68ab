package meditation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const chiefTask = `"The chief task in life is simply this: to identify and separate matters so that I can say clearly to myself which are externals not under my control, and which have to do with the choices I actually control." —Epictetus, Discourses, 2.5.4-5`

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestParse_BookExample(t *testing.T) {
	text := lines(
		"January 1st On Choice",
		"",
		chiefTask,
		"",
		"Some commentary spanning",
		"multiple lines.",
		"",
		"January 2nd Next Entry",
		"...",
	)

	got := Parse(text)
	want := []Meditation{{
		Month:     "January",
		Day:       1,
		Title:     "On Choice",
		Quote:     "The chief task in life is simply this: to identify and separate matters so that I can say clearly to myself which are externals not under my control, and which have to do with the choices I actually control.",
		Reference: "Epictetus, Discourses, 2.5.4-5",
		Context:   "Some commentary spanning multiple lines.",
		DateKey:   "january-01",
	}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ConsecutiveEntries(t *testing.T) {
	text := lines(
		"March 3rd Control",
		`"First quote." —Seneca`,
		"First context.",
		"",
		"March 21st Perspective",
		"",
		`"Second`,
		`quote." —Marcus Aurelius, Meditations, 4.3`,
		"",
		"Second context, line one.",
		"Line two.",
	)

	got := Parse(text)
	want := []Meditation{
		{
			Month: "March", Day: 3, Title: "Control",
			Quote: "First quote.", Reference: "Seneca",
			Context: "First context.", DateKey: "march-03",
		},
		{
			Month: "March", Day: 21, Title: "Perspective",
			Quote: "Second quote.", Reference: "Marcus Aurelius, Meditations, 4.3",
			Context: "Second context, line one. Line two.", DateKey: "march-21",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_QuoteMarksStripped(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{name: "wrapped", block: `"Be brief." —Cato`, want: "Be brief."},
		{name: "unwrapped", block: `Be brief. —Cato`, want: "Be brief."},
		{name: "leading only", block: `"Be brief. —Cato`, want: "Be brief."},
		{name: "inner quotes kept", block: `"He said "no" twice." —Cato`, want: `He said "no" twice.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(lines("April 2nd Brevity", tt.block, "Context."))
			if len(got) != 1 {
				t.Fatalf("expected 1 meditation, got %d", len(got))
			}
			if got[0].Quote != tt.want {
				t.Errorf("Quote = %q, want %q", got[0].Quote, tt.want)
			}
			if strings.HasPrefix(got[0].Quote, `"`) || strings.HasSuffix(got[0].Quote, `"`) {
				t.Errorf("Quote %q still wrapped in quote marks", got[0].Quote)
			}
		})
	}
}

func TestParse_LastSeparatorWins(t *testing.T) {
	got := Parse(lines(
		"May 5th Interruptions",
		`"Wait—no, act now." —Seneca, Letters, 1.2`,
		"Context.",
	))
	if len(got) != 1 {
		t.Fatalf("expected 1 meditation, got %d", len(got))
	}
	if got[0].Quote != "Wait—no, act now." {
		t.Errorf("Quote = %q", got[0].Quote)
	}
	if got[0].Reference != "Seneca, Letters, 1.2" {
		t.Errorf("Reference = %q", got[0].Reference)
	}
}

func TestParse_LookaheadWindow(t *testing.T) {
	build := func(fillers int) string {
		ls := []string{"June 1st Patience"}
		for i := 0; i < fillers; i++ {
			ls = append(ls, "filler")
		}
		ls = append(ls, `late quote —Epictetus`, "Context.")
		return lines(ls...)
	}

	// Separator on the ninth line after the header is still inside the window.
	if got := Parse(build(LookaheadLines - 1)); len(got) != 1 {
		t.Errorf("separator at window edge: got %d meditations, want 1", len(got))
	}

	// One line further and the header is dropped.
	if got := Parse(build(LookaheadLines)); len(got) != 0 {
		t.Errorf("separator beyond window: got %d meditations, want 0", len(got))
	}
}

func TestParse_BlankLinesCountTowardWindow(t *testing.T) {
	ls := []string{"June 2nd Spacing"}
	for i := 0; i < LookaheadLines; i++ {
		ls = append(ls, "")
	}
	ls = append(ls, `"Quote." —Seneca`, "Context.")

	if got := Parse(lines(ls...)); len(got) != 0 {
		t.Errorf("got %d meditations, want 0", len(got))
	}
}

func TestParse_FailedHeaderResumesOnNextLine(t *testing.T) {
	// The first header's window (lines 1-9) has no separator. The second
	// header sits inside that window and must still be considered.
	text := lines(
		"July 1st Abandoned",
		"one",
		"two",
		"July 2nd Found",
		"three",
		"four",
		"five",
		"six",
		"seven",
		"eight",
		`"nine" —Zeno`,
		"Context for the second.",
	)

	got := Parse(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 meditation, got %d", len(got))
	}
	if got[0].DateKey != "july-02" {
		t.Errorf("DateKey = %q, want %q", got[0].DateKey, "july-02")
	}
	if got[0].Reference != "Zeno" {
		t.Errorf("Reference = %q, want %q", got[0].Reference, "Zeno")
	}
	if got[0].Context != "Context for the second." {
		t.Errorf("Context = %q", got[0].Context)
	}
}

func TestParse_EmptyContextDropped(t *testing.T) {
	text := lines(
		"August 1st No Commentary",
		`"Quote one." —Seneca`,
		"",
		"August 2nd Has Commentary",
		`"Quote two." —Seneca`,
		"Commentary.",
	)

	got := Parse(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 meditation, got %d", len(got))
	}
	if got[0].DateKey != "august-02" {
		t.Errorf("DateKey = %q, want %q", got[0].DateKey, "august-02")
	}
}

func TestParse_SeparatorAtStartOfBlock(t *testing.T) {
	text := lines(
		"September 9th Nameless",
		"—Anonymous",
		"Context.",
	)
	if got := Parse(text); len(got) != 0 {
		t.Errorf("got %d meditations, want 0", len(got))
	}
}

func TestParse_MissingReferenceDropped(t *testing.T) {
	text := lines(
		"October 4th Trailing",
		`"Quote." —`,
		"Context.",
	)
	if got := Parse(text); len(got) != 0 {
		t.Errorf("got %d meditations, want 0", len(got))
	}
}

func TestParse_CRLF(t *testing.T) {
	text := "November 11th Endings\r\n\r\n\"Quote.\" —Seneca\r\nContext.\r\n"

	got := Parse(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 meditation, got %d", len(got))
	}
	if got[0].Title != "Endings" || got[0].Context != "Context." {
		t.Errorf("got %+v", got[0])
	}
}

func TestParse_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "ordinal not checked", header: "December 3th Odd Suffix", want: true},
		{name: "indented", header: "   December 4th Indented  ", want: true},
		{name: "no title", header: "December 5th", want: false},
		{name: "no suffix", header: "December 6 Plain", want: false},
		{name: "lowercase month", header: "december 7th Lower", want: false},
		{name: "unknown month", header: "Smarch 8th Weather", want: false},
		{name: "day overflows int", header: "December 99999999999999999999th Huge", want: false},
		{name: "nbsp before day", header: "December\u00a09th Hard Spaces", want: true},
		{name: "nbsp before title", header: "December 10th\u00a0Hard Spaces", want: true},
		{name: "narrow nbsp and ideographic space", header: "December\u202f11th\u3000Wide", want: true},
		{name: "leading bom", header: "\ufeffDecember 12th Marked", want: true},
		{name: "trailing nbsp", header: "December 13th Padded\u00a0", want: true},
		{name: "nbsp without title", header: "December 14th\u00a0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(lines(tt.header, `"Quote." —Seneca`, "Context."))
			if (len(got) == 1) != tt.want {
				t.Errorf("got %d meditations, want match=%v", len(got), tt.want)
			}
		})
	}
}

func TestParse_UnicodeWhitespace(t *testing.T) {
	text := "\ufeffJanuary 1st Control\n" +
		"\u00a0\n" +
		"\"First quote.\"\u00a0—\u00a0Seneca\u00a0\n" +
		"First context.\n" +
		"January\u00a02nd Perception\n" +
		"\"Second quote.\" —Zeno\n" +
		"Second context.\n"

	got := Parse(text)
	want := []Meditation{
		{
			Month: "January", Day: 1, Title: "Control",
			Quote: "First quote.", Reference: "Seneca",
			Context: "First context.", DateKey: "january-01",
		},
		{
			Month: "January", Day: 2, Title: "Perception",
			Quote: "Second quote.", Reference: "Zeno",
			Context: "Second context.", DateKey: "january-02",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DateKeyKeepsDayDigits(t *testing.T) {
	tests := []struct {
		header  string
		day     int
		dateKey string
	}{
		{header: "May 5th Single", day: 5, dateKey: "may-05"},
		{header: "May 05th Padded", day: 5, dateKey: "may-05"},
		{header: "May 21st Double", day: 21, dateKey: "may-21"},
		{header: "May 001st Triple", day: 1, dateKey: "may-001"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got := Parse(lines(tt.header, `"Quote." —Seneca`, "Context."))
			if len(got) != 1 {
				t.Fatalf("got %d meditations, want 1", len(got))
			}
			if got[0].Day != tt.day || got[0].DateKey != tt.dateKey {
				t.Errorf("day=%d date_key=%q, want day=%d date_key=%q",
					got[0].Day, got[0].DateKey, tt.day, tt.dateKey)
			}
		})
	}
}

func TestParse_NoHeaders(t *testing.T) {
	if got := Parse("Introduction\n\nSome preface text —Author\n"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestIsHeader(t *testing.T) {
	if !IsHeader("  February 14th On Love ") {
		t.Errorf("expected header")
	}
	if !IsHeader("\ufeffFebruary\u00a014th\u00a0On Love\u00a0") {
		t.Errorf("expected header with NBSP gaps and BOM")
	}
	if IsHeader("February fourteenth On Love") {
		t.Errorf("unexpected header")
	}
}
