package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	renderer *Renderer
}

// HandleList handles GET /meditations — browse meditations, optionally by month.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	data := ListPageData{
		PageData: PageData{
			Title:   "Meditations",
			Version: h.renderer.version,
			Nav:     "meditations",
		},
		Month: month,
		Query: query,
	}

	if query != "" {
		result, err := ops.Search(r.Context(), h.db, ops.SearchInput{
			Query: query,
			Month: month,
			Limit: ops.MaxSearchLimit,
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		for _, item := range result.Items {
			data.Items = append(data.Items, ops.SummaryItem{
				ID:        item.ID,
				DateKey:   item.DateKey,
				Month:     item.Month,
				Day:       item.Day,
				Title:     item.Title,
				Reference: item.Reference,
			})
		}
		data.Month = result.Month
		data.Capped = len(result.Items) >= ops.MaxSearchLimit
		h.renderer.renderPage(w, r, "list", data)
		return
	}

	result, err := ops.List(r.Context(), h.db, ops.ListInput{
		Month:  month,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination
	h.renderer.renderPage(w, r, "list", data)
}

// HandleToday handles GET /meditations/today.
func (h *Handlers) HandleToday(w http.ResponseWriter, r *http.Request) {
	item, err := ops.Today(r.Context(), h.db, ops.TodayInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.renderDetail(w, r, item, "today")
}

// HandleDetail handles GET /meditations/{date_key} — view a single meditation.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("date_key")
	if key == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("date_key is required"))
		return
	}

	item, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{DateKey: key})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.renderDetail(w, r, item, "meditations")
}

func (h *Handlers) renderDetail(w http.ResponseWriter, r *http.Request, item *ops.Item, nav string) {
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, item)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("%s %d — %s", item.Month, item.Day, item.Title),
			Version: h.renderer.version,
			Nav:     nav,
		},
		Meditation:   item,
		RenderedHTML: renderMarkdown(meditationMarkdown(item)),
	})
}

// meditationMarkdown lays out a meditation as a block quote with its
// attribution followed by the commentary. The book text is plain, so every
// field is escaped and renders literally.
func meditationMarkdown(item *ops.Item) string {
	var b strings.Builder
	b.WriteString("> ")
	b.WriteString(escapeMarkdown(item.Quote))
	b.WriteString("\n>\n> — ")
	b.WriteString(escapeMarkdown(item.Reference))
	b.WriteString("\n\n")
	b.WriteString(escapeMarkdown(item.Context))
	b.WriteString("\n")
	return b.String()
}

// markdownPunct is the ASCII punctuation CommonMark allows to be backslash-escaped.
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdown backslash-escapes every ASCII punctuation character in s so
// emphasis, list markers, links and inline HTML come out as plain text.
func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseIntParam reads an integer query parameter, falling back to def.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// pageHref builds a list URL for the given offset, keeping the month filter.
func pageHref(month string, offset int) template.URL {
	offset = max(offset, 0)
	q := "offset=" + strconv.Itoa(offset)
	if month != "" {
		q = "month=" + template.URLQueryEscaper(month) + "&" + q
	}
	return template.URL("/meditations?" + q)
}
