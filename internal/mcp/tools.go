package mcp

import "github.com/mark3labs/mcp-go/mcp"

var fetchToolDef = mcp.NewTool("meditation_fetch",
	mcp.WithDescription("Fetch one daily meditation by date_key (e.g. \"march-03\") or by month and day."),
	mcp.WithString("date_key", mcp.Description("Lowercase month, dash, two-digit day, e.g. \"january-01\"")),
	mcp.WithString("month", mcp.Description("Month name, any case; use with day")),
	mcp.WithNumber("day", mcp.Description("Day of month; use with month")),
)

var todayToolDef = mcp.NewTool("meditation_today",
	mcp.WithDescription("Fetch the meditation for today, or for the given calendar date."),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD; defaults to today in server local time")),
)

var listToolDef = mcp.NewTool("meditation_list",
	mcp.WithDescription("List meditations in book order without quote and commentary bodies."),
	mcp.WithString("month", mcp.Description("Restrict to one month")),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 31, max 366)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
)

var searchToolDef = mcp.NewTool("meditation_search",
	mcp.WithDescription("Search meditation titles, quotes, references and commentary for a phrase."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for (case-insensitive)")),
	mcp.WithString("month", mcp.Description("Only search this month (e.g. March)")),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 20, max 100)")),
)

var runsToolDef = mcp.NewTool("meditation_runs",
	mcp.WithDescription("List recent imports of the book, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum runs to return (default 10, max 100)")),
)
