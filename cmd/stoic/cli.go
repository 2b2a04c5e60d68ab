package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/stoic/internal/config"
	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/mcp"
	"github.com/hpungsan/stoic/internal/meditation"
	"github.com/hpungsan/stoic/internal/ops"
	"github.com/hpungsan/stoic/internal/web"
)

// newCLIApp creates the CLI application with all commands.
// Running without a command imports the book with the configured paths.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "stoic",
		Usage:   "Import a book of daily meditations into SQLite and read it back",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "SQLite database file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return cli.Exit(fmt.Sprintf("unknown command %q; run 'stoic --help' for usage", c.Args().First()), 1)
			}
			return runImport(c, cfg, cfg.SourcePath, false)
		},
		Commands: []*cli.Command{
			importCmd(cfg),
			fetchCmd(cfg),
			todayCmd(cfg),
			listCmd(cfg),
			searchCmd(cfg),
			exportCmd(cfg),
			runsCmd(cfg),
			mcpCmd(cfg),
			webCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// importCmd creates the import command.
func importCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Parse the book and replace the meditations table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Value: cfg.SourcePath, Usage: "Book text file"},
			&cli.BoolFlag{Name: "json", Usage: "Print the import summary as JSON instead of a preview"},
		},
		Action: func(c *cli.Context) error {
			return runImport(c, cfg, c.String("source"), c.Bool("json"))
		},
	}
}

// runImport parses the book at source into the database and reports progress.
func runImport(c *cli.Context, cfg *config.Config, source string, asJSON bool) error {
	return withDB(c, cfg, func(database *sql.DB) error {
		out := c.App.Writer

		input := ops.LoadInput{SourcePath: source}
		if !asJSON {
			fmt.Fprintf(out, "Parsing %s...\n", source)
			input.OnParsed = func(ms []meditation.Meditation) {
				printPreview(out, ms, cfg.PreviewCount, cfg.PreviewChars)
			}
		}

		result, err := ops.Load(c.Context, database, input)
		if err != nil {
			return outputError(err)
		}

		if asJSON {
			return outputJSON(out, result)
		}

		if result.Failed == 0 {
			fmt.Fprintf(out, "\nSuccessfully inserted all %d meditations into database!\n", result.Inserted)
		} else {
			fmt.Fprintf(out, "\nInserted %d of %d meditations into database (%d failed).\n",
				result.Inserted, result.Parsed, result.Failed)
		}
		return nil
	})
}

// printPreview prints the entry count and the first n meditations with
// quote and context cut to chars characters.
func printPreview(w io.Writer, ms []meditation.Meditation, n, chars int) {
	fmt.Fprintf(w, "Extracted %d meditations\n", len(ms))

	for i, m := range ms {
		if i >= n {
			break
		}
		fmt.Fprintf(w, "\n=== Meditation %d ===\n", i+1)
		fmt.Fprintf(w, "Date: %s %d\n", m.Month, m.Day)
		fmt.Fprintf(w, "Title: %s\n", m.Title)
		fmt.Fprintf(w, "Quote: %s...\n", meditation.Truncate(m.Quote, chars))
		fmt.Fprintf(w, "Reference: %s\n", m.Reference)
		fmt.Fprintf(w, "Context: %s...\n", meditation.Truncate(m.Context, chars))
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a meditation by date key (e.g. march-03) or by --month and --day",
		ArgsUsage: "[date_key]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "month", Aliases: []string{"m"}, Usage: "Month name"},
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Usage: "Day of month"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				input := ops.FetchInput{
					Month: c.String("month"),
					Day:   c.Int("day"),
				}
				if c.NArg() > 0 {
					input.DateKey = c.Args().First()
				}

				output, err := ops.Fetch(c.Context, database, input)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// todayCmd creates the today command.
func todayCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show the meditation for today",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Use this date instead of today (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			var date time.Time
			if s := c.String("date"); s != "" {
				var err error
				date, err = time.ParseInLocation("2006-01-02", s, time.Local)
				if err != nil {
					return outputError(errors.NewInvalidRequest("date must be YYYY-MM-DD"))
				}
			}

			return withDB(c, cfg, func(database *sql.DB) error {
				output, err := ops.Today(c.Context, database, ops.TodayInput{Date: date})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// listCmd creates the list command.
func listCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored meditations in book order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "month", Aliases: []string{"m"}, Usage: "Filter by month"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				output, err := ops.List(c.Context, database, ops.ListInput{
					Month:  c.String("month"),
					Limit:  c.Int("limit"),
					Offset: c.Int("offset"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search titles, quotes, references and commentary",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "month", Aliases: []string{"m"}, Usage: "Only search this month"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultSearchLimit, Usage: "Maximum items to return"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				output, err := ops.Search(c.Context, database, ops.SearchInput{
					Query: c.Args().First(),
					Month: c.String("month"),
					Limit: c.Int("limit"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export stored meditations to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: exports/meditations-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				output, err := ops.Export(c.Context, database, ops.ExportInput{Path: c.String("path")})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// runsCmd creates the runs command.
func runsCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Show recent imports",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultRunsLimit, Usage: "Maximum runs to return"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				output, err := ops.Runs(c.Context, database, ops.RunsInput{Limit: c.Int("limit")})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			})
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve read-only meditation tools over MCP (stdio)",
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				return mcp.Run(database, cfg, Version)
			})
		},
	}
}

// webCmd creates the web command.
func webCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve a read-only web reader",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			return withDB(c, cfg, func(database *sql.DB) error {
				return web.Run(web.NewServer(database, Version, c.String("bind"), c.Int("port")))
			})
		},
	}
}

// Helper functions

// withDB opens the database named by --db, runs fn, and always closes it.
func withDB(c *cli.Context, cfg *config.Config, fn func(*sql.DB) error) error {
	database, err := db.Init(c.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to initialize database: %v", err), 1)
	}
	defer database.Close()

	db.ConfigurePool(database, cfg)
	return fn(database)
}

// outputJSON writes v to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.StoicError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
