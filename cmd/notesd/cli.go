package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/VdBondarev/notes-management-app-backend/internal/config"
	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/notes"
	"github.com/VdBondarev/notes-management-app-backend/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(svc *notes.Service, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "notesd",
		Usage:   "Notes management backend",
		Version: Version,
		Commands: []*cli.Command{
			createCmd(svc),
			getCmd(svc),
			listCmd(svc),
			updateCmd(svc),
			deleteCmd(svc),
			searchCmd(svc),
			serveCmd(svc, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// createCmd creates the create command.
func createCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a note (content from --content or stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Note title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Note content"},
		},
		Action: func(c *cli.Context) error {
			content := c.String("content")
			if content == "" && stdinHasData() {
				piped, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				content = piped
			}

			output, err := svc.Create(notes.CreateInput{
				Title:   c.String("title"),
				Content: content,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a note by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("id argument is required"))
			}

			output, err := svc.Get(c.Args().First())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes, most recently updated first",
		Flags: pageFlags(),
		Action: func(c *cli.Context) error {
			output, err := svc.List(pageSpecFromFlags(c))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Partially update a note (omitted fields keep their value)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "New content"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("id argument is required"))
			}

			input := notes.UpdateInput{ID: c.Args().First()}
			if title := c.String("title"); title != "" {
				input.Title = &title
			}
			if content := c.String("content"); content != "" {
				input.Content = &content
			}

			output, err := svc.Update(input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a note (idempotent)",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("id argument is required"))
			}

			id := c.Args().First()
			if err := svc.Delete(id); err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{"deleted": true, "id": id})
		},
	}
}

// searchCmd creates the search command.
func searchCmd(svc *notes.Service) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search notes by substring match on title and/or content",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Title search term"},
			&cli.StringFlag{Name: "content", Aliases: []string{"c"}, Usage: "Content search term"},
		}, pageFlags()...),
		Action: func(c *cli.Context) error {
			output, err := svc.Search(notes.SearchInput{
				Title:   c.String("title"),
				Content: c.String("content"),
				Page:    pageSpecFromFlags(c),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(svc *notes.Service, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := cfg.Bind
			if v := c.String("bind"); v != "" {
				bind = v
			}
			port := cfg.Port
			if v := c.Int("port"); v != 0 {
				port = v
			}

			srv := web.NewServer(svc, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// Helper functions

// pageFlags returns the shared paging flags.
func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "Zero-based page number"},
		&cli.IntFlag{Name: "size", Usage: "Page size (default 20, max 100)"},
		&cli.StringFlag{Name: "sort", Usage: "Sort key (e.g. last_updated_at_desc, title_asc)"},
	}
}

// pageSpecFromFlags builds a PageSpec from the shared paging flags.
func pageSpecFromFlags(c *cli.Context) note.PageSpec {
	return note.PageSpec{
		Page: c.Int("page"),
		Size: c.Int("size"),
		Sort: c.String("sort"),
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ServiceError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
