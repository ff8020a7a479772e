// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/homeqa/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "homeqa",
		Usage: "Answer home buying questions from a local knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or TOML config file",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory persisting injected documents (overrides config)",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a question from the knowledge base without a remote model",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:      "context",
				Usage:     "Show the passages retrieved for a query",
				ArgsUsage: "<query>",
				Action:    contextCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-docs",
						Usage: "Maximum number of documents",
						Value: 3,
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Chat with the assistant, using the remote model when configured",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "message",
						Aliases: []string{"m"},
						Usage:   "Send a single message and exit",
					},
				},
			},
			{
				Name:   "inject",
				Usage:  "Add a document to the knowledge base",
				Action: injectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Document title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "content",
						Usage:    "Document body",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Public address of the document",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Add markdown, text and PDF files to the knowledge base",
				ArgsUsage: "<file or directory>...",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files loaded concurrently (default from config)",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
					},
				},
			},
			{
				Name:      "watch",
				Usage:     "Ingest files as they are added to a directory",
				ArgsUsage: "<directory>",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "quiet",
						Usage: "how long a file must stay unchanged before it is ingested",
						Value: ingestion.DefaultQuietPeriod,
					},
				},
				Action: watchCommand,
			},
			{
				Name:   "seed-sample",
				Usage:  "Inject the sample allowlisted page",
				Action: seedSampleCommand,
			},
			{
				Name:   "allowlist",
				Usage:  "List the pages approved for injection",
				Action: allowlistCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the knowledge base as MCP tools",
				Action: mcpCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "http",
						Usage: "Serve streamable HTTP instead of stdio",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address (default from config)",
					},
				},
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Write the default configuration",
						Action: configInitCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "path",
								Usage: "Destination (default ~/.config/homeqa/config.yaml)",
							},
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing file",
							},
						},
					},
				},
			},
		},
	}
}

func before(c *cli.Context) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
