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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/vitalis"
	"github.com/poiesic/vitalis/ai"
	"github.com/poiesic/vitalis/core"
	"github.com/poiesic/vitalis/ingestion"
)

func main() {
	app := &cli.App{
		Name:  "vitalis",
		Usage: "Personal health data ingestion and conversational insights",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   defaultDBPath(),
				EnvVars: []string{"VITALIS_DB"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest a health export archive, replacing the current dataset",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Path to an export zip or document (overrides --scan)",
					},
					&cli.StringSliceFlag{
						Name:  "scan",
						Usage: "Directories to scan for the newest export when --input is not given",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries staged per write batch",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent batch-flush workers",
						Value: 4,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question about your health data",
				Action:    askCommand,
				ArgsUsage: "\"question\"",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Usage:   "Language model backend (openai, ollama)",
						Value:   "ollama",
						EnvVars: []string{"LLM_BACKEND"},
					},
					&cli.StringFlag{
						Name:    "model",
						Usage:   "Model identifier",
						Value:   "llama3.2:3b",
						EnvVars: []string{"LLM_MODEL"},
					},
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Provider API base URL",
						Value:   "http://localhost:11434",
						EnvVars: []string{"LLM_HOST"},
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Provider API credential",
						EnvVars: []string{"LLM_API_KEY"},
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-completion timeout",
						Value: 30 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Print routing details with the answer",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "Show recent ingestion runs",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vitalis"
	}
	return home + "/.vitalis/db"
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := vitalis.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithPoolSize(c.Int("workers")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Close()

	input := c.String("input")
	scanDirs := c.StringSlice("scan")
	if input == "" && len(scanDirs) == 0 {
		return fmt.Errorf("either --input or --scan is required")
	}

	var run *core.IngestionRun
	if input != "" {
		run, err = pipeline.Ingest(ctx, input)
	} else {
		run, err = pipeline.IngestLatest(ctx, scanDirs...)
	}
	if err != nil {
		printRun(run)
		return fmt.Errorf("ingestion failed: %w", err)
	}

	printRun(run)
	return nil
}

func printRun(run *core.IngestionRun) {
	if run == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "run %s: %s\n", run.Id, run.Outcome.String())
	fmt.Fprintf(os.Stderr, "  source: %s\n", run.SourcePath)
	fmt.Fprintf(os.Stderr, "  records=%d workouts=%d skipped=%d\n",
		run.RecordCount, run.WorkoutCount, run.SkippedEntries)
	fmt.Fprintf(os.Stderr, "  elapsed: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	if run.Error != "" {
		fmt.Fprintf(os.Stderr, "  error: %s\n", run.Error)
	}
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required, e.g. vitalis ask \"how did I sleep?\"")
	}

	aiConfig := ai.NewConfig(
		ai.WithBackend(ai.Backend(c.String("backend"))),
		ai.WithModel(c.String("model")),
		ai.WithHost(c.String("host")),
		ai.WithToken(c.String("api-key")),
		ai.WithTimeout(c.Duration("timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid provider configuration: %w", err)
	}

	db, err := vitalis.NewDatabase(c.String("db"), vitalis.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	router, err := db.NewRouter()
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	result, err := router.RouteQuery(ctx, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if c.Bool("verbose") {
		fmt.Fprintf(os.Stderr, "intent: %s (confidence %.2f)\n", result.Intent, result.Confidence)
		fmt.Fprintf(os.Stderr, "agent: %s\n", result.AgentName)
		fmt.Fprintf(os.Stderr, "latency: %s\n", result.ProviderLatency)
		if result.Degraded {
			fmt.Fprintln(os.Stderr, "degraded: provider unavailable")
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Println(result.Response)
	return nil
}

func runsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := vitalis.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs, err := db.RunRepository().ListRuns(ctx, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no ingestion runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-7s  records=%d workouts=%d skipped=%d  %s\n",
			run.StartedAt.Format(time.RFC3339),
			run.Outcome.String(),
			run.RecordCount,
			run.WorkoutCount,
			run.SkippedEntries,
			run.SourcePath)
		if run.Error != "" {
			fmt.Printf("    error: %s\n", run.Error)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
