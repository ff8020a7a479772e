package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/homeqa"
	"github.com/poiesic/homeqa/config"
	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/corpus"
	"github.com/poiesic/homeqa/ingestion"
	"github.com/poiesic/homeqa/mcp"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the config file named by --config, or the default
// locations, then applies the environment and flag overrides.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if dir := c.String("data-dir"); dir != "" {
		cfg.Storage.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openEngine(c *cli.Context) (*homeqa.Engine, *config.AppConfig, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	engine, err := homeqa.NewEngine(
		homeqa.WithAIConfig(cfg.AIConfig()),
		homeqa.WithSearchParams(cfg.Search),
		homeqa.WithDataDir(cfg.Storage.DataDir),
		homeqa.WithChatOptions(cfg.ChatOptions()...),
	)
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

func printSources(c *cli.Context, sources []string) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(c.App.Writer, "\nSources:")
	for _, s := range sources {
		fmt.Fprintf(c.App.Writer, "  - %s\n", s)
	}
}

func askCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return errors.New("a question is required")
	}

	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result := engine.AnswerQuestion(question)
	fmt.Fprintln(c.App.Writer, result.Answer)
	printSources(c, result.Sources)
	return nil
}

func contextCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("a query is required")
	}

	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	entries := engine.RetrieveContext(query, c.Int("max-docs"))
	if len(entries) == 0 {
		fmt.Fprintln(c.App.Writer, "No matching passages.")
		return nil
	}
	for i, e := range entries {
		header := e.Title
		if e.URL != "" {
			header = fmt.Sprintf("%s (%s)", e.Title, e.URL)
		}
		fmt.Fprintf(c.App.Writer, "%d. %s\n%s\n\n", i+1, header, e.Snippet)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	session, err := engine.NewSession()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(c)
	defer cancel()

	if msg := c.String("message"); msg != "" {
		resp := session.Send(ctx, msg)
		fmt.Fprintln(c.App.Writer, resp.Message)
		printSources(c, resp.Sources)
		return nil
	}

	if !engine.RemoteConfigured() {
		fmt.Fprintln(c.App.Writer, "No remote model configured; answering from the local knowledge base.")
	}
	fmt.Fprintln(c.App.Writer, "Type a question, or \"exit\" to quit.")

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(c.App.Writer, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.App.Writer)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/new":
			session.Reset()
			fmt.Fprintln(c.App.Writer, "Started a new conversation.")
			continue
		}

		resp := session.Send(ctx, line)
		fmt.Fprintln(c.App.Writer, resp.Message)
		printSources(c, resp.Sources)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func injectCommand(c *cli.Context) error {
	engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	doc := core.Document{
		Title:   c.String("title"),
		Content: c.String("content"),
		URL:     c.String("url"),
	}
	if err := engine.InjectDocument(c.Context, doc); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Injected %q (%d documents)\n", doc.Title, engine.Registry().Len())
	if cfg.Storage.DataDir == "" {
		fmt.Fprintln(c.App.Writer, "No data directory configured; the document is not persisted.")
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one file or directory is required")
	}

	engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []ingestion.Option
	workers := c.Int("workers")
	if workers == 0 {
		workers = cfg.Ingestion.PoolSize
	}
	if workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(workers))
	}
	if c.Bool("progress") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}

	pipeline, err := engine.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	var total ingestion.Result
	var errs []error
	for _, target := range c.Args().Slice() {
		info, err := os.Stat(target)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		var result ingestion.Result
		if info.IsDir() {
			result, err = pipeline.IngestDir(c.Context, target)
		} else {
			result, err = pipeline.IngestFiles(c.Context, target)
		}
		total.Ingested += result.Ingested
		total.Skipped += result.Skipped
		total.Failed += result.Failed
		if err != nil {
			errs = append(errs, err)
		}
	}

	fmt.Fprintf(c.App.Writer, "Ingested %d, skipped %d, failed %d\n", total.Ingested, total.Skipped, total.Failed)
	return errors.Join(errs...)
}

func watchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exactly one directory is required")
	}
	dir := c.Args().First()

	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx, cancel := signalContext(c)
	defer cancel()

	if _, err := pipeline.IngestDir(ctx, dir); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "initial ingestion: %v\n", err)
	}

	watcher, err := ingestion.NewWatcher(pipeline,
		ingestion.WithQuietPeriod(c.Duration("quiet")),
		ingestion.OnIngest(func(path string, result ingestion.Result) {
			if result.Ingested > 0 {
				fmt.Fprintf(c.App.Writer, "Ingested %s\n", path)
			}
		}),
	)
	if err != nil {
		return err
	}
	return watcher.Run(ctx, dir)
}

func seedSampleCommand(c *cli.Context) error {
	engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	sample := corpus.SamplePage()
	if engine.Registry().Contains(sample.Fingerprint()) {
		fmt.Fprintln(c.App.Writer, "Sample page already present")
		return nil
	}
	n, err := ingestion.InjectAllowlisted(c.Context, engine.Registry(), []core.Document{sample})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Injected %d sample page(s)\n", n)
	return nil
}

func allowlistCommand(c *cli.Context) error {
	for _, page := range corpus.AllowlistedPages() {
		topic := "off-topic"
		if corpus.HomeBuyingTopic(page.Title) {
			topic = "home buying"
		}
		fmt.Fprintf(c.App.Writer, "%-40s %-12s %s\n", page.Title, topic, page.URL())
	}
	return nil
}

func mcpCommand(c *cli.Context) error {
	engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	server, err := mcp.NewServer(&mcp.Ports{Engine: engine})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(c)
	defer cancel()

	if !c.Bool("http") {
		return server.Run(ctx)
	}
	addr := c.String("addr")
	if addr == "" {
		addr = cfg.MCP.Addr
	}
	return server.RunHTTP(ctx, addr)
}

func configInitCommand(c *cli.Context) error {
	path := c.String("path")
	if path == "" {
		var err error
		if path, err = config.DefaultUserPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}
