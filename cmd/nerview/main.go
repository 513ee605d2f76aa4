package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/cache"
	"github.com/fwojciec/nerview/extract"
	"github.com/fwojciec/nerview/fs"
	"github.com/fwojciec/nerview/goquery"
	"github.com/fwojciec/nerview/htmltomarkdown"
	"github.com/fwojciec/nerview/prometheus"
	nvslog "github.com/fwojciec/nerview/slog"
	"github.com/fwojciec/nerview/wikidata"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// A missing file is not an error.
	EnvFile string

	// Resolver replaces the Wikidata lookup chain when set. Used for
	// end-to-end testing.
	Resolver nerview.Resolver
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		// Existing environment variables take precedence over the file.
		_ = godotenv.Load(m.EnvFile)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nerview"),
		kong.Description("Inspect Serbian NER output and map its geographic entities"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nerview --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.wire(cli, deps)

	return kongCtx.Run(deps)
}

// wire builds the services shared by all commands.
func (m *Main) wire(cli *CLI, deps *Dependencies) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))
	deps.Metrics = prometheus.NewMetrics()

	var resolver nerview.Resolver = m.Resolver
	if resolver == nil {
		resolver = wikidata.NewResolver(
			wikidata.WithBaseURL(cli.WikidataURL),
			wikidata.WithTimeout(cli.Timeout),
			wikidata.WithRateLimit(cli.Rate),
		)
	}
	resolver = nvslog.NewLoggingResolver(resolver, deps.Logger)
	resolver = prometheus.NewResolver(resolver, deps.Metrics)
	var opts []cache.Option
	if cli.CacheFailures {
		opts = append(opts, cache.WithCacheFailures())
	}
	deps.Resolver = cache.NewResolver(resolver, cache.NewTTLCache(cli.CacheTTL), opts...)

	deps.Documents = fs.NewSource(cli.Roots...)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractor = &extract.Extractor{
		Parser:   nvslog.NewLoggingParser(goquery.NewParser(), deps.Logger),
		Resolver: deps.Resolver,
		Memo:     cache.NewMemo[*extract.Result](cli.CacheTTL),
	}
}
