package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/extract"
	"github.com/fwojciec/nerview/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Documents nerview.DocumentSource
	Resolver  nerview.Resolver
	Extractor *extract.Extractor
	Converter nerview.Converter
	Metrics   *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Roots         []string      `env:"NERVIEW_ROOTS" default:"examples,sample_data" help:"Directories searched for annotated documents"`
	WikidataURL   string        `name:"wikidata-url" env:"NERVIEW_WIKIDATA_URL" default:"https://www.wikidata.org" help:"Wikidata base URL"`
	Timeout       time.Duration `env:"NERVIEW_TIMEOUT" default:"10s" help:"Per-lookup timeout"`
	CacheTTL      time.Duration `name:"cache-ttl" env:"NERVIEW_CACHE_TTL" default:"1h" help:"How long lookups are cached"`
	Rate          float64       `env:"NERVIEW_RATE" default:"5" help:"Maximum lookups per second, 0 for no limit"`
	CacheFailures bool          `name:"cache-failures" env:"NERVIEW_CACHE_FAILURES" help:"Cache failed lookups as not found for the cache TTL"`
	Verbose       bool          `short:"v" help:"Log lookups and parsing at debug level"`

	List  ListCmd  `cmd:"" help:"List discovered NER documents"`
	Show  ShowCmd  `cmd:"" help:"Show statistics and geographic entities of a document"`
	Map   MapCmd   `cmd:"" help:"Write the entity map of a document"`
	Ping  PingCmd  `cmd:"" help:"Check connectivity to Wikidata"`
	Serve ServeCmd `cmd:"" help:"Run the web viewer"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	File      string `arg:"" help:"Document path as listed by 'nerview list'"`
	Preview   bool   `short:"p" help:"Print the document as markdown"`
	NoResolve bool   `name:"no-resolve" help:"Only count entity types, skip Wikidata lookups"`
}

// MapCmd is the "map" subcommand.
type MapCmd struct {
	File   string `arg:"" help:"Document path as listed by 'nerview list'"`
	Output string `short:"o" required:"" help:"Output file"`
	Format string `short:"f" default:"html" enum:"html,geojson,kml" help:"Output format (html, geojson, kml)"`
}

// PingCmd is the "ping" subcommand.
type PingCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string   `env:"NERVIEW_ADDR" default:"localhost:8501" help:"Listen address"`
	CorsOrigins []string `name:"cors-origin" env:"NERVIEW_CORS_ORIGINS" help:"Origins allowed to call the JSON API (repeatable)"`
}
