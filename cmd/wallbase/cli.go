package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wallbase"
	"github.com/fwojciec/wallbase/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Bans      wallbase.BanService
	Downloads wallbase.DownloadService
	Fetcher   wallbase.Fetcher
	Extractor wallbase.PageExtractor
	Logger    *slog.Logger
	BaseURL   string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Enable debug logging"`
	BaseURL string        `name:"base-url" env:"WALLBASE_BASE_URL" default:"http://wallbase.cc" help:"Site root"`
	Timeout time.Duration `default:"10s" help:"HTTP request timeout"`

	Fetch    FetchCmd    `cmd:"" help:"Download images for one or more locations"`
	Validate ValidateCmd `cmd:"" help:"Check that a location yields search results"`
	Ban      BanCmd      `cmd:"" help:"Exclude a listing URL from downloads"`
	Unban    UnbanCmd    `cmd:"" help:"Remove a listing URL from the ban list"`
	Bans     BansCmd     `cmd:"" help:"List banned listing URLs"`
	History  HistoryCmd  `cmd:"" help:"List downloaded images"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Locations        []string      `arg:"" name:"location" help:"Location string, e.g. 'type:text;query:forest'"`
	Count            int           `short:"n" default:"1" help:"Images to download per location"`
	Dir              string        `short:"d" default:"." help:"Directory to save images in"`
	MinWidth         int           `name:"min-width" help:"Minimum image width"`
	MinHeight        int           `name:"min-height" help:"Minimum image height"`
	DownloadInterval time.Duration `name:"download-interval" default:"0s" help:"Minimum time between downloads across all locations"`
	FillInterval     time.Duration `name:"fill-interval" default:"0s" help:"Minimum time between searches of one location"`
	Poll             time.Duration `default:"1s" help:"Wait between deferred attempts"`
	MaxErrors        int           `name:"max-errors" default:"5" help:"Give up on a location after this many failed attempts"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Location string `arg:"" help:"Location string"`
}

// BanCmd is the "ban" subcommand.
type BanCmd struct {
	URL string `arg:"" help:"Listing URL"`
}

// UnbanCmd is the "unban" subcommand.
type UnbanCmd struct {
	URL string `arg:"" help:"Listing URL"`
}

// BansCmd is the "bans" subcommand.
type BansCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit    int    `short:"l" default:"20" help:"Maximum entries to show (0 for all)"`
	Location string `help:"Only show downloads for this location"`
}
