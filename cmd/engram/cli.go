package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/engram"
	"github.com/fwojciec/engram/capture"
	"github.com/fwojciec/engram/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Sessions engram.SessionService
	Registry engram.PlatformRegistry
	Capturer *capture.Capturer
	Writer   engram.SessionWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches, platform detection and extraction to stderr"`

	Capture   CaptureCmd   `cmd:"" help:"Capture conversations from chat page URLs or a saved HTML file"`
	List      ListCmd      `cmd:"" help:"List captured sessions, most recent first"`
	Search    SearchCmd    `cmd:"" help:"Search titles and message text of captured sessions"`
	Show      ShowCmd      `cmd:"" help:"Show a captured session"`
	Export    ExportCmd    `cmd:"" help:"Export sessions as Markdown or JSON files"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a captured session"`
	Platforms PlatformsCmd `cmd:"" help:"List supported chat platforms"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URLs        []string      `arg:"" optional:"" name:"url" help:"Chat page URLs"`
	HTML        string        `name:"html" type:"existingfile" help:"Read the page from a saved HTML file instead of fetching"`
	Platform    string        `short:"p" help:"Force a platform instead of detecting it (see platforms)"`
	Browser     bool          `short:"b" xor:"fetcher" help:"Always render pages in headless Chrome"`
	HTTP        bool          `name:"http" xor:"fetcher" help:"Never start a browser; fetch over plain HTTP"`
	Timeout     time.Duration `default:"30s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent captures when several URLs are given"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Platform string `short:"p" help:"Only sessions from this platform"`
	Search   string `short:"s" help:"Only sessions whose title contains this text"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of sessions"`
	Offset   int    `help:"Number of sessions to skip"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    []string `arg:"" name:"query" help:"Words that must all appear in a title or message"`
	Platform string   `short:"p" help:"Only sessions from this platform"`
	Limit    int      `short:"n" default:"20" help:"Maximum number of sessions"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Session ID"`
	JSON bool   `help:"Print the normalized session record as JSON"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	IDs      []string `arg:"" optional:"" name:"id" help:"Session IDs (default: all sessions)"`
	Dir      string   `short:"o" default:"." type:"path" help:"Output directory"`
	Format   string   `short:"f" default:"markdown" enum:"markdown,md,json" help:"Export format (markdown, json)"`
	Platform string   `short:"p" help:"Only sessions from this platform"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Session ID"`
	Force bool   `help:"Confirm deletion"`
}

// PlatformsCmd is the "platforms" subcommand.
type PlatformsCmd struct{}
