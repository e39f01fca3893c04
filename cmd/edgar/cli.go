package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/edgar"
	"github.com/fwojciec/edgar/bloom"
	"github.com/fwojciec/edgar/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Parser edgar.Parser
	Reader *fs.Reader
	FormDs edgar.FormDService
	Seen   *bloom.Filter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"EDGAR_DB" help:"SQLite database path (default ~/.edgar/edgar.db)"`
	Verbose bool   `short:"v" help:"Log every parsed document"`

	Parse  ParseCmd  `cmd:"" help:"Parse filing documents"`
	List   ListCmd   `cmd:"" help:"List stored Form D filings"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored Form D filing"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Paths       []string `arg:"" name:"path" help:"Filing files or directories"`
	Format      string   `short:"o" enum:"json,csv" default:"json" help:"Output format (json, csv)"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent parse limit"`
	Recursive   bool     `short:"r" help:"Descend into subdirectories"`
	Save        bool     `help:"Store parsed Form D filings in the database"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	CIK   string `name:"cik" help:"Only show filings for this central index key"`
	Limit int    `short:"n" default:"50" help:"Maximum number of filings to show"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Stored filing ID"`
}
