package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/edgar"
	"github.com/fwojciec/edgar/bloom"
	"github.com/fwojciec/edgar/etree"
	"github.com/fwojciec/edgar/filing"
	"github.com/fwojciec/edgar/fs"
	"github.com/fwojciec/edgar/goquery"
	edgarslog "github.com/fwojciec/edgar/slog"
	"github.com/fwojciec/edgar/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); EDGAR_DB or --db override it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	FormDService edgar.FormDService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Bloom filter sizing for the content hashes seen by parse --save.
const (
	seenExpectedHashes    = 100000
	seenFalsePositiveRate = 0.01
)

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("edgar"),
		kong.Description("Extract structured fields from SEC EDGAR filings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'edgar --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	builder := filing.NewBuilder(goquery.NewIsolator(), etree.NewReader())
	deps.Parser = edgarslog.NewLoggingParser(filing.NewParser(builder), deps.Logger)
	deps.Reader = fs.NewReader()

	isParse := strings.HasPrefix(kongCtx.Command(), "parse")
	if !isParse || cli.Parse.Save {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set EDGAR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.FormDService = edgarslog.NewLoggingFormDService(sqlite.NewFormDService(m.DB), deps.Logger)
		deps.FormDs = m.FormDService
	}

	if isParse && cli.Parse.Save {
		seen, err := loadSeen(ctx, m.FormDService)
		if err != nil {
			return fmt.Errorf("failed to load stored content hashes: %w", err)
		}
		deps.Seen = seen
	}

	return kongCtx.Run(deps)
}

// loadSeen builds a filter holding the content hash of every stored Form D.
func loadSeen(ctx context.Context, svc edgar.FormDService) (*bloom.Filter, error) {
	recs, err := svc.FindFormDs(ctx, edgar.FormDFilter{})
	if err != nil {
		return nil, err
	}
	seen := bloom.NewFilter(seenExpectedHashes, seenFalsePositiveRate)
	for _, rec := range recs {
		seen.Add(rec.ContentHash)
	}
	return seen, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "edgar.db"
	}
	dir := filepath.Join(home, ".edgar")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "edgar.db")
}
