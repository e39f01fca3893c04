package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/edgar"
	"github.com/fwojciec/edgar/batch"
	"github.com/fwojciec/edgar/csv"
)

// parseOutput is one entry of the parse command's JSON output.
type parseOutput struct {
	Path        string        `json:"path"`
	ContentHash string        `json:"contentHash,omitempty"`
	RecordID    string        `json:"recordId,omitempty"`
	Duplicate   bool          `json:"duplicate,omitempty"`
	Filing      *edgar.Filing `json:"filing,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	deps.Reader.Recursive = c.Recursive
	sources, err := deps.Reader.ReadAll(c.Paths...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", edgar.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintf(deps.Stderr, "No filings found. Accepted extensions: %v\n", edgar.AcceptedExtensions)
		return nil
	}

	p := &batch.Processor{
		Parser:      deps.Parser,
		Concurrency: c.Concurrency,
	}
	if c.Save {
		p.Store = deps.FormDs
		p.Seen = deps.Seen
	}

	results, err := p.Process(deps.Ctx, sources, func(e batch.ProgressEvent) {
		if e.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", e.Path, errorText(e.Error))
		}
	})
	if err != nil {
		return err
	}

	switch c.Format {
	case "csv":
		err = writeCSV(deps, results)
	default:
		err = writeJSON(deps, results)
	}
	if err != nil {
		return err
	}

	summary := batch.Summarize(results)
	if c.Save {
		fmt.Fprintf(deps.Stderr, "Parsed %d, saved %d, skipped %d duplicates, %d failed\n",
			summary.Parsed, summary.Saved, summary.Duplicates, summary.Failed)
	}
	if summary.Failed > 0 {
		return edgar.Errorf(edgar.EINVALID, "%d of %d filings failed", summary.Failed, len(results))
	}
	return nil
}

func writeJSON(deps *Dependencies, results []*batch.Result) error {
	out := make([]parseOutput, 0, len(results))
	for _, r := range results {
		o := parseOutput{
			Path:        r.Source.Path,
			ContentHash: r.Hash,
			RecordID:    r.RecordID,
			Duplicate:   r.Duplicate,
			Filing:      r.Filing,
		}
		if r.Err != nil {
			o.Error = errorText(r.Err)
		}
		out = append(out, o)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeCSV writes the parsed Form D filings. Ownership filings have no flat
// projection and are noted on stderr.
func writeCSV(deps *Dependencies, results []*batch.Result) error {
	var forms []*edgar.FormD
	for _, r := range results {
		if r.Filing == nil {
			continue
		}
		if r.Filing.FormD == nil {
			fmt.Fprintf(deps.Stderr, "skipping %s: form %s has no CSV columns\n", r.Source.Path, r.Filing.FormType)
			continue
		}
		forms = append(forms, r.Filing.FormD)
	}
	return csv.NewWriter(deps.Stdout).Write(forms...)
}

// errorText returns the application message for coded errors and the full
// chain for everything else.
func errorText(err error) string {
	if edgar.ErrorCode(err) == edgar.EINTERNAL {
		return err.Error()
	}
	return edgar.ErrorMessage(err)
}
