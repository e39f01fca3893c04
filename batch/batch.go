// Package batch parses many filing documents concurrently and optionally
// stores the resulting Form D records.
package batch

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/edgar"
	"github.com/fwojciec/edgar/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Processor.Concurrency is not positive.
const DefaultConcurrency = 8

// Processor parses sources with bounded concurrency.
type Processor struct {
	Parser edgar.Parser

	// Store, if set, receives every parsed Form D.
	Store edgar.FormDService

	// Seen, if set, short-circuits the duplicate lookup for content hashes
	// that were never added. Only consulted when Store is set.
	Seen *bloom.Filter

	Concurrency int
}

// Result holds the outcome of processing a single source.
type Result struct {
	Source *edgar.Source
	Filing *edgar.Filing
	Hash   string

	// RecordID is the stored record's ID, set when the Form D was saved or
	// was already present.
	RecordID  string
	Duplicate bool

	Err error
}

// Summary counts outcomes across a batch.
type Summary struct {
	Parsed     int
	Failed     int
	Saved      int
	Duplicates int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Process parses every source and returns one Result per source, in input
// order. Failures of individual documents are recorded on their Result and
// do not stop the batch. The returned error is non-nil only when ctx is
// canceled.
func (p *Processor) Process(ctx context.Context, sources []*edgar.Source, progress ProgressFunc) ([]*Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	results := make([]*Result, total)
	var completed atomic.Int64

	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	emit(ProgressEvent{Type: ProgressStarted, Total: total})

	type parsed struct {
		position int
		result   *Result
	}
	resultCh := make(chan parsed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, src := range sources {
			g.Go(func() error {
				resultCh <- parsed{position: i, result: p.parse(gctx, src)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		results[r.position] = r.result
		n := int(completed.Add(1))
		if r.result.Err != nil {
			emit(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Path: r.result.Source.Path, Error: r.result.Err})
		} else {
			emit(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Path: r.result.Source.Path})
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	if p.Store != nil {
		for _, r := range results {
			if r.Err != nil || r.Filing == nil || r.Filing.FormD == nil {
				continue
			}
			if err := p.save(ctx, r); err != nil {
				r.Err = fmt.Errorf("saving %s: %w", r.Source.Path, err)
			}
		}
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return results, nil
}

func (p *Processor) parse(ctx context.Context, src *edgar.Source) *Result {
	result := &Result{Source: src}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	filing, err := p.Parser.ParseFile(src.Path, strings.NewReader(src.Text))
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", src.Path, err)
		return result
	}
	result.Filing = filing
	result.Hash = ComputeHash(src.Text)
	return result
}

// save stores r's Form D unless a record with the same content hash exists.
func (p *Processor) save(ctx context.Context, r *Result) error {
	maybeSeen := true
	if p.Seen != nil {
		maybeSeen = p.Seen.TestAndAdd(r.Hash)
	}

	if maybeSeen {
		existing, err := p.Store.FindFormDs(ctx, edgar.FormDFilter{ContentHash: &r.Hash, Limit: 1})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			r.RecordID = existing[0].ID
			r.Duplicate = true
			return nil
		}
	}

	rec := &edgar.FormDRecord{
		SourcePath:  r.Source.Path,
		ContentHash: r.Hash,
		FormD:       r.Filing.FormD,
	}
	if err := p.Store.CreateFormD(ctx, rec); err != nil {
		if edgar.ErrorCode(err) == edgar.ECONFLICT {
			r.Duplicate = true
			return nil
		}
		return err
	}
	r.RecordID = rec.ID
	return nil
}

// Summarize counts the outcomes in results.
func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r == nil:
		case r.Err != nil:
			s.Failed++
		case r.Duplicate:
			s.Parsed++
			s.Duplicates++
		case r.RecordID != "":
			s.Parsed++
			s.Saved++
		default:
			s.Parsed++
		}
	}
	return s
}

// ComputeHash returns the hex xxhash of content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
