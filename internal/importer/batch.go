package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// BatchSize is the number of records sent per upsert call.
const BatchSize = 100

// Sink is the storage capability the pipeline needs: replace-all and
// upsert-by-visit-ID. The importer neither knows nor cares what backs it.
type Sink interface {
	DeleteAll(ctx context.Context) error
	BulkUpsert(ctx context.Context, patients []Patient) error
}

// Result aggregates an import run. Success is true only when every batch
// landed.
type Result struct {
	Imported   int      `json:"imported"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Duplicates int      `json:"duplicates"`
	Errors     []string `json:"errors,omitempty"`
	Success    bool     `json:"success"`
}

// Pipeline runs full spreadsheet imports against a Sink.
type Pipeline struct {
	sink   Sink
	logger zerolog.Logger
}

func NewPipeline(sink Sink, logger zerolog.Logger) *Pipeline {
	return &Pipeline{sink: sink, logger: logger}
}

// Run parses the uploaded file, normalizes its rows, wipes the existing
// patient set and upserts the result in bounded batches. Batches are
// independent: one failing batch is recorded and the rest still run.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, filename string) (Result, error) {
	_, rows, err := ReadSheet(r, filename)
	if err != nil {
		return Result{}, err
	}

	mapped, err := MapRows(rows)
	if err != nil {
		return Result{}, err
	}

	if err := p.sink.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("clear existing patients: %w", err)
	}

	res := p.Upsert(ctx, mapped.Patients)
	res.Skipped = mapped.Skipped
	res.Duplicates = mapped.Duplicates

	p.logger.Info().
		Str("file", filename).
		Int("imported", res.Imported).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Int("duplicates", res.Duplicates).
		Bool("success", res.Success).
		Msg("patient import finished")
	return res, nil
}

// Upsert sends patients to the sink in BatchSize chunks, sequentially,
// best-effort.
func (p *Pipeline) Upsert(ctx context.Context, patients []Patient) Result {
	var res Result
	for start := 0; start < len(patients); start += BatchSize {
		end := start + BatchSize
		if end > len(patients) {
			end = len(patients)
		}
		batch := patients[start:end]

		if err := p.sink.BulkUpsert(ctx, batch); err != nil {
			res.Failed += len(batch)
			res.Errors = append(res.Errors, fmt.Sprintf("batch %d: %v", start/BatchSize+1, err))
			p.logger.Error().Err(err).
				Int("batch", start/BatchSize+1).
				Int("size", len(batch)).
				Msg("patient batch upsert failed")
			continue
		}
		res.Imported += len(batch)
	}
	res.Success = res.Failed == 0
	return res
}
