package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

// DefaultWorkers bounds parallelism when Runner.Workers is unset.
const DefaultWorkers = 4

// Sink persists a normalized dataset and returns any fixes it applied.
type Sink interface {
	Write(name string, ds *table.Dataset) ([]string, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(name string, ds *table.Dataset) ([]string, error)

// Write calls f.
func (f SinkFunc) Write(name string, ds *table.Dataset) ([]string, error) { return f(name, ds) }

// Runner applies a Pipeline to many files in parallel. One file failing
// never affects the others.
type Runner struct {
	Pipeline *Pipeline
	Workers  int
	Sink     Sink
	Logger   *slog.Logger
}

// Run processes inputs and returns one result per distinct name. Inputs
// not yet started when ctx is done are recorded as failures.
func (r *Runner) Run(ctx context.Context, inputs []Input) *Results {
	runID := uuid.NewString()
	log := r.logger().With("run_id", runID)
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	log.Info("batch started", "files", len(inputs), "workers", workers)

	out := make([]FileResult, len(inputs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = failed(in.Name, err)
				return nil
			}
			out[i] = r.processOne(in, log)
			return nil
		})
	}
	_ = g.Wait()

	res := newResults(runID, out)
	ok, bad := res.Counts()
	log.Info("batch finished", "succeeded", ok, "failed", bad)
	return res
}

func (r *Runner) processOne(in Input, log *slog.Logger) FileResult {
	log = log.With("file", in.Name)
	log.Debug("processing")
	res := r.pipeline().Process(in)
	if res.OK() && r.Sink != nil {
		fixes, err := r.Sink.Write(res.Name, res.Dataset)
		if err != nil {
			res = failed(in.Name, fmt.Errorf("write output: %w", err))
		} else {
			res.Fixes = append(res.Fixes, fixes...)
		}
	}
	if res.OK() {
		log.Info("file normalized", "rows", res.Rows, "columns", res.Columns, "status", res.Status)
	} else {
		log.Warn("file failed", "status", res.Status, "error", res.Err)
	}
	return res
}

func (r *Runner) pipeline() *Pipeline {
	if r.Pipeline != nil {
		return r.Pipeline
	}
	return &Pipeline{Logger: r.Logger}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
