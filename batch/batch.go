// Package batch parses many glTF assets concurrently over a reusable worker
// pool, for callers that need to ingest a directory of assets rather than
// one file at a time.
package batch

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/gltfkit"
	"github.com/Carmen-Shannon/gltfkit/internal/diag"
)

// defaultQueueSize and defaultTaskTimeout size the pool the same way the
// teacher's compute pool does (engine/scene/scene.go), scaled down from a
// per-frame budget to a per-batch one since parse jobs run far less often
// than render frames.
const (
	defaultQueueSize  = 64
	defaultTaskTimeout = 30 * time.Second
)

// Result is one path's outcome: either a parsed Document or the error that
// prevented one, plus any non-fatal diagnostics collected along the way.
type Result struct {
	Path        string
	Document    *gltf.Document
	Err         error
	Diagnostics *diag.Collector
}

// options configures ParseAll. Kept unexported and built through functional
// options, the same convention gltf.ParseOption follows.
type options struct {
	workers  int
	parseOpts []gltf.ParseOption
}

// Option configures a ParseAll call.
type Option func(*options)

// WithWorkers overrides the pool size. The default is runtime.NumCPU()-1,
// clamped to at least 1, mirroring the teacher's computeWorkers default
// (engine/scene/scene_builder.go).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithParseOptions applies the given gltf.ParseOption values to every file
// parsed by this batch. A fresh *diag.Collector is still attached per file
// regardless of whether WithDiagnostics is among them — see ParseAll.
func WithParseOptions(opts ...gltf.ParseOption) Option {
	return func(o *options) { o.parseOpts = append(o.parseOpts, opts...) }
}

// ParseAll parses every path concurrently and returns one Result per input
// path, in the same order paths were given. A pool worker is reused across
// files rather than spawned per file, following the compute-pool pattern in
// engine/scene/scene.go: tasks are submitted with a per-batch WaitGroup for
// barrier sync, since pool.Wait() idle-exits workers which does not fit a
// one-shot batch.
func ParseAll(paths []string, opts ...Option) []Result {
	o := options{workers: max(runtime.NumCPU()-1, 1)}
	for _, opt := range opts {
		opt(&o)
	}

	pool := worker.NewDynamicWorkerPool(o.workers, defaultQueueSize, defaultTaskTimeout)

	results := make([]Result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				collector := &diag.Collector{}
				fileOpts := append(append([]gltf.ParseOption{}, o.parseOpts...), gltf.WithDiagnostics(collector))
				doc, err := gltf.Parse(p, fileOpts...)
				results[idx] = Result{Path: p, Document: doc, Err: err, Diagnostics: collector}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return results
}
