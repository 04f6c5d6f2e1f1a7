package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sweet/internal/diag"
	"sweet/internal/source"
	"sweet/internal/trace"
)

// ListSources returns the sorted *.js files under dir.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".js") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// deterministic order
	sort.Strings(files)
	return files, nil
}

// Run processes units in parallel. Files are loaded up front so the FileSet
// is never written concurrently; each unit then owns its binding map and
// bag. Results keep the order of units.
func Run(ctx context.Context, units []Unit, opts Options) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSet()
	if len(units) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "run")
	defer span.End("")

	fileIDs := make([]source.FileID, len(units))
	loadErrors := make(map[int]error, len(units))
	for i, u := range units {
		id, err := fileSet.Load(u.Path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]*Result, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))

	for i, u := range units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = &Result{Path: u.Path, Bag: bag}
				if opts.Observer != nil {
					opts.Observer(PhaseEvent{Path: u.Path, Name: "unit", Status: UnitDone, Failed: true})
				}
				return nil
			}
			results[i] = RunUnit(gctx, fileSet, fileIDs[i], u, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
