package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

// FileExtensions are the file types picked up by CollectFiles.
var FileExtensions = []string{".meta", ".xml"}

// FileResult is the outcome for one file of a batch. Err holds per-file
// failures such as malformed documents; they do not stop the batch.
type FileResult struct {
	Report *Report `json:"report,omitempty"`
	Err    error   `json:"-"`
	Path   string  `json:"path"`
}

// CollectFiles walks dir for handling files, sorted by path.
func CollectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range FileExtensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeFiles analyzes paths concurrently, at most Config.Workers at a
// time. Results keep the order of paths. progress, if set, is called once per
// finished file and never concurrently. Only cancellation aborts the batch.
func (e *Engine) AnalyzeFiles(ctx context.Context, paths []string, opts Options, progress func(FileResult)) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	var progressMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(e.workers, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result := FileResult{Path: path}
			data, err := os.ReadFile(path) //nolint:gosec // paths come from the user
			if err != nil {
				result.Err = fmt.Errorf("failed to read %s: %w", path, err)
			} else {
				result.Report, result.Err = e.Analyze(gctx, path, string(data), opts)
			}
			if result.Err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				common.LogDebug("file analysis failed", common.Fields{"path": path, "error": result.Err.Error()})
			}
			results[i] = result

			if progress != nil {
				progressMu.Lock()
				progress(result)
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	common.LogInfo("batch analysis complete", common.Fields{
		"files":   len(paths),
		"failed":  failed,
		"workers": e.workers,
	})
	return results, nil
}
