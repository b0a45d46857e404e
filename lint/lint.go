package lint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sigopt/sigopt-tools/internal"
	tt "github.com/sigopt/sigopt-tools/internal/types"
)

type LintEngine interface {
	Run(ctx context.Context, filePath string) ([]tt.Issue, error)
}

// New creates an engine running the default rules plus include, minus
// ignore.
func New(include, ignore []string) (*internal.Engine, error) {
	return internal.NewEngine(include, ignore)
}

type options struct {
	progress io.Writer
}

// Option configures ProcessFiles and ProcessPath.
type Option func(*options)

// WithProgress draws a progress bar on w while files are linted.
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// Processor lints one file for ProcessFiles and ProcessPath.
type Processor func(context.Context, LintEngine, string) ([]tt.Issue, error)

// ProcessFiles lints every file named by paths, expanding directories.
// Issues come back in input order: by path, then by file within a
// directory, then by position within a file.
//
// The first failure in input order, a file that cannot be linted or a path
// that cannot be read, is returned together with the issues of every file
// before it.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor Processor,
	opts ...Option,
) ([]tt.Issue, error) {
	var files []string
	var pathErr error
	for _, path := range paths {
		found, err := CollectFiles(path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			pathErr = err
			break
		}
		files = append(files, found...)
	}

	issues, err := processFiles(ctx, logger, engine, files, processor, opts)
	if err != nil {
		return issues, err
	}
	return issues, pathErr
}

// ProcessPath lints a single file, or every Python file below a directory.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor Processor,
	opts ...Option,
) ([]tt.Issue, error) {
	files, err := CollectFiles(path)
	if err != nil {
		return nil, err
	}
	return processFiles(ctx, logger, engine, files, processor, opts)
}

func processFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	files []string,
	processor Processor,
	opts []Option,
) ([]tt.Issue, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var bar *progressbar.ProgressBar
	if o.progress != nil && len(files) > 0 {
		bar = newProgressBar(o.progress, len(files))
	}

	// one slot per file keeps the output order independent of scheduling
	results := make([][]tt.Issue, len(files))
	errs := make([]error, len(files))

	// a failing file never cancels the others
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, fp := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			fileIssues, err := processor(ctx, engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				errs[i] = err
				return nil
			}
			results[i] = fileIssues
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	var issues []tt.Issue
	for i, r := range results {
		if errs[i] != nil {
			return issues, errs[i]
		}
		issues = append(issues, r...)
	}
	return issues, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("linting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// CollectFiles expands path into the files to lint. A directory yields its
// Python files in lexical order. A file is returned as is, whatever its
// extension, since it was asked for by name.
func CollectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	return files, nil
}

func ProcessFile(ctx context.Context, engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(ctx, filePath)
}

var desiredExtensions = map[string]bool{
	".py": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
