package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/image-padder/internal/model"
	"github.com/aliskhannn/image-padder/internal/sink"
	"github.com/aliskhannn/image-padder/internal/source"
)

// ErrFilesFailed is returned by Run in keep-going mode when at least one file failed.
var ErrFilesFailed = errors.New("some files failed to process")

// Batch is the ordered list of jobs of one run.
type Batch struct {
	ID        uuid.UUID
	OutputDir string
	Prefix    string
	Jobs      []model.Job
}

// Plan scans inputDir and builds one job per image found, ordered by input path.
// It fails with source.ErrNoInputFiles when there is nothing to process.
func Plan(inputDir, outputDir, prefix string) (*Batch, error) {
	files, err := source.Scan(inputDir)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, model.Job{
			InputPath:  f,
			OutputPath: filepath.Join(outputDir, sink.OutputName(f, prefix)),
		})
	}

	return &Batch{
		ID:        uuid.New(),
		OutputDir: outputDir,
		Prefix:    prefix,
		Jobs:      jobs,
	}, nil
}

// loader opens source images.
type loader interface {
	Load(ctx context.Context, path string) (io.ReadCloser, error)
}

// imageProcessor transforms a decoded image.
type imageProcessor interface {
	Process(img image.Image) image.Image
}

// imageSink stores a processed image and returns where it was written.
type imageSink interface {
	Save(ctx context.Context, img image.Image, originalPath, outputDir, prefix string) (string, error)
}

// Failure records a file that could not be processed.
type Failure struct {
	InputPath string
	Err       error
}

// Report summarizes a run.
type Report struct {
	Written []string
	Failed  []Failure
}

// Runner processes the jobs of a batch one after another.
type Runner struct {
	loader    loader
	processor imageProcessor
	sink      imageSink
	keepGoing bool
}

// NewRunner creates a Runner. With keepGoing set, a failed file is logged and
// skipped; otherwise the first failure aborts the run.
func NewRunner(l loader, p imageProcessor, s imageSink, keepGoing bool) *Runner {
	return &Runner{loader: l, processor: p, sink: s, keepGoing: keepGoing}
}

// Run processes every job of b in order. Cancelling ctx stops the run before
// the next file is started.
func (r *Runner) Run(ctx context.Context, b *Batch) (Report, error) {
	var report Report

	for _, job := range b.Jobs {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("batch interrupted: %w", err)
		}

		dst, err := r.process(ctx, b, job)
		if err != nil {
			err = fmt.Errorf("process %s: %w", job.InputPath, err)
			if !r.keepGoing {
				return report, err
			}

			zlog.Logger.Error().Err(err).Str("run_id", b.ID.String()).Str("input", job.InputPath).Msg("skipping image")
			report.Failed = append(report.Failed, Failure{InputPath: job.InputPath, Err: err})

			continue
		}

		zlog.Logger.Info().Str("run_id", b.ID.String()).Str("input", job.InputPath).Str("output", dst).Msg("image processed")
		report.Written = append(report.Written, dst)
	}

	if len(report.Failed) > 0 {
		errs := make([]error, 0, len(report.Failed))
		for _, f := range report.Failed {
			errs = append(errs, f.Err)
		}

		return report, fmt.Errorf("%w: %d of %d: %w", ErrFilesFailed, len(report.Failed), len(b.Jobs), errors.Join(errs...))
	}

	return report, nil
}

func (r *Runner) process(ctx context.Context, b *Batch, job model.Job) (string, error) {
	src, err := r.loader.Load(ctx, job.InputPath)
	if err != nil {
		return "", fmt.Errorf("failed to load original image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return r.sink.Save(ctx, r.processor.Process(img), job.InputPath, b.OutputDir, b.Prefix)
}
