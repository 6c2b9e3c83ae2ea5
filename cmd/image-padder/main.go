package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/image-padder/internal/batch"
	"github.com/aliskhannn/image-padder/internal/config"
	"github.com/aliskhannn/image-padder/internal/processor"
	"github.com/aliskhannn/image-padder/internal/sink"
	"github.com/aliskhannn/image-padder/internal/storage/file"
	"github.com/aliskhannn/image-padder/internal/storage/s3"
)

func main() {
	// Context & signals: stop between files on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()

	if err := newApp(ctx).Run(os.Args); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("image-padder failed")
	}
}

func newApp(ctx context.Context) *cli.App {
	app := cli.NewApp()

	app.Name = "image-padder"
	app.Usage = "pad images to square and resize them in bulk"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "optional YAML file with default values for every option",
		},
		cli.StringFlag{
			Name:  "input, i",
			Usage: "the input image directory path",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "the output image directory path, created if missing",
		},
		cli.StringFlag{
			Name:  "square, s",
			Usage: "pad non-square images to square with black borders (yes/no)",
			Value: "no",
		},
		cli.StringFlag{
			Name:  "resize, r",
			Usage: "resize to <width>x<height>, e.g. 32x32",
		},
		cli.StringFlag{
			Name:  "prefix, p",
			Usage: "prefix prepended to output file names",
			Value: "n",
		},
		cli.StringFlag{
			Name:  "filter",
			Usage: "resampling filter: linear, catmullrom or lanczos",
			Value: processor.DefaultFilter,
		},
		cli.IntFlag{
			Name:  "quality, q",
			Usage: "quality of output JPG files",
			Value: sink.DefaultQuality,
		},
		cli.BoolFlag{
			Name:  "keep-going",
			Usage: "log and skip files that fail instead of aborting the run",
		},
	}

	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		return run(ctx, cfg)
	}

	return app
}

// loadConfig merges the optional config file with the flags explicitly set
// on the command line. Flags win.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	stringFlags := map[string]*string{
		"input":  &cfg.Input,
		"output": &cfg.Output,
		"square": &cfg.Square,
		"resize": &cfg.Resize,
		"prefix": &cfg.Prefix,
		"filter": &cfg.Filter,
	}
	for name, dst := range stringFlags {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}

	if c.IsSet("keep-going") {
		cfg.KeepGoing = c.Bool("keep-going")
	}

	return cfg, nil
}

// run validates cfg, plans the batch and processes it.
func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	pc, err := cfg.Processing()
	if err != nil {
		return err
	}

	p, err := processor.New(pc)
	if err != nil {
		return err
	}

	b, err := batch.Plan(cfg.Input, cfg.Output, cfg.Prefix)
	if err != nil {
		return err
	}

	store, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	zlog.Logger.Info().
		Str("run_id", b.ID.String()).
		Int("files", len(b.Jobs)).
		Bool("square", pc.Square).
		Str("resize", cfg.Resize).
		Str("output", cfg.Output).
		Msg("starting batch")

	runner := batch.NewRunner(file.NewStorage(""), p, sink.New(store, cfg.Quality), cfg.KeepGoing)

	report, err := runner.Run(ctx, b)
	if err != nil {
		return err
	}

	zlog.Logger.Info().Str("run_id", b.ID.String()).Int("written", len(report.Written)).Msg("batch done")

	return nil
}

// storage is the output backend a sink writes through.
type storage interface {
	Save(ctx context.Context, subdir, filename string, src io.Reader) (string, error)
}

// newStorage connects the output backend selected by cfg.Backend.
// Anything other than minio falls back to the local filesystem.
func newStorage(ctx context.Context, cfg config.Storage) (storage, error) {
	switch cfg.Backend {
	case config.BackendMinIO:
		s, err := s3.NewStorage(ctx, s3.Options{
			Endpoint:   cfg.Endpoint,
			AccessKey:  cfg.AccessKey,
			SecretKey:  cfg.SecretKey,
			BucketName: cfg.BucketName,
			Region:     cfg.Region,
			UseSSL:     cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}

		return s, nil
	default:
		return file.NewStorage(""), nil
	}
}
