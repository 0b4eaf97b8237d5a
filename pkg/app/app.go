package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/williamokano/s3meta/pkg/config"
	"github.com/williamokano/s3meta/pkg/logger"
	"github.com/williamokano/s3meta/pkg/ops"
	"github.com/williamokano/s3meta/pkg/report"
	"github.com/williamokano/s3meta/pkg/storage"
	"github.com/williamokano/s3meta/pkg/storage/local"
	"github.com/williamokano/s3meta/pkg/storage/s3"
)

const (
	ExitOK      = 0
	ExitConfig  = 1 // credentials, config file or usage
	ExitService = 2 // the storage service failed an operation
)

var errUsage = errors.New("usage error")

// StoreFactory builds the store used by a command
type StoreFactory func(ctx context.Context, cfg s3.Config, logger zerolog.Logger) (storage.Store, error)

// NewS3Store is the production StoreFactory
func NewS3Store(ctx context.Context, cfg s3.Config, logger zerolog.Logger) (storage.Store, error) {
	return s3.New(ctx, cfg, logger)
}

// session is what every command gets once credentials, config and the
// store are in place
type session struct {
	cfg    config.Config
	store  storage.Store
	logger zerolog.Logger
	stdout io.Writer
}

type runner struct {
	stdout   io.Writer
	stderr   io.Writer
	newStore StoreFactory
}

// New builds the s3meta command line application
func New(stdout, stderr io.Writer, newStore StoreFactory) *cli.App {
	r := &runner{stdout: stdout, stderr: stderr, newStore: newStore}

	onUsageError := func(c *cli.Context, err error, isSubcommand bool) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	bucketFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "bucket",
			Usage: "the target bucket, overrides bucket from the config file",
		}
	}

	return &cli.App{
		Name:           "s3meta",
		Usage:          "basic object storage operations against an S3-compatible endpoint",
		Writer:         stdout,
		ErrWriter:      stderr,
		HideVersion:    true,
		OnUsageError:   onUsageError,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the JSON config file",
				EnvVars: []string{"S3META_CONFIG"},
				Value:   "config.json",
			},
			&cli.BoolFlag{
				Name: "insecure-skip-verify",
				Usage: "do not verify the endpoint's TLS certificate " +
					"(self-signed endpoints)",
				EnvVars: []string{"S3META_INSECURE_SKIP_VERIFY"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"S3META_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "json or console",
				EnvVars: []string{"S3META_LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{{
			Name:         "list-buckets",
			Aliases:      []string{"buckets"},
			Usage:        "list all buckets, oldest first",
			OnUsageError: onUsageError,
			Action: r.withSession(noRequirement, func(c *cli.Context, s *session) error {
				buckets, err := ops.ListBuckets(c.Context, s.store, s.logger)
				if err != nil {
					return err
				}
				return report.Buckets(s.stdout, buckets)
			}),
		}, {
			Name:         "create-bucket",
			Usage:        "create the configured bucket",
			OnUsageError: onUsageError,
			Flags: []cli.Flag{
				bucketFlag(),
				&cli.BoolFlag{
					Name:  "fail-if-exists",
					Usage: "check for the bucket first and fail if it is already there",
				},
			},
			Action: r.withSession(config.Config.RequireBucket, func(c *cli.Context, s *session) error {
				location, err := ops.CreateBucket(c.Context, s.store, s.cfg.Bucket, ops.CreateOptions{
					FailIfExists: c.Bool("fail-if-exists"),
				}, s.logger)
				if err != nil {
					return err
				}
				return report.Created(s.stdout, s.cfg.Bucket, location)
			}),
		}, {
			Name:         "list-objects",
			Aliases:      []string{"objects"},
			Usage:        "list the objects of the configured bucket, oldest first",
			OnUsageError: onUsageError,
			Flags:        []cli.Flag{bucketFlag()},
			Action: r.withSession(config.Config.RequireBucket, func(c *cli.Context, s *session) error {
				objects, err := ops.ListObjects(c.Context, s.store, s.cfg.Bucket, s.logger)
				if err != nil {
					return err
				}
				return report.Objects(s.stdout, objects)
			}),
		}, {
			Name: "upload",
			Usage: "upload every file of the configured directory that has a " +
				"matching " + config.SidecarExt + " metadata file",
			OnUsageError: onUsageError,
			Flags: []cli.Flag{
				bucketFlag(),
				&cli.StringFlag{
					Name:  "dir",
					Usage: "the directory to upload, overrides files from the config file",
				},
				&cli.IntFlag{
					Name:  "concurrency",
					Usage: "number of files uploaded in parallel (default 1)",
				},
			},
			Action: r.withSession(requireBucketAndFiles, r.upload),
		}},
	}
}

func (r *runner) upload(c *cli.Context, s *session) error {
	src, err := local.New(s.cfg.Files, config.SidecarExt)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	result, err := ops.Upload(c.Context, s.store, src, ops.UploadOptions{
		Bucket:      s.cfg.Bucket,
		Concurrency: s.cfg.GetUploadConcurrency(),
	}, s.logger)

	// What made it up before an abort is still reported
	if reportErr := report.Uploads(s.stdout, result); reportErr != nil && err == nil {
		err = reportErr
	}
	return err
}

func noRequirement(config.Config) error { return nil }

func requireBucketAndFiles(cfg config.Config) error {
	if err := cfg.RequireBucket(); err != nil {
		return err
	}
	return cfg.RequireFiles()
}

// withSession loads credentials, then config, then builds the store, and
// only then runs action. need lists what the command requires from config.
func (r *runner) withSession(need func(config.Config) error, action func(*cli.Context, *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		creds, err := config.LoadCredentials()
		if err != nil {
			return err
		}

		cfg, err := r.loadConfig(c, need)
		if err != nil {
			return err
		}

		log := logger.New(cfg.GetLogLevel(), cfg.GetLogFormat(), r.stderr).
			With().Str("command", c.Command.Name).Logger()
		log.Debug().Stringer("credentials", creds).Msg("found environment variables")

		store, err := r.newStore(c.Context, s3.Config{
			Endpoint:           creds.Endpoint,
			Region:             cfg.GetRegion(),
			AccessKeyID:        creds.AccessKeyID,
			SecretAccessKey:    creds.SecretAccessKey,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			VirtualHostedStyle: cfg.VirtualHostedStyle,
		}, log)
		if err != nil {
			return fmt.Errorf("%w: failed to create storage client: %v", config.ErrInvalidConfig, err)
		}
		log = log.With().Str("store", store.Name()).Logger()

		return action(c, &session{cfg: cfg, store: store, logger: log, stdout: r.stdout})
	}
}

// loadConfig reads the config file, then applies command line overrides. A
// missing file is fine as long as the flags supply everything need checks.
func (r *runner) loadConfig(c *cli.Context, need func(config.Config) error) (config.Config, error) {
	path := config.ResolvePath(c.String("config"))

	cfg, found, err := config.LoadOptional(path)
	if err != nil {
		return config.Config{}, err
	}

	if v := c.String("bucket"); v != "" {
		cfg.Bucket = v
	}
	if v := c.String("dir"); v != "" {
		cfg.Files = v
	}
	if v := c.Int("concurrency"); v > 0 {
		cfg.UploadConcurrency = v
	}
	if c.Bool("insecure-skip-verify") {
		cfg.InsecureSkipVerify = true
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.LogFormat = v
	}

	if err := need(cfg); err != nil {
		if !found {
			return config.Config{}, fmt.Errorf("%w (config file %s not found)", err, path)
		}
		return config.Config{}, err
	}

	return cfg, nil
}

// ExitCode maps an error returned by the application to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	if errors.Is(err, config.ErrMissingCredentials) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, errUsage) {
		return ExitConfig
	}

	return ExitService
}
