package ops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/s3meta/pkg/storage"
	"github.com/williamokano/s3meta/pkg/storage/local"
)

// UploadOptions configures a metadata-tagged upload
type UploadOptions struct {
	Bucket      string
	Concurrency int // default: 1 (sequential)
}

// UploadRecord is one successfully uploaded file
type UploadRecord struct {
	Key          string
	Dir          string // Local directory the file came from
	LastModified time.Time
	Size         int64
	Type         string // The "type" metadata value
}

// UploadFailure is a file the service answered "not found" for
type UploadFailure struct {
	Key  string
	Path string
	Err  error
}

// UploadResult collects the outcome of an upload run
type UploadResult struct {
	Records  []UploadRecord
	Failures []UploadFailure
	Skipped  []string // Files without a usable sidecar
	Duration time.Duration
}

// Uploaded returns the number of files uploaded across all directories
func (r UploadResult) Uploaded() int {
	return len(r.Records)
}

type uploadJob struct {
	file     local.File
	dir      string
	metadata map[string]string
}

// outcome of one job; exactly one field is set once the job finished
type uploadOutcome struct {
	record  *UploadRecord
	failure *UploadFailure
}

// Upload walks src top-down and uploads every data file that has a sidecar,
// attaching the sidecar as object metadata. A "not found" answer for one
// file is recorded and the run goes on; any other error stops it and is
// returned together with what was uploaded so far.
func Upload(ctx context.Context, store storage.Store, src *local.Source, opts UploadOptions, logger zerolog.Logger) (UploadResult, error) {
	start := time.Now()
	log := logger.With().Str("bucket", opts.Bucket).Str("source", src.Root()).Logger()

	var result UploadResult

	levels, err := src.Levels()
	if err != nil {
		return result, err
	}

	jobs := collectJobs(src, levels, &result, log)

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	log.Info().
		Int("files", len(jobs)).
		Int("skipped", len(result.Skipped)).
		Int("concurrency", concurrency).
		Msg("starting upload")

	var outcomes []uploadOutcome
	var runErr error
	if concurrency == 1 {
		outcomes, runErr = runSequential(ctx, store, opts.Bucket, jobs, log)
	} else {
		outcomes, runErr = runParallel(ctx, store, opts.Bucket, jobs, concurrency, log)
	}

	for _, o := range outcomes {
		switch {
		case o.record != nil:
			result.Records = append(result.Records, *o.record)
		case o.failure != nil:
			result.Failures = append(result.Failures, *o.failure)
		}
	}
	result.Duration = time.Since(start)

	logLevelCounts(levels, result.Records, log)

	if runErr != nil {
		log.Error().
			Err(runErr).
			Int("uploaded", result.Uploaded()).
			Msg("upload aborted")
		return result, runErr
	}

	log.Info().
		Int("uploaded", result.Uploaded()).
		Int("failed", len(result.Failures)).
		Dur("duration", result.Duration).
		Msg("upload completed")

	return result, nil
}

// collectJobs pairs data files with their sidecars. Files without a usable
// sidecar are skipped, sidecars themselves are never uploaded.
func collectJobs(src *local.Source, levels []local.Level, result *UploadResult, log zerolog.Logger) []uploadJob {
	var jobs []uploadJob

	for _, level := range levels {
		for _, f := range level.Files {
			if src.IsSidecar(f) {
				continue
			}

			metadata, err := src.ReadSidecar(f)
			if err != nil {
				if errors.Is(err, local.ErrNoSidecar) {
					log.Debug().Str("file", f.Path).Msg("no sidecar, skipping")
				} else {
					log.Warn().Err(err).Str("file", f.Path).Msg("unusable sidecar, skipping")
				}
				result.Skipped = append(result.Skipped, f.Path)
				continue
			}

			jobs = append(jobs, uploadJob{file: f, dir: level.Dir, metadata: metadata})
		}
	}

	return jobs
}

func runSequential(ctx context.Context, store storage.Store, bucket string, jobs []uploadJob, log zerolog.Logger) ([]uploadOutcome, error) {
	outcomes := make([]uploadOutcome, 0, len(jobs))

	for _, job := range jobs {
		outcome, err := uploadOne(ctx, store, bucket, job, log)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// uploadOne puts a file and reads it back for the report. A "not found"
// error becomes a failure outcome; every other error is returned.
func uploadOne(ctx context.Context, store storage.Store, bucket string, job uploadJob, log zerolog.Logger) (uploadOutcome, error) {
	key := job.file.Name
	fileLog := log.With().Str("key", key).Logger()

	err := store.Upload(ctx, bucket, key, job.file.Path, job.metadata)
	var info *storage.ObjectInfo
	if err == nil {
		info, err = store.Stat(ctx, bucket, key)
	}

	if err != nil {
		if storage.IsNotFound(err) {
			fileLog.Error().Err(err).Msg("upload failed")
			return uploadOutcome{failure: &UploadFailure{Key: key, Path: job.file.Path, Err: err}}, nil
		}
		if storage.IsCritical(err) {
			fileLog.Error().Err(err).Msg("storage endpoint rejected the request")
		}
		return uploadOutcome{}, fmt.Errorf("upload of %s aborted: %w", key, err)
	}

	fileLog.Debug().Int64("size", info.Size).Msg("uploaded")

	return uploadOutcome{record: &UploadRecord{
		Key:          key,
		Dir:          job.dir,
		LastModified: info.LastModified,
		Size:         info.Size,
		Type:         info.Metadata["type"],
	}}, nil
}

// logLevelCounts logs how many files each directory contributed
func logLevelCounts(levels []local.Level, records []UploadRecord, log zerolog.Logger) {
	counts := make(map[string]int, len(levels))
	for _, r := range records {
		counts[r.Dir]++
	}
	for _, level := range levels {
		log.Debug().
			Str("dir", level.Dir).
			Int("uploaded", counts[level.Dir]).
			Msg("directory done")
	}
}
