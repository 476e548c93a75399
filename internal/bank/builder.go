package bank

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"devaforge/internal/archive"
	"devaforge/internal/faults"
	"devaforge/internal/fsutil"
	"devaforge/internal/history"
	"devaforge/internal/logging"
	"devaforge/internal/manifest"
	"devaforge/internal/triggers"
)

// Pipeline step names used in errors and logs.
const (
	StepLock     = "lock output"
	StepManifest = "load manifest"
	StepAudio    = "check audio"
	StepDiscover = "discover triggers"
	StepRewrite  = "rewrite manifest"
	StepAssemble = "assemble archive"
	StepDigest   = "hash archive"
)

// Recorder stores build outcomes. *history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, rec history.Record) error
}

// Result describes a successful build.
type Result struct {
	BuildID       string             `json:"build_id"`
	BankID        string             `json:"bank_id"`
	BankDir       string             `json:"bank_dir"`
	ArchivePath   string             `json:"archive_path"`
	Triggers      []triggers.Trigger `json:"triggers"`
	ArchiveBytes  int64              `json:"archive_bytes"`
	ArchiveSHA256 string             `json:"archive_sha256"`
	Duration      time.Duration      `json:"duration"`
}

// Builder runs the single-bank pipeline.
type Builder struct {
	layout   Layout
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
	newID    func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithRecorder enables the build ledger.
func WithRecorder(recorder Recorder) Option {
	return func(b *Builder) {
		b.recorder = recorder
	}
}

// NewBuilder constructs a Builder for layout.
func NewBuilder(layout Layout, opts ...Option) *Builder {
	b := &Builder{
		layout: layout,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.NewComponentLogger(b.logger, "builder")
	return b
}

// Layout returns the directories the builder works on.
func (b *Builder) Layout() Layout {
	return b.layout
}

// Build packages the bank in dir. Every error names dir and the failing step
// and is tagged with a faults marker.
func (b *Builder) Build(ctx context.Context, dir string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	buildID := b.newID()
	ctx = logging.WithBuildID(logging.WithBank(ctx, filepath.Base(dir)), buildID)
	logger := logging.WithContext(ctx, b.logger)
	started := b.now()
	logger.Debug("build started", logging.String("bank_dir", dir))

	res, err := b.buildLocked(ctx, logger, dir)
	res.BuildID = buildID
	res.BankDir = dir
	finished := b.now()
	res.Duration = finished.Sub(started)

	b.record(ctx, logger, res, err, started, finished)

	if err != nil {
		logger.Error("build failed",
			logging.String(logging.FieldEventType, "build_failed"),
			logging.String("error_kind", faults.Kind(err)),
			logging.Error(err),
		)
		return res, err
	}
	logger.Info("build complete",
		logging.String(logging.FieldEventType, "build_complete"),
		logging.String("archive", res.ArchivePath),
		logging.Int("triggers", len(res.Triggers)),
		logging.Int64("bytes", res.ArchiveBytes),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

func (b *Builder) buildLocked(ctx context.Context, logger *slog.Logger, dir string) (Result, error) {
	if err := os.MkdirAll(b.layout.OutputRoot, 0o755); err != nil {
		return Result{}, faults.Wrap(faults.ErrIO, dir, StepLock, "create output directory", err)
	}
	lockPath := filepath.Join(b.layout.OutputRoot, lockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Result{}, faults.Wrap(faults.ErrIO, dir, StepLock, "acquire "+lockPath, err)
	}
	if !ok {
		return Result{}, faults.Wrap(faults.ErrIO, dir, StepLock, "another devaforge build is writing "+b.layout.OutputRoot, nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release output lock", "lock_release",
				logging.String("lock", lockPath),
				logging.String(logging.FieldImpact, "a later build may report the output tree as busy"),
				logging.Error(err),
			)
		}
	}()

	return b.run(ctx, logger, dir)
}

func (b *Builder) run(ctx context.Context, logger *slog.Logger, dir string) (Result, error) {
	var res Result
	manifestPath := filepath.Join(dir, manifest.FileName)

	doc, err := manifest.Load(manifestPath)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return res, faults.Wrap(faults.ErrNotFound, dir, StepManifest, "", err)
		case errors.Is(err, manifest.ErrInvalid):
			return res, faults.Wrap(faults.ErrMalformed, dir, StepManifest, "", err)
		default:
			return res, faults.Wrap(faults.ErrIO, dir, StepManifest, "", err)
		}
	}
	if err := doc.Validate(); err != nil {
		return res, faults.Wrap(faults.ErrMalformed, dir, StepManifest, "", err)
	}
	res.BankID = doc.ID()

	audioDir := filepath.Join(dir, AudioDirName)
	if !fsutil.IsDir(audioDir) {
		return res, faults.Wrap(faults.ErrNotFound, dir, StepAudio, "audio directory not found: "+audioDir, nil)
	}

	discovered, err := triggers.Discover(audioDir)
	if err != nil {
		return res, faults.Wrap(faults.ErrIO, dir, StepDiscover, "", err)
	}
	merged := triggers.Merge(doc.Triggers, discovered)
	logger.Debug("triggers merged",
		logging.String(logging.FieldStep, StepDiscover),
		logging.Int("previous", len(doc.Triggers)),
		logging.Int("discovered", len(discovered)),
	)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := manifest.WriteTriggers(manifestPath, merged); err != nil {
		return res, faults.Wrap(faults.ErrIO, dir, StepRewrite, "", err)
	}
	res.Triggers = merged

	path, err := archive.Assemble(archive.Spec{
		Author:       doc.Bank.Author,
		Name:         doc.Bank.Name,
		Description:  doc.Bank.Description,
		BankDir:      dir,
		ManifestPath: manifestPath,
		AudioDir:     audioDir,
		OutputRoot:   b.layout.OutputRoot,
		Extension:    b.layout.Extension,
	})
	if err != nil {
		marker := faults.ErrIO
		if errors.Is(err, archive.ErrMissingIdentity) {
			marker = faults.ErrMalformed
		}
		return res, faults.Wrap(marker, dir, StepAssemble, "", err)
	}
	res.ArchivePath = path

	size, sum, err := digest(path)
	if err != nil {
		return res, faults.Wrap(faults.ErrIO, dir, StepDigest, "", err)
	}
	res.ArchiveBytes = size
	res.ArchiveSHA256 = sum
	return res, nil
}

func (b *Builder) record(ctx context.Context, logger *slog.Logger, res Result, buildErr error, started, finished time.Time) {
	if b.recorder == nil {
		return
	}
	rec := history.Record{
		BuildID:       res.BuildID,
		BankID:        res.BankID,
		BankDir:       res.BankDir,
		ArchivePath:   res.ArchivePath,
		TriggerCount:  len(res.Triggers),
		ArchiveBytes:  res.ArchiveBytes,
		ArchiveSHA256: res.ArchiveSHA256,
		Status:        history.StatusSucceeded,
		StartedAt:     started,
		FinishedAt:    finished,
	}
	if rec.BankID == "" {
		rec.BankID = filepath.Base(res.BankDir)
	}
	if buildErr != nil {
		rec.Status = history.StatusFailed
		rec.Error = buildErr.Error()
	}
	if err := b.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		logging.WarnWithContext(logger, "failed to record build in history", "history_write",
			logging.String(logging.FieldImpact, "build ledger is missing this build"),
			logging.Error(err),
		)
	}
}

func digest(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", fmt.Errorf("read archive: %w", err)
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
