package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lodehq/lode/internal/acquire"
	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/integrity"
	"github.com/lodehq/lode/internal/lifecycle"
	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/registry"
	"github.com/lodehq/lode/internal/service"
	"github.com/lodehq/lode/internal/store"
)

// archiveExt is the extension stale-version eviction is limited to.
const archiveExt = ".jar"

// Resolver yields registry metadata and latest compatible versions.
type Resolver interface {
	Project(ctx context.Context, id string) (*registry.Project, error)
	Latest(ctx context.Context, id string, c registry.Constraint) (*registry.Version, error)
}

// ArtifactStore is the slice of the mods directory the engine mutates.
type ArtifactStore interface {
	Exists(name string) bool
	Evict(match func(name string) bool) ([]string, error)
	Commit(name string, data []byte) error
	BackupAll() (string, error)
}

// Deps are the engine's collaborators. Nil fields are filled with the real
// implementations; tests substitute fakes.
type Deps struct {
	Resolver Resolver
	Store    ArtifactStore
	Client   service.HTTPClient

	// Gate and Acquirer stay nil to disable the service pause and the
	// loader refresh respectively.
	Gate     lifecycle.Gate
	Acquirer acquire.Acquirer
}

// Engine runs one synchronization batch: pause service, acquire loader,
// back up, then resolve → compare → evict → download → verify → commit for
// each tracked mod in order. Mods are processed strictly sequentially.
type Engine struct {
	cfg        config.Config
	resolver   Resolver
	store      ArtifactStore
	client     service.HTTPClient
	gate       lifecycle.Gate
	acquirer   acquire.Acquirer
	constraint registry.Constraint
}

func New(cfg config.Config, d Deps) (*Engine, error) {
	if d.Client == nil {
		d.Client = service.NewHTTPClient(cfg.RequestTimeout)
	}
	if d.Resolver == nil {
		d.Resolver = registry.NewClient(d.Client, cfg.RegistryURL)
	}
	if d.Store == nil {
		st, err := store.New(cfg.ModsDir, cfg.BackupDir)
		if err != nil {
			return nil, err
		}
		d.Store = st
	}

	return &Engine{
		cfg:      cfg,
		resolver: d.Resolver,
		store:    d.Store,
		client:   d.Client,
		gate:     d.Gate,
		acquirer: d.Acquirer,
		constraint: registry.Constraint{
			GameVersion: cfg.GameVersion,
			Loader:      cfg.LoaderKind,
		},
	}, nil
}

// Run synchronizes the tracked ids and always returns a fully populated
// report: per-mod problems are downgraded to report entries and never abort
// the batch.
func (e *Engine) Run(ctx context.Context, ids []string) *Report {
	rep := NewReport()
	logger.Info("Starting sync run %s (%d tracked mods, game %s, loader %s)",
		rep.RunID, len(ids), e.cfg.GameVersion, e.cfg.LoaderKind)

	resume := e.pauseService(ctx)
	defer resume()

	e.acquireLoader(ctx)

	// Backup happens once, before the first eviction, even when nothing
	// ends up changing. A failed backup is a warning: forward progress is
	// worth more here than the safety net.
	if e.cfg.BackupEnabled {
		snap, err := e.store.BackupAll()
		if err != nil {
			logger.Warn("Backup failed, continuing without a safety net: %v", err)
		} else {
			rep.BackupPath = snap
			logger.Info("Backed up mods to %s", snap)
		}
	}

	for _, id := range ids {
		e.syncOne(ctx, id, rep)
	}

	rep.Elapsed = time.Since(rep.Started)
	return rep
}

// syncOne updates a single tracked mod. Every outcome, including a panic,
// is absorbed here so the rest of the batch keeps going.
func (e *Engine) syncOne(ctx context.Context, id string, rep *Report) {
	defer func() {
		if r := recover(); r != nil {
			rep.RecordFailure(id, fmt.Sprintf("panic: %v", r))
		}
	}()

	proj, err := e.resolver.Project(ctx, id)
	if err != nil {
		rep.RecordFailure(id, err.Error())
		return
	}

	ver, err := e.resolver.Latest(ctx, id, e.constraint)
	if err != nil {
		if errors.Is(err, errs.ErrNoCompatibleVersion) {
			rep.RecordSkip(id, "no compatible version")
			return
		}
		rep.RecordFailure(id, err.Error())
		return
	}

	file := ver.PrimaryFile()

	// Identity is filename-only: a republish under the same filename with
	// different content is not detected.
	if e.store.Exists(file.Filename) {
		rep.RecordSkip(id, "already up to date")
		return
	}

	if err := e.evictStale(proj.Slug); err != nil {
		rep.RecordFailure(id, err.Error())
		return
	}

	data, err := service.FetchBytes(ctx, e.client, file.URL)
	if err != nil {
		rep.RecordFailure(id, fmt.Sprintf("download %s: %v", file.Filename, err))
		return
	}

	unverified := false
	switch integrity.Verify(data, file.Hashes.Sha1) {
	case integrity.Mismatch:
		rep.RecordFailure(id, fmt.Sprintf("%v for %s", errs.ErrIntegrityMismatch, file.Filename))
		return
	case integrity.Unverifiable:
		logger.Warn("No digest published for %s, installing unverified", file.Filename)
		unverified = true
	case integrity.Verified:
	}

	if err := e.store.Commit(file.Filename, data); err != nil {
		rep.RecordFailure(id, err.Error())
		return
	}

	logger.Success("%s %s → %s", proj.Title, ver.VersionNumber, file.Filename)
	rep.RecordSuccess(Success{
		ID:         id,
		Name:       proj.Title,
		Version:    ver.VersionNumber,
		File:       file.Filename,
		Unverified: unverified,
	})
}

// evictStale removes previous versions of a mod before the new file lands.
// Matching is a substring heuristic on the slug: a slug that is contained
// in another mod's slug will also match that mod's files.
func (e *Engine) evictStale(slug string) error {
	needle := strings.ToLower(slug)
	deleted, err := e.store.Evict(func(name string) bool {
		n := strings.ToLower(name)
		return strings.HasSuffix(n, archiveExt) && strings.Contains(n, needle)
	})
	if err != nil {
		return err
	}
	for _, name := range deleted {
		logger.Debug("Evicted stale artifact %s", name)
	}
	return nil
}

// pauseService stops the host service when it is running and returns the
// function that restarts it. Lifecycle failures are logged and the run
// continues either way.
func (e *Engine) pauseService(ctx context.Context) func() {
	noop := func() {}
	if e.gate == nil || !e.cfg.RestartOnUpdate || e.cfg.ServiceUnit == "" {
		return noop
	}

	status, err := e.gate.Status(ctx)
	if err != nil {
		logger.Warn("Could not query %s: %v", e.cfg.ServiceUnit, err)
		return noop
	}
	if status != lifecycle.Active {
		return noop
	}

	logger.Info("Stopping %s for the sync run", e.cfg.ServiceUnit)
	if err := e.gate.Stop(ctx); err != nil {
		logger.Warn("Stop failed, syncing anyway: %v", err)
	}

	return func() {
		logger.Info("Starting %s again", e.cfg.ServiceUnit)
		if err := e.gate.Start(ctx); err != nil {
			logger.Warn("Start failed, the service needs manual attention: %v", err)
		}
	}
}

// acquireLoader refreshes the loader binary. Acquisition failure degrades
// the run but never stops mod synchronization.
func (e *Engine) acquireLoader(ctx context.Context) {
	if e.acquirer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	if _, err := e.acquirer.Fetch(ctx, e.cfg.GameVersion, e.cfg.LoaderVersion); err != nil {
		logger.Warn("Loader acquisition failed, continuing with the installed loader: %v", err)
	}
}
