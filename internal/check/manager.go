package check

import (
	"context"
	"errors"
	"strings"

	"github.com/lodehq/lode/internal/config"
	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/models"
	"github.com/lodehq/lode/internal/printer"
	"github.com/lodehq/lode/internal/registry"
	"github.com/lodehq/lode/internal/service"
	"github.com/lodehq/lode/internal/store"
	"github.com/lodehq/lode/internal/utils"
)

type resolver interface {
	Project(ctx context.Context, id string) (*registry.Project, error)
	Latest(ctx context.Context, id string, c registry.Constraint) (*registry.Version, error)
}

// Checker renders a read-only status table of every tracked mod. It never
// mutates the artifact store.
type Checker struct {
	Manifest   *models.Manifest
	resolver   resolver
	store      *store.Store
	constraint registry.Constraint
}

func New(cfg config.Config, m *models.Manifest, client service.HTTPClient) (*Checker, error) {
	if client == nil {
		client = service.NewHTTPClient(cfg.RequestTimeout)
	}

	st, err := store.New(cfg.ModsDir, cfg.BackupDir)
	if err != nil {
		return nil, err
	}

	return &Checker{
		Manifest:   m,
		resolver:   registry.NewClient(client, cfg.RegistryURL),
		store:      st,
		constraint: registry.Constraint{GameVersion: cfg.GameVersion, Loader: cfg.LoaderKind},
	}, nil
}

func (c *Checker) Execute(ctx context.Context) error {
	installed, err := c.store.List()
	if err != nil {
		return err
	}

	p := printer.NewColorPrinter()
	statuses := make([]utils.ModStatus, 0, len(c.Manifest.Mods))

	for i := range c.Manifest.Mods {
		mod := &c.Manifest.Mods[i]
		statuses = append(statuses, c.checkOne(ctx, mod, installed, p))
	}

	utils.CreateStatusTable("", statuses)
	return nil
}

func (c *Checker) checkOne(ctx context.Context, mod *models.Mod, installed []string, p *printer.ColorPrinter) utils.ModStatus {
	row := utils.ModStatus{Mod: mod.DisplayName(), Installed: "-", Latest: "-"}

	proj, err := c.resolver.Project(ctx, mod.ID)
	if err != nil {
		row.Status = p.Error("unknown project")
		return row
	}

	if name := firstMatch(installed, proj.Slug); name != "" {
		row.Installed = name
	}

	ver, err := c.resolver.Latest(ctx, mod.ID, c.constraint)
	if err != nil {
		if errors.Is(err, errs.ErrNoCompatibleVersion) {
			row.Status = p.Warning("no compatible version")
		} else {
			row.Status = p.Error("registry error")
		}
		return row
	}

	row.Latest = ver.VersionNumber
	if file := ver.PrimaryFile(); file != nil && c.store.Exists(file.Filename) {
		row.Status = p.Success("up to date")
	} else {
		row.Status = p.Warning("update available")
	}
	return row
}

// firstMatch reuses the sync engine's filename heuristic to guess which
// installed archive belongs to a slug.
func firstMatch(names []string, slug string) string {
	needle := strings.ToLower(slug)
	for _, name := range names {
		n := strings.ToLower(name)
		if strings.HasSuffix(n, ".jar") && strings.Contains(n, needle) {
			return name
		}
	}
	return ""
}
